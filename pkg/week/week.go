// Package week provides ISO-8601 week arithmetic for the reporting cycle.
package week

import "time"

// Current returns the ISO week number and year for now in the given
// location. A nil location falls back to UTC.
func Current(loc *time.Location) (week, year int) {
	if loc == nil {
		loc = time.UTC
	}
	return At(time.Now().In(loc))
}

// At returns the ISO week number and year of a moment. Note the ISO year
// can differ from the calendar year around January 1st.
func At(t time.Time) (week, year int) {
	year, week = t.ISOWeek()
	return week, year
}

// Previous returns the ISO week/year one week before the given moment.
func Previous(t time.Time) (week, year int) {
	return At(t.AddDate(0, 0, -7))
}

// Start returns the Monday 00:00 of the given ISO week in loc.
func Start(week, year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, 1-weekday)
	return monday.AddDate(0, 0, (week-1)*7)
}

// End returns the Sunday 23:59:59 of the given ISO week in loc.
func End(week, year int, loc *time.Location) time.Time {
	return Start(week, year, loc).AddDate(0, 0, 7).Add(-time.Second)
}

// Valid reports whether a week number is inside the ISO range.
func Valid(week int) bool {
	return week >= 1 && week <= 53
}
