package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Range bounds for the numeric scalar fields. Out-of-range matches are
// discarded, never clamped: a nonsense week number means the pattern hit
// something that was not a week number.
const (
	minWeek     = 1
	maxWeek     = 53
	minYear     = 2020
	maxYear     = 2100
	minWorkload = 1
	maxWorkload = 5
)

func (e *extractor) extractName() {
	raw := findByPatterns(namePatterns, e.text)
	if raw == "" {
		raw = findFieldValue(e.lines, nameAliasNames)
	}
	if raw == "" {
		return
	}
	name := strings.TrimSpace(strings.Trim(raw, ":："))
	if utf8.RuneCountInString(name) <= 1 {
		return
	}
	e.report.Name = &name
	e.trace("name", raw, name, false)
}

func (e *extractor) extractPosition() {
	raw := findByPatterns(positionPatterns, e.text)
	if raw == "" {
		raw = findFieldValue(e.lines, positionAliasNames)
	}
	if raw == "" {
		return
	}
	pos, known := mapPosition(raw)
	e.report.Position = &pos
	e.trace("position", raw, string(pos), !known)
}

func (e *extractor) extractTeam() {
	raw := findFieldValue(e.lines, teamAliasNames)
	if raw == "" {
		return
	}
	team, known := mapTeam(raw)
	e.report.Team = &team
	e.trace("team", raw, string(team), !known)
}

func (e *extractor) extractWeek() {
	raw := findByPatterns(weekPatterns, e.text)
	if raw == "" {
		return
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < minWeek || week > maxWeek {
		e.trace("week", raw, "", false)
		return
	}
	e.report.WeekNumber = &week
	e.trace("week", raw, strconv.Itoa(week), false)
}

func (e *extractor) extractYear() {
	raw := findByPatterns(yearPatterns, e.text)
	if raw == "" {
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < minYear || year > maxYear {
		e.trace("year", raw, "", false)
		return
	}
	e.report.Year = &year
	e.trace("year", raw, strconv.Itoa(year), false)
}

func (e *extractor) extractWorkload() {
	raw := findByPatterns(workloadPatterns, e.text)
	if raw == "" {
		return
	}
	workload, err := strconv.Atoi(raw)
	if err != nil || workload < minWorkload || workload > maxWorkload {
		e.trace("workload", raw, "", false)
		return
	}
	e.report.Workload = &workload
	e.trace("workload", raw, strconv.Itoa(workload), false)
}

// mapPosition resolves position text to a canonical role by exact
// case-insensitive alias lookup. The second return is false when no alias
// matched and the position defaulted to Other.
func mapPosition(raw string) (Position, bool) {
	if pos, ok := positionAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return pos, true
	}
	return PositionOther, false
}

// mapTeam resolves team text to a canonical team by exact lookup.
func mapTeam(raw string) (Team, bool) {
	if team, ok := teamAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return team, true
	}
	return TeamOther, false
}
