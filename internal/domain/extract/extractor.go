// Package extract recovers structured weekly-report data from free-form
// document text. The input is whatever a PDF text layer yields; the output
// is a partial Report where every field is optional, plus a trace of how
// each field was found. Extraction is pure: no logging, no I/O, same text
// in, same report out.
package extract

type extractor struct {
	text   string
	lines  []string
	report Report
	events []Event
}

// Extract parses free-form report text into a Report and its trace.
func Extract(text string) *Result {
	e := &extractor{}
	e.text, e.lines = normalize(text)

	e.extractName()
	e.extractPosition()
	e.extractTeam()
	e.extractWeek()
	e.extractYear()
	e.extractWorkload()

	if section, ok := extractSection(e.text, completedStartMarkers, completedEndMarkers); ok {
		e.report.CompletedTasks = parseCompletedTasks(section)
	} else {
		e.report.CompletedTasks = parseLooseCompletedTasks(e.text)
	}
	if section, ok := extractSection(e.text, notCompletedStartMarkers, notCompletedEndMarkers); ok {
		e.report.NotCompletedTasks = parseNotCompletedTasks(section)
	}

	e.extractNarrative()

	return &Result{Report: e.report, Trace: e.events}
}

func (e *extractor) trace(field, raw, value string, fallback bool) {
	e.events = append(e.events, Event{
		Field:    field,
		Raw:      raw,
		Value:    value,
		Fallback: fallback,
	})
}
