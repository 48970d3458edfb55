package extract

import "time"

// Position is the canonical role of a reporting employee.
type Position string

const (
	PositionPM       Position = "PM"
	PositionDev      Position = "Dev"
	PositionDesign   Position = "Design"
	PositionQA       Position = "QA"
	PositionBA       Position = "BA"
	PositionHelpdesk Position = "Helpdesk"
	PositionSupport  Position = "Support"
	PositionOther    Position = "Other"
)

// Team is the canonical team of a reporting employee.
type Team string

const (
	TeamCore   Team = "Core"
	TeamMobile Team = "Mobile"
	TeamWeb    Team = "Web"
	TeamInfra  Team = "Infra"
	TeamData   Team = "Data"
	TeamSAMI   Team = "SAMI"
	TeamOther  Team = "Other"
)

// CompletedTask is one finished task recovered from a report document.
type CompletedTask struct {
	Title   string
	Project string // optional, empty when the line carried no project column
	Hours   float64
}

// NotCompletedTask is one unfinished task with the reported reason.
// ETA holds the parsed deadline when the token was a recognizable date;
// otherwise ETARaw keeps the literal text so the information is not lost.
type NotCompletedTask struct {
	Title   string
	Reason  string
	ETA     *time.Time
	ETARaw  string
	Blocker string
}

// Report is the partial record recovered from a document's text. Every
// scalar is optional: a nil pointer means the field was not found in the
// text, which is distinct from finding an empty value.
type Report struct {
	Name              *string
	Position          *Position
	Team              *Team
	WeekNumber        *int
	Year              *int
	Workload          *int
	CompletedTasks    []CompletedTask
	NotCompletedTasks []NotCompletedTask
	Concerns          *string
	Improvements      *string
	Priorities        *string
}

// Empty reports whether nothing at all was recovered: no tasks and no
// narrative fields. Callers treat an empty result as "could not parse".
func (r *Report) Empty() bool {
	return len(r.CompletedTasks) == 0 &&
		len(r.NotCompletedTasks) == 0 &&
		r.Concerns == nil && r.Improvements == nil && r.Priorities == nil
}

// Event is one diagnostic record emitted while extracting a field. The
// trail lets operators audit why a document mapped the way it did without
// the extractor itself doing any logging.
type Event struct {
	Field    string // which field was being extracted
	Raw      string // the raw matched text
	Value    string // the mapped/validated value, empty when discarded
	Fallback bool   // true when an alias missed and a default was used
}

// Result bundles the recovered report with its extraction trace.
type Result struct {
	Report Report
	Trace  []Event
}
