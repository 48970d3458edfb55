package reports

import "time"

// Report is a persisted weekly status report with its task lists.
type Report struct {
	ID                int64              `json:"reportId"`
	UserID            int64              `json:"userId"`
	UserName          string             `json:"userName,omitempty"`
	Team              string             `json:"team,omitempty"`
	WeekNumber        int                `json:"weekNumber"`
	Year              int                `json:"year"`
	Workload          int                `json:"workload"`
	TasksCompleted    int                `json:"tasksCompleted"`
	TasksNotCompleted int                `json:"tasksNotCompleted"`
	CompletionRate    int                `json:"completionRate"`
	HasBlockers       bool               `json:"hasBlockers"`
	Concerns          *string            `json:"concerns,omitempty"`
	Improvements      *string            `json:"improvements,omitempty"`
	Priorities        *string            `json:"priorities,omitempty"`
	TrelloCardID      *string            `json:"trelloCardId,omitempty"`
	TrelloCardURL     *string            `json:"trelloCardUrl,omitempty"`
	CompletedTasks    []CompletedTask    `json:"completedTasks"`
	NotCompletedTasks []NotCompletedTask `json:"notCompletedTasks"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// CompletedTask is a finished task row belonging to a report.
type CompletedTask struct {
	ID       int64   `json:"taskId"`
	ReportID int64   `json:"reportId"`
	Title    string  `json:"title"`
	Project  string  `json:"project,omitempty"`
	Hours    float64 `json:"hours"`
}

// NotCompletedTask is an unfinished task row belonging to a report.
type NotCompletedTask struct {
	ID       int64      `json:"taskId"`
	ReportID int64      `json:"reportId"`
	Title    string     `json:"title"`
	Reason   string     `json:"reason"`
	ETA      *time.Time `json:"eta,omitempty"`
	ETARaw   string     `json:"etaRaw,omitempty"`
	Blocker  string     `json:"blocker,omitempty"`
}

// CompletedTaskInput is one finished task in a report submission.
type CompletedTaskInput struct {
	Title   string  `json:"title" validate:"required,min=3,max=500"`
	Project string  `json:"project,omitempty" validate:"max=255"`
	Hours   float64 `json:"hours" validate:"gte=0,lte=168"`
}

// NotCompletedTaskInput is one unfinished task in a report submission.
type NotCompletedTaskInput struct {
	Title   string     `json:"title" validate:"required,min=3,max=500"`
	Reason  string     `json:"reason" validate:"required,min=3"`
	ETA     *time.Time `json:"eta,omitempty"`
	ETARaw  string     `json:"etaRaw,omitempty"`
	Blocker string     `json:"blocker,omitempty"`
}

// CreateReportInput is the payload for filing a weekly report.
type CreateReportInput struct {
	UserID            int64                   `json:"userId" validate:"required"`
	WeekNumber        int                     `json:"weekNumber" validate:"min=1,max=53"`
	Year              int                     `json:"year" validate:"min=2020,max=2100"`
	Workload          int                     `json:"workload" validate:"min=1,max=5"`
	CompletedTasks    []CompletedTaskInput    `json:"completedTasks" validate:"dive"`
	NotCompletedTasks []NotCompletedTaskInput `json:"notCompletedTasks" validate:"dive"`
	Concerns          *string                 `json:"concerns,omitempty"`
	Improvements      *string                 `json:"improvements,omitempty"`
	Priorities        *string                 `json:"priorities,omitempty"`
}

// Filter narrows report listings.
type Filter struct {
	UserID     *int64
	Team       string
	WeekNumber *int
	Year       *int
	Limit      int
	Offset     int
}
