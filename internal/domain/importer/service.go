// Package importer turns uploaded PDF reports into report drafts by
// running text extraction and filling in sensible defaults.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samihq/weekly-reports/internal/domain/extract"
	"github.com/samihq/weekly-reports/internal/domain/importer/pdftext"
	"github.com/samihq/weekly-reports/internal/domain/reports"
	"github.com/samihq/weekly-reports/pkg/week"
)

// ErrNoReportContent means the document was readable but nothing in it
// looked like a weekly report.
var ErrNoReportContent = errors.New("no report content recognized")

const defaultWorkload = 3

// Draft is a pre-filled submission assembled from an uploaded document.
// The caller reviews it before it becomes a report.
type Draft struct {
	Input    reports.CreateReportInput `json:"input"`
	Name     *string                   `json:"name,omitempty"`
	Position *extract.Position         `json:"position,omitempty"`
	Team     *extract.Team             `json:"team,omitempty"`
	Trace    []extract.Event           `json:"trace"`
}

// Service builds report drafts from uploads.
type Service struct {
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewService(logger *slog.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{logger: logger, loc: loc, now: time.Now}
}

// FromPDF extracts text from an uploaded PDF and drafts a report for the
// user. pdftext.ErrUnreadable and ErrNoReportContent distinguish a broken
// upload from a readable one we could not understand.
func (s *Service) FromPDF(userID int64, r io.Reader) (*Draft, error) {
	text, err := pdftext.Extract(r)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoText) {
			return nil, ErrNoReportContent
		}
		return nil, err
	}
	return s.FromText(userID, text)
}

// FromText drafts a report from already-extracted plain text.
func (s *Service) FromText(userID int64, text string) (*Draft, error) {
	res := extract.Extract(text)
	if res.Report.Empty() {
		return nil, ErrNoReportContent
	}

	draft := &Draft{
		Input: reports.CreateReportInput{
			UserID:       userID,
			Concerns:     res.Report.Concerns,
			Improvements: res.Report.Improvements,
			Priorities:   res.Report.Priorities,
		},
		Name:     res.Report.Name,
		Position: res.Report.Position,
		Team:     res.Report.Team,
		Trace:    res.Trace,
	}

	currentWeek, currentYear := week.At(s.now().In(s.loc))
	draft.Input.WeekNumber = currentWeek
	if res.Report.WeekNumber != nil {
		draft.Input.WeekNumber = *res.Report.WeekNumber
	}
	draft.Input.Year = currentYear
	if res.Report.Year != nil {
		draft.Input.Year = *res.Report.Year
	}
	draft.Input.Workload = defaultWorkload
	if res.Report.Workload != nil {
		draft.Input.Workload = *res.Report.Workload
	}

	for _, t := range res.Report.CompletedTasks {
		draft.Input.CompletedTasks = append(draft.Input.CompletedTasks, reports.CompletedTaskInput{
			Title:   t.Title,
			Project: t.Project,
			Hours:   t.Hours,
		})
	}
	for _, t := range res.Report.NotCompletedTasks {
		input := reports.NotCompletedTaskInput{
			Title:   t.Title,
			Reason:  t.Reason,
			ETA:     t.ETA,
			ETARaw:  t.ETARaw,
			Blocker: t.Blocker,
		}
		if utf8.RuneCountInString(strings.TrimSpace(input.Reason)) < 3 {
			input.Reason = "не вказано"
		}
		draft.Input.NotCompletedTasks = append(draft.Input.NotCompletedTasks, input)
	}

	s.logger.Info("report draft assembled",
		slog.Int64("user_id", userID),
		slog.Int("week", draft.Input.WeekNumber),
		slog.Int("year", draft.Input.Year),
		slog.Int("completed_tasks", len(draft.Input.CompletedTasks)),
		slog.Int("not_completed_tasks", len(draft.Input.NotCompletedTasks)))
	return draft, nil
}

// Describe renders a short human explanation of a failed import.
func Describe(err error) string {
	switch {
	case errors.Is(err, pdftext.ErrUnreadable):
		return "the uploaded file could not be read as a PDF"
	case errors.Is(err, ErrNoReportContent):
		return "the document does not look like a weekly report"
	default:
		return fmt.Sprintf("import failed: %v", err)
	}
}
