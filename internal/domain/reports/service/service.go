// Package service implements the weekly report business logic on top of
// the repository: validation, derived metrics and exports.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/samihq/weekly-reports/internal/domain/reports"
	"github.com/samihq/weekly-reports/internal/domain/reports/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service coordinates report creation, lookup and export.
type Service struct {
	repo     repository.ReportRepository
	validate *validator.Validate
	logger   *slog.Logger
	onCreate []func(ctx context.Context, report *reports.Report)
}

func NewService(repo repository.ReportRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// OnCreated registers a hook that runs in the background after each
// successful submission. Register before serving traffic.
func (s *Service) OnCreated(fn func(ctx context.Context, report *reports.Report)) {
	s.onCreate = append(s.onCreate, fn)
}

// Create validates a submission, derives completion metrics and persists
// the report with its task rows in one transaction.
func (s *Service) Create(ctx context.Context, input reports.CreateReportInput) (*reports.Report, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}

	report := &reports.Report{
		UserID:            input.UserID,
		WeekNumber:        input.WeekNumber,
		Year:              input.Year,
		Workload:          input.Workload,
		Concerns:          input.Concerns,
		Improvements:      input.Improvements,
		Priorities:        input.Priorities,
		TasksCompleted:    len(input.CompletedTasks),
		TasksNotCompleted: len(input.NotCompletedTasks),
	}
	report.CompletionRate = completionRate(len(input.CompletedTasks), len(input.NotCompletedTasks))
	for _, t := range input.CompletedTasks {
		report.CompletedTasks = append(report.CompletedTasks, reports.CompletedTask{
			Title:   t.Title,
			Project: t.Project,
			Hours:   t.Hours,
		})
	}
	for _, t := range input.NotCompletedTasks {
		if strings.TrimSpace(t.Blocker) != "" {
			report.HasBlockers = true
		}
		report.NotCompletedTasks = append(report.NotCompletedTasks, reports.NotCompletedTask{
			Title:   t.Title,
			Reason:  t.Reason,
			ETA:     t.ETA,
			ETARaw:  t.ETARaw,
			Blocker: t.Blocker,
		})
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		slog.Int64("report_id", report.ID),
		slog.Int64("user_id", report.UserID),
		slog.Int("week", report.WeekNumber),
		slog.Int("year", report.Year),
		slog.Int("completion_rate", report.CompletionRate))

	// Board sync and manager notifications run off the request path.
	for _, fn := range s.onCreate {
		go fn(context.WithoutCancel(ctx), report)
	}
	return report, nil
}

// Get returns a report with its task rows.
func (s *Service) Get(ctx context.Context, reportID int64) (*reports.Report, error) {
	return s.repo.GetByID(ctx, reportID)
}

// GetByUserWeek returns the report a user filed for a given ISO week.
func (s *Service) GetByUserWeek(ctx context.Context, userID int64, weekNumber, year int) (*reports.Report, error) {
	return s.repo.GetByUserWeek(ctx, userID, weekNumber, year)
}

// List returns reports matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter reports.Filter) ([]reports.Report, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.repo.List(ctx, filter)
}

// AttachTrelloCard records the Trello card created for a report.
func (s *Service) AttachTrelloCard(ctx context.Context, reportID int64, cardID, cardURL string) error {
	return s.repo.UpdateTrelloInfo(ctx, reportID, cardID, cardURL)
}

// Delete removes a report and its task rows.
func (s *Service) Delete(ctx context.Context, reportID int64) error {
	if err := s.repo.Delete(ctx, reportID); err != nil {
		return err
	}
	s.logger.Info("report deleted", slog.Int64("report_id", reportID))
	return nil
}

// completionRate is completed over all tasks as a rounded percentage,
// zero when the report has no tasks at all.
func completionRate(completed, notCompleted int) int {
	total := completed + notCompleted
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
