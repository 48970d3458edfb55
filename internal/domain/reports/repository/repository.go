package repository

import (
	"context"
	"errors"

	"github.com/samihq/weekly-reports/internal/domain/reports"
)

var (
	// ErrNotFound is returned when no report matches the lookup.
	ErrNotFound = errors.New("report not found")
	// ErrDuplicate is returned when a user already filed a report for
	// the same ISO week.
	ErrDuplicate = errors.New("report already exists for this week")
)

// ReportRepository defines the report persistence operations
type ReportRepository interface {
	Create(ctx context.Context, report *reports.Report) error
	GetByID(ctx context.Context, id int64) (*reports.Report, error)
	GetByUserWeek(ctx context.Context, userID int64, weekNumber, year int) (*reports.Report, error)
	List(ctx context.Context, filter reports.Filter) ([]reports.Report, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	UpdateTrelloInfo(ctx context.Context, reportID int64, cardID, cardURL string) error
	Delete(ctx context.Context, reportID int64) error
}
