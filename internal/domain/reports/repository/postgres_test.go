package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samihq/weekly-reports/internal/domain/reports"
)

func TestPostgresReportRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresReportRepository(mock)
	now := time.Now()

	report := &reports.Report{
		UserID:            7,
		WeekNumber:        9,
		Year:              2026,
		Workload:          4,
		TasksCompleted:    1,
		TasksNotCompleted: 1,
		CompletionRate:    50,
		HasBlockers:       true,
		CompletedTasks: []reports.CompletedTask{
			{Title: "Розробка API", Hours: 12},
		},
		NotCompletedTasks: []reports.NotCompletedTask{
			{Title: "Міграція бази", Reason: "Бракує вікна", Blocker: "Немає доступу"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reports")).
		WithArgs(int64(7), 9, 2026, 4, 1, 1, 50, true,
			(*string)(nil), (*string)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"report_id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks_completed")).
		WithArgs(int64(42), "Розробка API", "", float64(12)).
		WillReturnRows(pgxmock.NewRows([]string{"task_id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks_not_completed")).
		WithArgs(int64(42), "Міграція бази", "Бракує вікна", (*time.Time)(nil), "", "Немає доступу").
		WillReturnRows(pgxmock.NewRows([]string{"task_id"}).AddRow(int64(2)))
	mock.ExpectCommit()
	mock.ExpectRollback()

	err = repo.Create(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, int64(42), report.ID)
	assert.Equal(t, int64(42), report.CompletedTasks[0].ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReportRepository_CreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresReportRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reports")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err = repo.Create(context.Background(), &reports.Report{UserID: 7, WeekNumber: 9, Year: 2026, Workload: 3})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPostgresReportRepository_UpdateTrelloInfo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresReportRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reports SET trello_card_id")).
		WithArgs(int64(42), "card-1", "https://trello.com/c/card-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateTrelloInfo(context.Background(), 42, "card-1", "https://trello.com/c/card-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReportRepository_DeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresReportRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reports")).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresReportRepository_CountByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresReportRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reports")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
