package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/samihq/weekly-reports/internal/domain/reports"
)

// DB is the subset of pgxpool.Pool the repository needs; it lets tests
// substitute a mock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresReportRepository persists reports in Postgres
type PostgresReportRepository struct {
	db DB
}

// NewPostgresReportRepository creates a new report repository
func NewPostgresReportRepository(db DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

const reportColumns = `r.report_id, r.user_id, r.week_number, r.year, r.workload,
	r.tasks_completed, r.tasks_not_completed, r.completion_rate, r.has_blockers,
	r.concerns, r.improvements, r.priorities, r.trello_card_id, r.trello_card_url,
	r.created_at, r.updated_at, u.name, u.team`

// Create inserts the report and both task lists in one transaction.
func (r *PostgresReportRepository) Create(ctx context.Context, report *reports.Report) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO reports (user_id, week_number, year, workload,
			tasks_completed, tasks_not_completed, completion_rate, has_blockers,
			concerns, improvements, priorities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING report_id, created_at, updated_at`,
		report.UserID, report.WeekNumber, report.Year, report.Workload,
		report.TasksCompleted, report.TasksNotCompleted, report.CompletionRate, report.HasBlockers,
		report.Concerns, report.Improvements, report.Priorities,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert report: %w", err)
	}

	for i := range report.CompletedTasks {
		task := &report.CompletedTasks[i]
		task.ReportID = report.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO tasks_completed (report_id, title, project, hours)
			VALUES ($1, $2, $3, $4)
			RETURNING task_id`,
			task.ReportID, task.Title, task.Project, task.Hours,
		).Scan(&task.ID)
		if err != nil {
			return fmt.Errorf("failed to insert completed task: %w", err)
		}
	}

	for i := range report.NotCompletedTasks {
		task := &report.NotCompletedTasks[i]
		task.ReportID = report.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO tasks_not_completed (report_id, title, reason, eta, eta_raw, blocker)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
			RETURNING task_id`,
			task.ReportID, task.Title, task.Reason, task.ETA, task.ETARaw, task.Blocker,
		).Scan(&task.ID)
		if err != nil {
			return fmt.Errorf("failed to insert not completed task: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID fetches a report with its task lists
func (r *PostgresReportRepository) GetByID(ctx context.Context, id int64) (*reports.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports r JOIN users u ON u.user_id = r.user_id
		WHERE r.report_id = $1`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetByUserWeek fetches a user's report for one ISO week
func (r *PostgresReportRepository) GetByUserWeek(ctx context.Context, userID int64, weekNumber, year int) (*reports.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports r JOIN users u ON u.user_id = r.user_id
		WHERE r.user_id = $1 AND r.week_number = $2 AND r.year = $3`

	report, err := scanReport(r.db.QueryRow(ctx, query, userID, weekNumber, year))
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns reports matching a filter, newest first, with task lists.
func (r *PostgresReportRepository) List(ctx context.Context, filter reports.Filter) ([]reports.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports r JOIN users u ON u.user_id = r.user_id
		WHERE 1=1`
	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND r.user_id = $%d", len(args))
	}
	if filter.Team != "" {
		args = append(args, filter.Team)
		query += fmt.Sprintf(" AND u.team = $%d", len(args))
	}
	if filter.WeekNumber != nil {
		args = append(args, *filter.WeekNumber)
		query += fmt.Sprintf(" AND r.week_number = $%d", len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND r.year = $%d", len(args))
	}

	query += " ORDER BY r.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var result []reports.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := r.loadTasks(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// CountByUser counts a user's reports
func (r *PostgresReportRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// UpdateTrelloInfo stores the synced kanban card reference
func (r *PostgresReportRepository) UpdateTrelloInfo(ctx context.Context, reportID int64, cardID, cardURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reports SET trello_card_id = $2, trello_card_url = $3, updated_at = now()
		WHERE report_id = $1`,
		reportID, cardID, cardURL)
	if err != nil {
		return fmt.Errorf("failed to update trello info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a report; task rows cascade.
func (r *PostgresReportRepository) Delete(ctx context.Context, reportID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE report_id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReport(row pgx.Row) (*reports.Report, error) {
	var r reports.Report
	err := row.Scan(&r.ID, &r.UserID, &r.WeekNumber, &r.Year, &r.Workload,
		&r.TasksCompleted, &r.TasksNotCompleted, &r.CompletionRate, &r.HasBlockers,
		&r.Concerns, &r.Improvements, &r.Priorities, &r.TrelloCardID, &r.TrelloCardURL,
		&r.CreatedAt, &r.UpdatedAt, &r.UserName, &r.Team)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	return &r, nil
}

func (r *PostgresReportRepository) loadTasks(ctx context.Context, report *reports.Report) error {
	rows, err := r.db.Query(ctx, `
		SELECT task_id, report_id, title, project, hours
		FROM tasks_completed WHERE report_id = $1 ORDER BY task_id`,
		report.ID)
	if err != nil {
		return fmt.Errorf("failed to load completed tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t reports.CompletedTask
		if err := rows.Scan(&t.ID, &t.ReportID, &t.Title, &t.Project, &t.Hours); err != nil {
			return fmt.Errorf("failed to scan completed task: %w", err)
		}
		report.CompletedTasks = append(report.CompletedTasks, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT task_id, report_id, title, reason, eta, COALESCE(eta_raw, ''), COALESCE(blocker, '')
		FROM tasks_not_completed WHERE report_id = $1 ORDER BY task_id`,
		report.ID)
	if err != nil {
		return fmt.Errorf("failed to load not completed tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t reports.NotCompletedTask
		if err := rows.Scan(&t.ID, &t.ReportID, &t.Title, &t.Reason, &t.ETA, &t.ETARaw, &t.Blocker); err != nil {
			return fmt.Errorf("failed to scan not completed task: %w", err)
		}
		report.NotCompletedTasks = append(report.NotCompletedTasks, t)
	}
	return rows.Err()
}
