package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// reportRow is one report as the aggregations consume it.
type reportRow struct {
	ReportID       int64
	UserID         int64
	UserName       string
	WeekNumber     int
	Year           int
	Workload       int
	TasksCompleted int
	CompletionRate int
	HasBlockers    bool
}

// DB is the subset of pgxpool.Pool the stats queries need.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository runs the read-only aggregation queries.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const rowColumns = `r.report_id, r.user_id, u.name, r.week_number, r.year, r.workload,
	r.tasks_completed, r.completion_rate, r.has_blockers`

func (s *Repository) teamWeekRows(ctx context.Context, team string, weekNumber, year int) ([]reportRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+rowColumns+`
		FROM reports r
		JOIN users u ON u.user_id = r.user_id
		WHERE u.team = $1 AND r.week_number = $2 AND r.year = $3
		ORDER BY r.completion_rate DESC, u.name`,
		team, weekNumber, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query team reports: %w", err)
	}
	defer rows.Close()
	return collectRows(rows)
}

func (s *Repository) userRows(ctx context.Context, userID int64, limit int) ([]reportRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+rowColumns+`
		FROM reports r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.year DESC, r.week_number DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query user reports: %w", err)
	}
	defer rows.Close()
	return collectRows(rows)
}

func (s *Repository) periodRows(ctx context.Context, year, fromWeek, toWeek int) ([]reportRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+rowColumns+`
		FROM reports r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.year = $1 AND r.week_number BETWEEN $2 AND $3
		ORDER BY r.week_number, u.name`,
		year, fromWeek, toWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query period reports: %w", err)
	}
	defer rows.Close()
	return collectRows(rows)
}

// overdueTaskCount counts not-completed tasks of a team's weekly reports
// whose promised ETA is already in the past.
func (s *Repository) overdueTaskCount(ctx context.Context, team string, weekNumber, year int, now time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tasks_not_completed t
		JOIN reports r ON r.report_id = t.report_id
		JOIN users u ON u.user_id = r.user_id
		WHERE u.team = $1 AND r.week_number = $2 AND r.year = $3
		  AND t.eta IS NOT NULL AND t.eta < $4`,
		team, weekNumber, year, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	return count, nil
}

// periodReasons returns the raw not-completed reasons inside a week range.
func (s *Repository) periodReasons(ctx context.Context, year, fromWeek, toWeek int) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.reason
		FROM tasks_not_completed t
		JOIN reports r ON r.report_id = t.report_id
		WHERE r.year = $1 AND r.week_number BETWEEN $2 AND $3`,
		year, fromWeek, toWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query reasons: %w", err)
	}
	defer rows.Close()

	var reasons []string
	for rows.Next() {
		var reason string
		if err := rows.Scan(&reason); err != nil {
			return nil, fmt.Errorf("failed to scan reason: %w", err)
		}
		reasons = append(reasons, reason)
	}
	return reasons, rows.Err()
}

func (s *Repository) overall(ctx context.Context) (OverallStats, error) {
	var o OverallStats
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM reports),
			(SELECT COUNT(*) FROM tasks_completed),
			(SELECT COUNT(*) FROM tasks_not_completed),
			(SELECT COALESCE(AVG(completion_rate), 0) FROM reports)`,
	).Scan(&o.Users, &o.Reports, &o.TasksCompleted, &o.TasksNotCompleted, &o.AvgCompletionRate)
	if err != nil {
		return OverallStats{}, fmt.Errorf("failed to query overall stats: %w", err)
	}
	return o, nil
}

func collectRows(rows pgx.Rows) ([]reportRow, error) {
	var out []reportRow
	for rows.Next() {
		var r reportRow
		err := rows.Scan(&r.ReportID, &r.UserID, &r.UserName, &r.WeekNumber, &r.Year,
			&r.Workload, &r.TasksCompleted, &r.CompletionRate, &r.HasBlockers)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
