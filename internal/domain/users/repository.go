package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// DB is the pgx surface the repository needs; *pgxpool.Pool satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository handles user persistence
type Repository struct {
	db DB
}

// NewRepository creates a new user repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `user_id, telegram_id, name, position, team, COALESCE(email, ''), is_manager, manager_id, language, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.TelegramID, &u.Name, &u.Position, &u.Team, &u.Email,
		&u.IsManager, &u.ManagerID, &u.Language, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user
func (r *Repository) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	position := input.Position
	if position == "" {
		position = "Other"
	}
	team := input.Team
	if team == "" {
		team = "Other"
	}
	language := input.Language
	if language == "" {
		language = "uk"
	}

	query := `
		INSERT INTO users (telegram_id, name, position, team, email, is_manager, manager_id, language)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query,
		input.TelegramID, input.Name, position, team, input.Email,
		input.IsManager, input.ManagerID, language))
}

// GetByID fetches a user by primary key
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByTelegramID fetches a user by Telegram account id
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, telegramID))
}

// List returns all users ordered by name
func (r *Repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

// ListByTeam returns users in a team
func (r *Repository) ListByTeam(ctx context.Context, team string) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE team = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by team: %w", err)
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

// ListWithoutReport returns users who have not filed a report for the
// given ISO week.
func (r *Repository) ListWithoutReport(ctx context.Context, weekNumber, year int) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM reports r
			WHERE r.user_id = u.user_id AND r.week_number = $1 AND r.year = $2
		)
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, weekNumber, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list users without report: %w", err)
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

// Update applies a partial update and returns the fresh row
func (r *Repository) Update(ctx context.Context, id int64, input UpdateUserInput) (*User, error) {
	query := `
		UPDATE users SET
			name       = COALESCE($2, name),
			position   = COALESCE($3, position),
			team       = COALESCE($4, team),
			email      = COALESCE($5, email),
			is_manager = COALESCE($6, is_manager),
			manager_id = COALESCE($7, manager_id),
			language   = COALESCE($8, language),
			updated_at = now()
		WHERE user_id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query, id,
		input.Name, input.Position, input.Team, input.Email,
		input.IsManager, input.ManagerID, input.Language))
}

// Delete removes a user
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
