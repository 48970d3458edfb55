package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// Service handles user business logic
type Service struct {
	repo     *Repository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a new user service
func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a new user after validating the input
func (s *Service) Register(ctx context.Context, input CreateUserInput) (*User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	user, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("team", string(user.Team)),
	)
	return user, nil
}

// Get fetches a user by id
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByTelegramID fetches a user by Telegram account id
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}

// List returns all users, optionally filtered by team
func (s *Service) List(ctx context.Context, team string) ([]User, error) {
	if team != "" {
		return s.repo.ListByTeam(ctx, team)
	}
	return s.repo.List(ctx)
}

// ListWithoutReport returns users missing a report for the week
func (s *Service) ListWithoutReport(ctx context.Context, weekNumber, year int) ([]User, error) {
	return s.repo.ListWithoutReport(ctx, weekNumber, year)
}

// Update applies a partial update
func (s *Service) Update(ctx context.Context, id int64, input UpdateUserInput) (*User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid user update: %w", err)
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a user
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
