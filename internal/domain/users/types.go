package users

import (
	"time"

	"github.com/samihq/weekly-reports/internal/domain/extract"
)

// User is a reporting employee.
type User struct {
	ID         int64            `json:"userId"`
	TelegramID int64            `json:"telegramId"`
	Name       string           `json:"name"`
	Position   extract.Position `json:"position"`
	Team       extract.Team     `json:"team"`
	Email      string           `json:"email,omitempty"`
	IsManager  bool             `json:"isManager"`
	ManagerID  *int64           `json:"managerId,omitempty"`
	Language   string           `json:"language"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// CreateUserInput is the payload for registering a user.
type CreateUserInput struct {
	TelegramID int64            `json:"telegramId" validate:"required"`
	Name       string           `json:"name" validate:"required,min=2,max=255"`
	Position   extract.Position `json:"position" validate:"omitempty,oneof=PM Dev Design QA BA Helpdesk Support Other"`
	Team       extract.Team     `json:"team" validate:"omitempty,oneof=Core Mobile Web Infra Data SAMI Other"`
	Email      string           `json:"email,omitempty" validate:"omitempty,email"`
	IsManager  bool             `json:"isManager"`
	ManagerID  *int64           `json:"managerId,omitempty"`
	Language   string           `json:"language" validate:"omitempty,oneof=uk en"`
}

// UpdateUserInput carries partial updates; nil fields are untouched.
type UpdateUserInput struct {
	Name      *string           `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Position  *extract.Position `json:"position,omitempty" validate:"omitempty,oneof=PM Dev Design QA BA Helpdesk Support Other"`
	Team      *extract.Team     `json:"team,omitempty" validate:"omitempty,oneof=Core Mobile Web Infra Data SAMI Other"`
	Email     *string           `json:"email,omitempty" validate:"omitempty,email"`
	IsManager *bool             `json:"isManager,omitempty"`
	ManagerID *int64            `json:"managerId,omitempty"`
	Language  *string           `json:"language,omitempty" validate:"omitempty,oneof=uk en"`
}
