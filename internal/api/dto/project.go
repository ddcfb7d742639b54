package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Status          string          `json:"status" validate:"omitempty,oneof=planning active in_progress on_hold paused completed cancelled"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	EstimatedBudget decimal.Decimal `json:"estimated_budget"`
	TeamSize        int             `json:"team_size" validate:"omitempty,min=1"`
	Tags            []string        `json:"tags,omitempty"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=planning active in_progress on_hold paused completed cancelled"`
	Progress        *int             `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	EstimatedBudget *decimal.Decimal `json:"estimated_budget,omitempty"`
	ActualCost      *decimal.Decimal `json:"actual_cost,omitempty"`
	TeamSize        *int             `json:"team_size,omitempty" validate:"omitempty,min=1"`
	Tags            []string         `json:"tags,omitempty"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	Progress        int             `json:"progress"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	EstimatedBudget decimal.Decimal `json:"estimated_budget"`
	ActualCost      decimal.Decimal `json:"actual_cost"`
	TeamSize        int             `json:"team_size"`
	Tags            []string        `json:"tags,omitempty"`
	BudgetUsage     *float64        `json:"budget_usage,omitempty"`
	OverBudget      *bool           `json:"over_budget,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}
