package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title            string                 `json:"title" validate:"required"`
	Description      string                 `json:"description"`
	Status           string                 `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Priority         string                 `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category         string                 `json:"category"`
	Objective        string                 `json:"objective,omitempty"`
	DurationMinutes  *int                   `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	ScheduledAt      *time.Time             `json:"scheduled_at,omitempty"`
	Tags             []string               `json:"tags,omitempty"`
	IsRecurring      bool                   `json:"is_recurring"`
	RecurringPattern map[string]interface{} `json:"recurring_pattern,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task
type UpdateTaskRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Priority        *string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Category        *string    `json:"category,omitempty"`
	Objective       *string    `json:"objective,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
}

// UpdateTaskStatusRequest represents the request body for a status change
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID               uuid.UUID              `json:"id"`
	UserID           uuid.UUID              `json:"user_id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Status           string                 `json:"status"`
	Priority         string                 `json:"priority"`
	Category         string                 `json:"category"`
	Objective        string                 `json:"objective,omitempty"`
	DurationMinutes  *int                   `json:"duration_minutes,omitempty"`
	ScheduledAt      *time.Time             `json:"scheduled_at,omitempty"`
	Tags             []string               `json:"tags,omitempty"`
	IsRecurring      bool                   `json:"is_recurring"`
	RecurringPattern map[string]interface{} `json:"recurring_pattern,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks with metadata
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// TaskFilterRequest represents the query parameters for filtering tasks
type TaskFilterRequest struct {
	Status         string     `form:"status"`
	Priority       string     `form:"priority"`
	Category       string     `form:"category"`
	Objective      string     `form:"objective"`
	ScheduledStart *time.Time `form:"scheduled_start" time_format:"2006-01-02T15:04:05Z07:00"`
	ScheduledEnd   *time.Time `form:"scheduled_end" time_format:"2006-01-02T15:04:05Z07:00"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}
