package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mzohdy/northstar/internal/metrics"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task represents a task in the system
type Task struct {
	ID               uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID           uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index:idx_task_user"`
	Title            string            `json:"title" gorm:"not null"`
	Description      string            `json:"description"`
	Status           TaskStatus        `json:"status" gorm:"not null;default:'pending';index:idx_task_status"`
	Priority         TaskPriority      `json:"priority" gorm:"not null;default:'medium';index:idx_task_priority"`
	Category         string            `json:"category" gorm:"type:varchar(100);index:idx_task_category"`
	Objective        string            `json:"objective,omitempty" gorm:"type:varchar(255)"`
	DurationMinutes  *int              `json:"duration_minutes,omitempty"`
	ScheduledAt      *time.Time        `json:"scheduled_at,omitempty" gorm:"index:idx_task_scheduled"`
	Tags             pq.StringArray    `json:"tags,omitempty" gorm:"type:text[]"`
	IsRecurring      bool              `json:"is_recurring" gorm:"default:false;not null"`
	RecurringPattern datatypes.JSONMap `json:"recurring_pattern,omitempty" gorm:"type:jsonb;default:'{}'"`
	CreatedAt        time.Time         `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt        time.Time         `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// Common errors
var (
	ErrInvalidStatus   = NewError("invalid task status")
	ErrInvalidPriority = NewError("invalid task priority")
)

// Error represents a domain error
type Error struct {
	message string
}

// NewError creates a new Error instance
func NewError(message string) *Error {
	return &Error{message: message}
}

// Error returns the error message
func (e *Error) Error() string {
	return e.message
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks if the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if t.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if t.DurationMinutes != nil && *t.DurationMinutes < 0 {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Snapshot maps the persisted record onto the plain record the metrics
// aggregators consume.
func (t *Task) Snapshot() metrics.Task {
	return metrics.Task{
		Title:           t.Title,
		Status:          metrics.TaskStatus(t.Status),
		Priority:        metrics.TaskPriority(t.Priority),
		Category:        t.Category,
		DurationMinutes: t.DurationMinutes,
		ScheduledAt:     t.ScheduledAt,
		Objective:       t.Objective,
	}
}

// Snapshots converts a task list for the aggregators.
func Snapshots(tasks []Task) []metrics.Task {
	out := make([]metrics.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Snapshot()
	}
	return out
}
