package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// TaskFilter defines filtering options for tasks
type TaskFilter struct {
	UserID         *uuid.UUID
	Status         *TaskStatus
	Priority       *TaskPriority
	Category       *string
	Objective      *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	IsRecurring    *bool
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOverduePending returns pending tasks scheduled before the cutoff.
	FindOverduePending(ctx context.Context, before time.Time) ([]Task, error)
	// RescheduleMany moves the given tasks to a new scheduled date.
	RescheduleMany(ctx context.Context, ids []uuid.UUID, to time.Time) (int64, error)
}

type taskRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.WithContext(ctx)

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Objective != nil {
		query = query.Where("objective = ?", filter.Objective)
	}
	if filter.ScheduledStart != nil {
		query = query.Where("scheduled_at >= ?", *filter.ScheduledStart)
	}
	if filter.ScheduledEnd != nil {
		query = query.Where("scheduled_at < ?", *filter.ScheduledEnd)
	}
	if filter.IsRecurring != nil {
		query = query.Where("is_recurring = ?", *filter.IsRecurring)
	}

	// Count total before pagination
	err := query.Model(&Task{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}

	query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) FindOverduePending(ctx context.Context, before time.Time) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at < ?", TaskStatusPending, before).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) RescheduleMany(ctx context.Context, ids []uuid.UUID, to time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&Task{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"scheduled_at": to, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}
