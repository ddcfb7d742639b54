package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// ProjectFilter defines filtering options for projects
type ProjectFilter struct {
	UserID         *uuid.UUID
	Status         *ProjectStatus
	DeadlineBefore *time.Time
	Page           int
	PageSize       int
}

// ProjectRepository defines the interface for project persistence operations
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context, filter ProjectFilter) ([]Project, int64, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	result := r.db.WithContext(ctx).First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}
	return &project, nil
}

func (r *projectRepository) FindAll(ctx context.Context, filter ProjectFilter) ([]Project, int64, error) {
	var projects []Project
	var total int64

	query := r.db.WithContext(ctx)

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DeadlineBefore != nil {
		query = query.Where("deadline < ?", *filter.DeadlineBefore)
	}

	// Count total before pagination
	err := query.Model(&Project{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}

	query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)

	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *Project) error {
	result := r.db.WithContext(ctx).Save(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
