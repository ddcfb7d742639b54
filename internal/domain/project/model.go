package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusActive     ProjectStatus = "active"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusPaused     ProjectStatus = "paused"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusInProgress,
		ProjectStatusOnHold, ProjectStatusPaused, ProjectStatusCompleted,
		ProjectStatusCancelled:
		return true
	}
	return false
}

// Project represents a project in the system
type Project struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID          uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index:idx_project_user"`
	Name            string          `json:"name" gorm:"not null"`
	Description     string          `json:"description"`
	Status          ProjectStatus   `json:"status" gorm:"not null;default:'planning';index:idx_project_status"`
	Progress        int             `json:"progress" gorm:"not null;default:0"`
	Deadline        *time.Time      `json:"deadline,omitempty" gorm:"index:idx_project_deadline"`
	EstimatedBudget decimal.Decimal `json:"estimated_budget" gorm:"type:decimal(12,2);default:0"`
	ActualCost      decimal.Decimal `json:"actual_cost" gorm:"type:decimal(12,2);default:0"`
	TeamSize        int             `json:"team_size" gorm:"not null;default:1"`
	Tags            pq.StringArray  `json:"tags,omitempty" gorm:"type:text[]"`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

var (
	ErrInvalidStatus   = errors.New("invalid project status")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// Validate performs basic validation of the project model
func (p *Project) Validate() error {
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.Progress < 0 || p.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

// BeforeCreate hook is called before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}
	if p.TeamSize == 0 {
		p.TeamSize = 1
	}
	return p.Validate()
}

// BeforeUpdate hook is called before updating a project
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	return p.Validate()
}
