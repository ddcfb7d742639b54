package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/metrics"
)

type CreateProjectInput struct {
	UserID          uuid.UUID       `json:"user_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Status          ProjectStatus   `json:"status"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	EstimatedBudget decimal.Decimal `json:"estimated_budget"`
	TeamSize        int             `json:"team_size"`
	Tags            []string        `json:"tags,omitempty"`
}

type UpdateProjectInput struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Status          *ProjectStatus   `json:"status,omitempty"`
	Progress        *int             `json:"progress,omitempty"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	EstimatedBudget *decimal.Decimal `json:"estimated_budget,omitempty"`
	ActualCost      *decimal.Decimal `json:"actual_cost,omitempty"`
	TeamSize        *int             `json:"team_size,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
}

// ProjectOverview is a project annotated with its derived budget figures.
type ProjectOverview struct {
	Project
	BudgetUsage float64 `json:"budget_usage"`
	OverBudget  bool    `json:"over_budget"`
}

type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, int64, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	// ListOverview returns the user's projects with budget usage attached.
	ListOverview(ctx context.Context, userID uuid.UUID) ([]ProjectOverview, error)
}

type service struct {
	repo   ProjectRepository
	logger *zap.Logger
}

func NewService(repo ProjectRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = ProjectStatusPlanning
	}
	if input.TeamSize == 0 {
		input.TeamSize = 1
	}

	project := &Project{
		ID:              uuid.New(),
		UserID:          input.UserID,
		Name:            input.Name,
		Description:     input.Description,
		Status:          input.Status,
		Deadline:        input.Deadline,
		EstimatedBudget: input.EstimatedBudget,
		ActualCost:      decimal.Zero,
		TeamSize:        input.TeamSize,
		Tags:            input.Tags,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *input.Status
	}
	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, ErrInvalidProgress
		}
		project.Progress = *input.Progress
	}
	if input.Deadline != nil {
		project.Deadline = input.Deadline
	}
	if input.EstimatedBudget != nil {
		project.EstimatedBudget = *input.EstimatedBudget
	}
	if input.ActualCost != nil {
		project.ActualCost = *input.ActualCost
	}
	if input.TeamSize != nil {
		project.TeamSize = *input.TeamSize
	}
	if input.Tags != nil {
		project.Tags = input.Tags
	}

	project.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListOverview(ctx context.Context, userID uuid.UUID) ([]ProjectOverview, error) {
	projects, _, err := s.repo.FindAll(ctx, ProjectFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	overview := make([]ProjectOverview, 0, len(projects))
	for _, p := range projects {
		usage := metrics.BudgetUsage(p.ActualCost, p.EstimatedBudget)
		overview = append(overview, ProjectOverview{
			Project:     p,
			BudgetUsage: usage,
			OverBudget:  usage > 100,
		})
	}
	return overview, nil
}
