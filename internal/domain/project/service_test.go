package project

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock repository for testing
type mockRepository struct {
	projects []Project
}

func (m *mockRepository) Create(ctx context.Context, project *Project) error {
	m.projects = append(m.projects, *project)
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == id {
			return &m.projects[i], nil
		}
	}
	return nil, ErrProjectNotFound
}

func (m *mockRepository) FindAll(ctx context.Context, filter ProjectFilter) ([]Project, int64, error) {
	var out []Project
	for _, p := range m.projects {
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(ctx context.Context, project *Project) error {
	for i := range m.projects {
		if m.projects[i].ID == project.ID {
			m.projects[i] = *project
			return nil
		}
	}
	return ErrProjectNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return ErrProjectNotFound
}

func TestCreateProjectDefaults(t *testing.T) {
	svc := NewService(&mockRepository{}, zap.NewNop())

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		UserID: uuid.New(),
		Name:   "kitchen remodel",
	})
	require.NoError(t, err)
	assert.Equal(t, ProjectStatusPlanning, created.Status)
	assert.Equal(t, 1, created.TeamSize)
	assert.True(t, created.ActualCost.IsZero())

	_, err = svc.CreateProject(context.Background(), CreateProjectInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProjectProgressBounds(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		UserID: uuid.New(),
		Name:   "rewrite billing",
	})
	require.NoError(t, err)

	bad := 120
	_, err = svc.UpdateProject(context.Background(), created.ID, UpdateProjectInput{Progress: &bad})
	assert.ErrorIs(t, err, ErrInvalidProgress)

	ok := 60
	updated, err := svc.UpdateProject(context.Background(), created.ID, UpdateProjectInput{Progress: &ok})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Progress)
}

func TestListOverviewBudgetUsage(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{projects: []Project{
		{
			ID:              uuid.New(),
			UserID:          userID,
			Name:            "within budget",
			Status:          ProjectStatusActive,
			EstimatedBudget: decimal.NewFromInt(1000),
			ActualCost:      decimal.NewFromInt(400),
		},
		{
			ID:              uuid.New(),
			UserID:          userID,
			Name:            "blown budget",
			Status:          ProjectStatusInProgress,
			EstimatedBudget: decimal.NewFromInt(200),
			ActualCost:      decimal.NewFromInt(300),
		},
		{
			ID:     uuid.New(),
			UserID: userID,
			Name:   "no budget set",
			Status: ProjectStatusPlanning,
		},
	}}
	svc := NewService(repo, zap.NewNop())

	overview, err := svc.ListOverview(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, overview, 3)

	assert.InDelta(t, 40.0, overview[0].BudgetUsage, 0.001)
	assert.False(t, overview[0].OverBudget)

	// Usage is deliberately uncapped so overruns stay visible.
	assert.InDelta(t, 150.0, overview[1].BudgetUsage, 0.001)
	assert.True(t, overview[1].OverBudget)

	assert.Zero(t, overview[2].BudgetUsage)
	assert.False(t, overview[2].OverBudget)
}
