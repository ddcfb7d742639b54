package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/domain/events"
)

// Mock repository for testing
type mockRepository struct {
	tasks          []Task
	rescheduledIDs []uuid.UUID
	rescheduledTo  time.Time
}

func (m *mockRepository) Create(ctx context.Context, task *Task) error {
	m.tasks = append(m.tasks, *task)
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i], nil
		}
	}
	return nil, ErrTaskNotFound
}

func (m *mockRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var out []Task
	for _, t := range m.tasks {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		if filter.ScheduledStart != nil {
			if t.ScheduledAt == nil || t.ScheduledAt.Before(*filter.ScheduledStart) {
				continue
			}
		}
		if filter.ScheduledEnd != nil {
			if t.ScheduledAt == nil || !t.ScheduledAt.Before(*filter.ScheduledEnd) {
				continue
			}
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(ctx context.Context, task *Task) error {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = *task
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

func (m *mockRepository) FindOverduePending(ctx context.Context, before time.Time) ([]Task, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.Status == TaskStatusPending && t.ScheduledAt != nil && t.ScheduledAt.Before(before) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepository) RescheduleMany(ctx context.Context, ids []uuid.UUID, to time.Time) (int64, error) {
	m.rescheduledIDs = ids
	m.rescheduledTo = to
	return int64(len(ids)), nil
}

// Mock publisher recording emitted events
type mockPublisher struct {
	published []*events.DashboardEvent
}

func (m *mockPublisher) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	m.published = append(m.published, event)
	return nil
}

func testSettings() StatsSettings {
	return StatsSettings{
		Location:       time.UTC,
		WeekStart:      time.Sunday,
		Categories:     []string{"work", "personal", "health"},
		WorkCategories: []string{"work"},
		LifeCategories: []string{"personal", "health"},
	}
}

func newTask(userID uuid.UUID, status TaskStatus, category string, duration *int, scheduled *time.Time) Task {
	return Task{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           "t",
		Status:          status,
		Priority:        TaskPriorityMedium,
		Category:        category,
		DurationMinutes: duration,
		ScheduledAt:     scheduled,
	}
}

func TestWeeklyStats(t *testing.T) {
	userID := uuid.New()
	ref := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC) // Wednesday
	today := time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 7, 9, 9, 0, 0, 0, time.UTC)
	d30, d45 := 30, 45

	repo := &mockRepository{tasks: []Task{
		newTask(userID, TaskStatusCompleted, "work", &d30, &today),
		newTask(userID, TaskStatusCompleted, "personal", &d45, &today),
		newTask(userID, TaskStatusPending, "work", nil, &today),
		newTask(userID, TaskStatusCompleted, "work", &d30, &tuesday),
		// Other user's tasks must not leak in.
		newTask(uuid.New(), TaskStatusCompleted, "work", &d30, &today),
	}}

	svc := NewService(repo, &mockPublisher{}, testSettings(), zap.NewNop())

	stats, err := svc.WeeklyStats(context.Background(), userID, ref)
	require.NoError(t, err)

	assert.Len(t, stats.Daily, 7)
	assert.Equal(t, 3, stats.Daily[3].Total)
	assert.Equal(t, 2, stats.Daily[3].Completed)
	assert.Equal(t, 75, stats.Daily[3].MinutesSpent)
	assert.Equal(t, 1, stats.Daily[2].Completed)

	// Streak runs backward from Saturday, which is empty mid-week.
	assert.Equal(t, 0, stats.StreakDays)
	assert.InDelta(t, 75.0, stats.CompletionRate, 0.001)

	assert.InDelta(t, 57.142, stats.WorkShare, 0.001)
	assert.InDelta(t, 42.857, stats.LifeShare, 0.001)
}

func TestReplanOverdue(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 7, 10, 8, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -6)
	today := now.Add(2 * time.Hour)

	repo := &mockRepository{tasks: []Task{
		newTask(userID, TaskStatusPending, "work", nil, &yesterday),
		newTask(userID, TaskStatusPending, "personal", nil, &lastWeek),
		// Completed history stays where it is.
		newTask(userID, TaskStatusCompleted, "work", nil, &yesterday),
		// Today's tasks are not overdue.
		newTask(userID, TaskStatusPending, "work", nil, &today),
		// Unscheduled tasks are never replanned.
		newTask(userID, TaskStatusPending, "work", nil, nil),
	}}
	pub := &mockPublisher{}

	svc := NewService(repo, pub, testSettings(), zap.NewNop())

	moved, err := svc.ReplanOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)
	assert.Len(t, repo.rescheduledIDs, 2)
	assert.Equal(t, time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC), repo.rescheduledTo)

	// One invalidation event per affected user.
	assert.Len(t, pub.published, 1)
	assert.Equal(t, events.DashboardEventCacheInvalidate, pub.published[0].EventType)
}

func TestReplanOverdueNothingToDo(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, &mockPublisher{}, testSettings(), zap.NewNop())

	moved, err := svc.ReplanOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, moved)
	assert.Empty(t, repo.rescheduledIDs)
}

func TestCreateTaskDefaults(t *testing.T) {
	repo := &mockRepository{}
	pub := &mockPublisher{}
	svc := NewService(repo, pub, testSettings(), zap.NewNop())

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: uuid.New(),
		Title:  "water the plants",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskStatusPending, created.Status)
	assert.Equal(t, TaskPriorityMedium, created.Priority)
	assert.Len(t, pub.published, 1)

	_, err = svc.CreateTask(context.Background(), CreateTaskInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDashboardMetrics(t *testing.T) {
	userID := uuid.New()
	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 0, 3)

	repo := &mockRepository{tasks: []Task{
		newTask(userID, TaskStatusCompleted, "work", nil, &past),
		newTask(userID, TaskStatusPending, "work", nil, &past),
		newTask(userID, TaskStatusPending, "work", nil, &future),
	}}
	svc := NewService(repo, &mockPublisher{}, testSettings(), zap.NewNop())

	m, err := svc.GetDashboardMetrics(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 1, m.Completed)
	assert.Equal(t, 1, m.Overdue)
}
