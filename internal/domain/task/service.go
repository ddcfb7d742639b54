package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/mzohdy/northstar/internal/domain/events"
	"github.com/mzohdy/northstar/internal/metrics"
	"github.com/mzohdy/northstar/pkg/dates"
)

// EventPublisher pushes cache-invalidation events to the dashboard
// subscribers. Satisfied by the redis cache client.
type EventPublisher interface {
	PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error
}

// StatsSettings carries the calendar and category configuration the
// derived statistics run under.
type StatsSettings struct {
	Location       *time.Location
	WeekStart      time.Weekday
	Categories     []string
	WorkCategories []string
	LifeCategories []string
}

// WeeklyStats is the full derived-statistics view for one user's week.
type WeeklyStats struct {
	Daily             []metrics.DailyStats    `json:"daily"`
	StreakDays        int                     `json:"streak_days"`
	CompletionRate    float64                 `json:"completion_rate"`
	ProductivityScore int                     `json:"productivity_score"`
	Categories        []metrics.CategoryStats `json:"categories"`
	Priorities        []metrics.PriorityStats `json:"priorities"`
	WorkShare         float64                 `json:"work_share"`
	LifeShare         float64                 `json:"life_share"`
}

// TasksDashboardMetrics represents summary counters for the dashboard.
type TasksDashboardMetrics struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

type CreateTaskInput struct {
	UserID           uuid.UUID              `json:"user_id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Status           TaskStatus             `json:"status"`
	Priority         TaskPriority           `json:"priority"`
	Category         string                 `json:"category"`
	Objective        string                 `json:"objective,omitempty"`
	DurationMinutes  *int                   `json:"duration_minutes,omitempty"`
	ScheduledAt      *time.Time             `json:"scheduled_at,omitempty"`
	Tags             []string               `json:"tags,omitempty"`
	IsRecurring      bool                   `json:"is_recurring"`
	RecurringPattern map[string]interface{} `json:"recurring_pattern,omitempty"`
}

type UpdateTaskInput struct {
	Title           *string       `json:"title,omitempty"`
	Description     *string       `json:"description,omitempty"`
	Status          *TaskStatus   `json:"status,omitempty"`
	Priority        *TaskPriority `json:"priority,omitempty"`
	Category        *string       `json:"category,omitempty"`
	Objective       *string       `json:"objective,omitempty"`
	DurationMinutes *int          `json:"duration_minutes,omitempty"`
	ScheduledAt     *time.Time    `json:"scheduled_at,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
}

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status TaskStatus) (*Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// Derived statistics
	WeeklyStats(ctx context.Context, userID uuid.UUID, ref time.Time) (*WeeklyStats, error)
	ObjectiveProgress(ctx context.Context, userID uuid.UUID) ([]metrics.ObjectiveProgress, error)
	GetDashboardMetrics(ctx context.Context, userID uuid.UUID) (TasksDashboardMetrics, error)

	// ReplanOverdue reschedules overdue pending tasks to tomorrow.
	ReplanOverdue(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	repo      TaskRepository
	publisher EventPublisher
	settings  StatsSettings
	logger    *zap.Logger
}

func NewService(repo TaskRepository, publisher EventPublisher, settings StatsSettings, logger *zap.Logger) Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &service{repo: repo, publisher: publisher, settings: settings, logger: logger}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = TaskPriorityMedium
	}

	task := &Task{
		ID:               uuid.New(),
		UserID:           input.UserID,
		Title:            input.Title,
		Description:      input.Description,
		Status:           input.Status,
		Priority:         input.Priority,
		Category:         input.Category,
		Objective:        input.Objective,
		DurationMinutes:  input.DurationMinutes,
		ScheduledAt:      input.ScheduledAt,
		Tags:             input.Tags,
		IsRecurring:      input.IsRecurring,
		RecurringPattern: datatypes.JSONMap(input.RecurringPattern),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publishInvalidate(ctx, task, "task_created")
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Objective != nil {
		task.Objective = *input.Objective
	}
	if input.DurationMinutes != nil {
		task.DurationMinutes = input.DurationMinutes
	}
	if input.ScheduledAt != nil {
		task.ScheduledAt = input.ScheduledAt
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}

	task.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publishInvalidate(ctx, task, "task_updated")
	return task, nil
}

func (s *service) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status TaskStatus) (*Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publishInvalidate(ctx, task, "task_status_updated")
	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishInvalidate(ctx, task, "task_deleted")
	return nil
}

func (s *service) WeeklyStats(ctx context.Context, userID uuid.UUID, ref time.Time) (*WeeklyStats, error) {
	loc := s.settings.Location
	weekStart := dates.StartOfWeek(ref, s.settings.WeekStart, loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	tasks, _, err := s.repo.FindAll(ctx, TaskFilter{
		UserID:         &userID,
		ScheduledStart: &weekStart,
		ScheduledEnd:   &weekEnd,
	})
	if err != nil {
		return nil, err
	}

	snapshot := Snapshots(tasks)
	daily := metrics.ComputeDailyStats(snapshot, ref, s.settings.WeekStart, loc)
	streak := metrics.ComputeStreak(daily)

	completed, total := 0, 0
	for _, d := range daily {
		completed += d.Completed
		total += d.Total
	}
	rate := metrics.CompletionRate(completed, total)
	avgDuration := metrics.AverageCompletedDuration(snapshot)

	work, life := metrics.ComputeWorkLifeBalance(snapshot, s.settings.WorkCategories, s.settings.LifeCategories)

	return &WeeklyStats{
		Daily:             daily,
		StreakDays:        streak,
		CompletionRate:    rate,
		ProductivityScore: metrics.ComputeProductivityScore(rate, streak, avgDuration),
		Categories:        metrics.ComputeCategoryStats(snapshot, s.settings.Categories),
		Priorities:        metrics.ComputePriorityBreakdown(snapshot),
		WorkShare:         work,
		LifeShare:         life,
	}, nil
}

func (s *service) ObjectiveProgress(ctx context.Context, userID uuid.UUID) ([]metrics.ObjectiveProgress, error) {
	tasks, _, err := s.repo.FindAll(ctx, TaskFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}
	return metrics.ComputeObjectiveProgress(Snapshots(tasks)), nil
}

func (s *service) GetDashboardMetrics(ctx context.Context, userID uuid.UUID) (TasksDashboardMetrics, error) {
	tasks, _, err := s.repo.FindAll(ctx, TaskFilter{UserID: &userID})
	if err != nil {
		return TasksDashboardMetrics{}, err
	}

	out := TasksDashboardMetrics{Total: len(tasks)}
	today := dates.StartOfDay(time.Now(), s.settings.Location)
	for _, t := range tasks {
		if t.Status == TaskStatusCompleted {
			out.Completed++
		}
		if t.Status == TaskStatusPending && t.ScheduledAt != nil && t.ScheduledAt.Before(today) {
			out.Overdue++
		}
	}
	return out, nil
}

// ReplanOverdue moves every pending task scheduled before today onto
// tomorrow. Completed and cancelled tasks keep their history untouched.
func (s *service) ReplanOverdue(ctx context.Context, now time.Time) (int64, error) {
	loc := s.settings.Location
	today := dates.StartOfDay(now, loc)

	overdue, err := s.repo.FindOverduePending(ctx, today)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(overdue))
	for i, t := range overdue {
		ids[i] = t.ID
	}

	tomorrow := today.AddDate(0, 0, 1)
	moved, err := s.repo.RescheduleMany(ctx, ids, tomorrow)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Replanned overdue tasks",
		zap.Int64("moved", moved),
		zap.Time("rescheduled_to", tomorrow))

	// One event per affected user keeps cached dashboards honest.
	seen := make(map[uuid.UUID]bool)
	for _, t := range overdue {
		if seen[t.UserID] {
			continue
		}
		seen[t.UserID] = true
		s.publish(ctx, t.UserID, t.ID, "tasks_replanned")
	}

	return moved, nil
}

func (s *service) publishInvalidate(ctx context.Context, task *Task, action string) {
	s.publish(ctx, task.UserID, task.ID, action)
}

func (s *service) publish(ctx context.Context, userID, entityID uuid.UUID, action string) {
	if s.publisher == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: events.DashboardEventCacheInvalidate,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Details:   map[string]interface{}{"action": action},
	}
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
