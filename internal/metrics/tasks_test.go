package metrics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func minutes(m int) *int {
	return &m
}

func at(t time.Time) *time.Time {
	return &t
}

func TestComputeDailyStats(t *testing.T) {
	loc := time.UTC
	// Wednesday; week runs Sun Jul 7 .. Sat Jul 13
	ref := time.Date(2024, 7, 10, 14, 0, 0, 0, loc)
	today := time.Date(2024, 7, 10, 9, 0, 0, 0, loc)
	monday := time.Date(2024, 7, 8, 9, 0, 0, 0, loc)

	tasks := []Task{
		{Status: TaskStatusCompleted, ScheduledAt: at(today), DurationMinutes: minutes(30)},
		{Status: TaskStatusCompleted, ScheduledAt: at(today), DurationMinutes: minutes(45)},
		{Status: TaskStatusPending, ScheduledAt: at(today)},
		{Status: TaskStatusCancelled, ScheduledAt: at(today)},
		// Completed without a duration: counts for the day, adds no minutes.
		{Status: TaskStatusCompleted, ScheduledAt: at(monday)},
		// Unscheduled tasks never enter a bucket.
		{Status: TaskStatusCompleted, DurationMinutes: minutes(60)},
		// Outside the window.
		{Status: TaskStatusCompleted, ScheduledAt: at(ref.AddDate(0, 0, 10)), DurationMinutes: minutes(90)},
	}

	daily := ComputeDailyStats(tasks, ref, time.Sunday, loc)
	assert.Len(t, daily, 7)

	want := []DailyStats{
		{Date: time.Date(2024, 7, 7, 0, 0, 0, 0, loc)},
		{Date: time.Date(2024, 7, 8, 0, 0, 0, 0, loc), Total: 1, Completed: 1},
		{Date: time.Date(2024, 7, 9, 0, 0, 0, 0, loc)},
		{Date: time.Date(2024, 7, 10, 0, 0, 0, 0, loc), Total: 4, Completed: 2, MinutesSpent: 75},
		{Date: time.Date(2024, 7, 11, 0, 0, 0, 0, loc)},
		{Date: time.Date(2024, 7, 12, 0, 0, 0, 0, loc)},
		{Date: time.Date(2024, 7, 13, 0, 0, 0, 0, loc)},
	}
	if diff := cmp.Diff(want, daily); diff != "" {
		t.Errorf("daily stats mismatch (-want +got):\n%s", diff)
	}

	// Wednesday bucket reproduces the canonical scenario: 4 scheduled,
	// 2 completed, 50% rate, 75 minutes.
	assert.Equal(t, 50.0, CompletionRate(daily[3].Completed, daily[3].Total))
}

func TestComputeDailyStatsDeterministic(t *testing.T) {
	loc := time.UTC
	ref := time.Date(2024, 7, 10, 14, 0, 0, 0, loc)
	tasks := []Task{
		{Status: TaskStatusCompleted, ScheduledAt: at(ref), DurationMinutes: minutes(30)},
		{Status: TaskStatusPending, ScheduledAt: at(ref.AddDate(0, 0, -1))},
	}

	first := ComputeDailyStats(tasks, ref, time.Sunday, loc)
	second := ComputeDailyStats(tasks, ref, time.Sunday, loc)
	assert.Equal(t, first, second)
}

func TestComputeStreak(t *testing.T) {
	day := func(completed int) DailyStats {
		return DailyStats{Completed: completed}
	}

	tests := []struct {
		name     string
		daily    []DailyStats
		expected int
	}{
		{"empty window", nil, 0},
		{"no completions", []DailyStats{day(0), day(0)}, 0},
		{"full week", []DailyStats{day(1), day(2), day(1), day(1), day(3), day(1), day(2)}, 7},
		{"broken mid-week", []DailyStats{day(1), day(1), day(0), day(1), day(1)}, 2},
		{"empty day breaks even with scheduled-free gap", []DailyStats{day(2), {Total: 0, Completed: 0}, day(1)}, 1},
		{"most recent day empty", []DailyStats{day(1), day(1), day(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeStreak(tt.daily))
		})
	}
}

func TestComputeStreakMonotonicInLeadingZeros(t *testing.T) {
	window := []DailyStats{{Completed: 1}, {Completed: 2}, {Completed: 1}}
	prev := ComputeStreak(window)
	for i := 0; i < 4; i++ {
		window = append([]DailyStats{{Completed: 0}}, window...)
		cur := ComputeStreak(window)
		assert.LessOrEqual(t, cur, prev, "prefixing zero-completion days must not grow the streak")
		prev = cur
	}
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(0, 0))
	assert.Equal(t, 0.0, CompletionRate(5, 0))
	assert.Equal(t, 50.0, CompletionRate(2, 4))
	assert.Equal(t, 100.0, CompletionRate(3, 3))
	assert.InDelta(t, 33.333, CompletionRate(1, 3), 0.001)
}

func TestAverageCompletedDuration(t *testing.T) {
	tasks := []Task{
		{Status: TaskStatusCompleted, DurationMinutes: minutes(30)},
		{Status: TaskStatusCompleted, DurationMinutes: minutes(60)},
		// Missing duration is excluded from the denominator, not zero-filled.
		{Status: TaskStatusCompleted},
		{Status: TaskStatusPending, DurationMinutes: minutes(120)},
	}
	assert.Equal(t, 45.0, AverageCompletedDuration(tasks))
	assert.Equal(t, 0.0, AverageCompletedDuration(nil))
	assert.Equal(t, 0.0, AverageCompletedDuration([]Task{{Status: TaskStatusCompleted}}))
}

func TestComputeProductivityScore(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		streak      int
		avgDuration float64
		expected    int
	}{
		{"all zero", 0, 0, 0, 0},
		{"rate only", 50, 0, 0, 20},
		{"streak only", 0, 3, 0, 30},
		{"duration bonus capped at 30", 0, 0, 500, 30},
		{"typical week", 50, 2, 40, 60},
		{"clamped at 100", 100, 10, 500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeProductivityScore(tt.rate, tt.streak, tt.avgDuration))
		})
	}
}

func TestComputeProductivityScoreMonotonic(t *testing.T) {
	base := ComputeProductivityScore(40, 2, 20)
	assert.GreaterOrEqual(t, ComputeProductivityScore(60, 2, 20), base)
	assert.GreaterOrEqual(t, ComputeProductivityScore(40, 4, 20), base)
	assert.GreaterOrEqual(t, ComputeProductivityScore(40, 2, 50), base)

	for streak := 0; streak < 30; streak++ {
		assert.LessOrEqual(t, ComputeProductivityScore(100, streak, 1000), 100)
	}
}

func TestComputeCategoryStats(t *testing.T) {
	categories := []string{"work", "personal", "health"}
	tasks := []Task{
		{Category: "work", Status: TaskStatusCompleted, DurationMinutes: minutes(60)},
		{Category: "work", Status: TaskStatusCompleted, DurationMinutes: minutes(30)},
		{Category: "work", Status: TaskStatusPending, DurationMinutes: minutes(45)},
		{Category: "personal", Status: TaskStatusCompleted, DurationMinutes: minutes(10)},
		{Category: "gardening", Status: TaskStatusCompleted, DurationMinutes: minutes(500)},
	}

	stats := ComputeCategoryStats(tasks, categories)
	assert.Len(t, stats, 3)

	assert.Equal(t, "work", stats[0].Category)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, 2, stats[0].Completed)
	assert.Equal(t, 90, stats[0].Minutes)
	assert.Equal(t, 90.0, stats[0].Percentage)

	assert.Equal(t, 10.0, stats[1].Percentage)

	assert.Equal(t, "health", stats[2].Category)
	assert.Equal(t, 0, stats[2].Total)
	assert.Equal(t, 0.0, stats[2].Percentage)

	sum := 0.0
	for _, s := range stats {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.0001)
}

func TestComputeCategoryStatsNoMinutes(t *testing.T) {
	stats := ComputeCategoryStats([]Task{
		{Category: "work", Status: TaskStatusPending},
	}, []string{"work", "personal"})

	for _, s := range stats {
		assert.Equal(t, 0.0, s.Percentage, "zero minutes must yield zero percentages, not NaN")
	}
}

func TestComputePriorityBreakdown(t *testing.T) {
	tasks := []Task{
		{Priority: TaskPriorityHigh, Status: TaskStatusCompleted},
		{Priority: TaskPriorityHigh, Status: TaskStatusPending},
		{Priority: TaskPriorityLow, Status: TaskStatusCompleted},
	}

	stats := ComputePriorityBreakdown(tasks)
	assert.Len(t, stats, 4)
	assert.Equal(t, TaskPriorityLow, stats[0].Priority)
	assert.Equal(t, 100.0, stats[0].Rate)
	assert.Equal(t, 0.0, stats[1].Rate, "empty medium level reports zero")
	assert.Equal(t, 50.0, stats[2].Rate)
	assert.Equal(t, 0.0, stats[3].Rate)
}

func TestComputeWorkLifeBalance(t *testing.T) {
	workCats := []string{"work"}
	lifeCats := []string{"personal", "social", "health"}

	work, life := ComputeWorkLifeBalance([]Task{
		{Category: "work", Status: TaskStatusCompleted, DurationMinutes: minutes(90)},
		{Category: "personal", Status: TaskStatusCompleted, DurationMinutes: minutes(30)},
		{Category: "work", Status: TaskStatusPending, DurationMinutes: minutes(600)},
	}, workCats, lifeCats)
	assert.Equal(t, 75.0, work)
	assert.Equal(t, 25.0, life)

	// No completed minutes at all: placeholder equilibrium, not 0/0.
	work, life = ComputeWorkLifeBalance(nil, workCats, lifeCats)
	assert.Equal(t, 50.0, work)
	assert.Equal(t, 50.0, life)
}
