// Package metrics implements the derived statistics that the stats,
// dashboard and assistant surfaces share: completion rates, streaks,
// time-by-category distributions, productivity scores, financial
// summaries and contact cadence status.
//
// Every function here is a pure computation over an in-memory snapshot.
// There is no I/O, no hidden clock and no shared state; the reference
// time and time zone are always explicit parameters, so calling any
// function twice with the same input yields the same output. Inputs are
// plain records mapped in by the domain services rather than gorm
// models, which keeps the package free of persistence concerns.
package metrics

import (
	"math"
	"time"

	"github.com/mzohdy/northstar/pkg/dates"
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

// Task is the snapshot record the task aggregators consume. A nil
// DurationMinutes means the duration was never recorded; the individual
// aggregators document whether that reads as zero or as absent.
type Task struct {
	Title           string
	Status          TaskStatus
	Priority        TaskPriority
	Category        string
	DurationMinutes *int
	ScheduledAt     *time.Time
	Objective       string
}

// DailyStats describes one calendar day inside a reporting window.
type DailyStats struct {
	Date         time.Time `json:"date"`
	Total        int       `json:"total"`
	Completed    int       `json:"completed"`
	MinutesSpent int       `json:"minutes_spent"`
}

// CategoryStats describes completed time spent within one category.
type CategoryStats struct {
	Category   string  `json:"category"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

// PriorityStats describes completion within one priority level.
type PriorityStats struct {
	Priority  TaskPriority `json:"priority"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Rate      float64      `json:"rate"`
}

// ComputeDailyStats buckets tasks into the seven calendar days of the
// week containing ref. Tasks without a scheduled date never enter any
// bucket. MinutesSpent sums the durations of completed tasks, with a
// missing duration counted as zero.
func ComputeDailyStats(tasks []Task, ref time.Time, weekStart time.Weekday, loc *time.Location) []DailyStats {
	start := dates.StartOfWeek(ref, weekStart, loc)

	daily := make([]DailyStats, 7)
	for i := range daily {
		daily[i].Date = start.AddDate(0, 0, i)
	}

	for _, t := range tasks {
		if t.ScheduledAt == nil {
			continue
		}
		for i := range daily {
			if !dates.SameDay(*t.ScheduledAt, daily[i].Date, loc) {
				continue
			}
			daily[i].Total++
			if t.Status == TaskStatusCompleted {
				daily[i].Completed++
				if t.DurationMinutes != nil {
					daily[i].MinutesSpent += *t.DurationMinutes
				}
			}
			break
		}
	}

	return daily
}

// ComputeStreak counts consecutive days with at least one completion,
// scanning from the most recent day backward. A day with zero
// completions ends the scan, including days that simply had nothing
// scheduled: an empty day is not a productive day.
func ComputeStreak(daily []DailyStats) int {
	streak := 0
	for i := len(daily) - 1; i >= 0; i-- {
		if daily[i].Completed == 0 {
			break
		}
		streak++
	}
	return streak
}

// CompletionRate returns completed/total as a percentage, and exactly 0
// for an empty set. Never NaN.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// AverageCompletedDuration averages the duration of completed tasks that
// actually carry one. Tasks missing a duration are left out of the
// denominator here, unlike the zero-fill in ComputeDailyStats; both
// conventions are load-bearing for existing callers, so pick the one you
// mean.
func AverageCompletedDuration(tasks []Task) float64 {
	sum, n := 0, 0
	for _, t := range tasks {
		if t.Status == TaskStatusCompleted && t.DurationMinutes != nil {
			sum += *t.DurationMinutes
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// ComputeProductivityScore folds completion rate, streak length and
// average completed duration into a 0-100 score:
//
//	min(100, round(rate*0.4 + streak*10 + min(30, avgDuration/2)))
//
// Monotonically non-decreasing in each input.
func ComputeProductivityScore(rate float64, streak int, avgDuration float64) int {
	durationBonus := math.Min(30, avgDuration/2)
	score := int(math.Round(rate*0.4 + float64(streak)*10 + durationBonus))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// ComputeCategoryStats reports completed minutes per listed category and
// each category's share of the completed minutes across all listed
// categories. Minutes use the zero-fill convention. With zero total
// minutes every percentage is 0, never NaN.
func ComputeCategoryStats(tasks []Task, categories []string) []CategoryStats {
	stats := make([]CategoryStats, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		stats[i].Category = c
		index[c] = i
	}

	totalMinutes := 0
	for _, t := range tasks {
		i, ok := index[t.Category]
		if !ok {
			continue
		}
		stats[i].Total++
		if t.Status == TaskStatusCompleted {
			stats[i].Completed++
			if t.DurationMinutes != nil {
				stats[i].Minutes += *t.DurationMinutes
				totalMinutes += *t.DurationMinutes
			}
		}
	}

	if totalMinutes > 0 {
		for i := range stats {
			stats[i].Percentage = float64(stats[i].Minutes) / float64(totalMinutes) * 100
		}
	}

	return stats
}

// ComputePriorityBreakdown returns the completion rate at each priority
// level, in fixed low-to-urgent order. Empty levels report a 0 rate.
func ComputePriorityBreakdown(tasks []Task) []PriorityStats {
	levels := []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent}

	stats := make([]PriorityStats, len(levels))
	index := make(map[TaskPriority]int, len(levels))
	for i, p := range levels {
		stats[i].Priority = p
		index[p] = i
	}

	for _, t := range tasks {
		i, ok := index[t.Priority]
		if !ok {
			continue
		}
		stats[i].Total++
		if t.Status == TaskStatusCompleted {
			stats[i].Completed++
		}
	}

	for i := range stats {
		stats[i].Rate = CompletionRate(stats[i].Completed, stats[i].Total)
	}

	return stats
}

// ComputeWorkLifeBalance splits completed minutes between two disjoint
// category sets and returns each side's percentage share. When no
// minutes exist on either side both shares default to 50, a deliberate
// placeholder so an empty week renders as equilibrium rather than 0/0.
func ComputeWorkLifeBalance(tasks []Task, workCategories, lifeCategories []string) (work, life float64) {
	inSet := func(set []string, category string) bool {
		for _, c := range set {
			if c == category {
				return true
			}
		}
		return false
	}

	workMinutes, lifeMinutes := 0, 0
	for _, t := range tasks {
		if t.Status != TaskStatusCompleted || t.DurationMinutes == nil {
			continue
		}
		switch {
		case inSet(workCategories, t.Category):
			workMinutes += *t.DurationMinutes
		case inSet(lifeCategories, t.Category):
			lifeMinutes += *t.DurationMinutes
		}
	}

	total := workMinutes + lifeMinutes
	if total == 0 {
		return 50, 50
	}
	return float64(workMinutes) / float64(total) * 100, float64(lifeMinutes) / float64(total) * 100
}
