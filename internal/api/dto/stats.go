package dto

import "time"

// DailyStatsResponse is one day's task counters
type DailyStatsResponse struct {
	Date         time.Time `json:"date"`
	Total        int       `json:"total"`
	Completed    int       `json:"completed"`
	MinutesSpent int       `json:"minutes_spent"`
}

// CategoryStatsResponse is one category's share of completed time
type CategoryStatsResponse struct {
	Category   string  `json:"category"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

// PriorityStatsResponse is one priority bucket's counters
type PriorityStatsResponse struct {
	Priority  string `json:"priority"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// WeeklyStatsResponse is the full weekly derived-statistics view
type WeeklyStatsResponse struct {
	Daily             []DailyStatsResponse    `json:"daily"`
	StreakDays        int                     `json:"streak_days"`
	CompletionRate    float64                 `json:"completion_rate"`
	ProductivityScore int                     `json:"productivity_score"`
	Categories        []CategoryStatsResponse `json:"categories"`
	Priorities        []PriorityStatsResponse `json:"priorities"`
	WorkShare         float64                 `json:"work_share"`
	LifeShare         float64                 `json:"life_share"`
}

// ObjectiveProgressResponse is one objective's completion roll-up
type ObjectiveProgressResponse struct {
	Objective  string  `json:"objective"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
	Minutes    int     `json:"minutes"`
}

// DashboardMetricsResponse is the cached dashboard counter set
type DashboardMetricsResponse struct {
	Tasks    TasksMetricsResponse    `json:"tasks"`
	Contacts ContactsMetricsResponse `json:"contacts"`
}

// TasksMetricsResponse carries the task counters on the dashboard
type TasksMetricsResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// ContactsMetricsResponse carries the contact counters on the dashboard
type ContactsMetricsResponse struct {
	DueCount int `json:"due_count"`
}
