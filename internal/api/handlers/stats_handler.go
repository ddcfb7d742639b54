package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/domain/contact"
	"github.com/mzohdy/northstar/internal/domain/finance"
	"github.com/mzohdy/northstar/internal/domain/task"
	"github.com/mzohdy/northstar/internal/infrastructure/cache"
)

// StatsHandler serves the derived-statistics and dashboard endpoints
type StatsHandler struct {
	tasks    task.Service
	finances finance.Service
	contacts contact.Service
	cache    *cache.RedisClient
	cacheTTL time.Duration
}

// NewStatsHandler creates a new StatsHandler instance
func NewStatsHandler(tasks task.Service, finances finance.Service, contacts contact.Service, cacheClient *cache.RedisClient, cacheTTL time.Duration) *StatsHandler {
	return &StatsHandler{
		tasks:    tasks,
		finances: finances,
		contacts: contacts,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

// WeeklyStats returns the authenticated user's weekly derived statistics
func (h *StatsHandler) WeeklyStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.tasks.WeeklyStats(c.Request.Context(), userID, parseWeekRef(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": weeklyStatsToResponse(stats)})
}

// FinanceStats returns the authenticated user's monthly finance roll-up
func (h *StatsHandler) FinanceStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	month := time.Now()
	if raw := c.Query("month"); raw != "" {
		if parsed, err := time.Parse("2006-01", raw); err == nil {
			month = parsed
		}
	}

	summary, err := h.finances.Summary(c.Request.Context(), userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	top := make([]dto.CategoryAmountResponse, len(summary.TopExpenseCategories))
	for i, cat := range summary.TopExpenseCategories {
		top[i] = dto.CategoryAmountResponse{Category: cat.Category, Amount: cat.Amount}
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.FinanceSummaryResponse{
		TotalIncome:          summary.TotalIncome,
		TotalExpenses:        summary.TotalExpenses,
		Balance:              summary.Balance,
		TopExpenseCategories: top,
	}})
}

// ContactStats lists contacts whose cadence has lapsed or is about to
func (h *StatsHandler) ContactStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	due, err := h.contacts.DueForContact(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ContactResponse, len(due))
	for i := range due {
		responses[i] = *contactToResponse(&due[i].Contact, string(due[i].Status))
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// DashboardMetrics returns the cached dashboard counters. The cached
// entry is invalidated by write events on the dashboard channel.
func (h *StatsHandler) DashboardMetrics(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	key := cache.GenerateCacheKey("dashboard", userID, "metrics")
	result, err := h.cache.CacheResponse(c.Request.Context(), key, h.cacheTTL, "dashboard", func() (interface{}, error) {
		return h.collectDashboardMetrics(c, userID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *StatsHandler) collectDashboardMetrics(c *gin.Context, userID uuid.UUID) (*dto.DashboardMetricsResponse, error) {
	taskMetrics, err := h.tasks.GetDashboardMetrics(c.Request.Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("task metrics: %w", err)
	}

	due, err := h.contacts.DueForContact(c.Request.Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("contact metrics: %w", err)
	}

	return &dto.DashboardMetricsResponse{
		Tasks: dto.TasksMetricsResponse{
			Total:     taskMetrics.Total,
			Completed: taskMetrics.Completed,
			Overdue:   taskMetrics.Overdue,
		},
		Contacts: dto.ContactsMetricsResponse{
			DueCount: len(due),
		},
	}, nil
}

func weeklyStatsToResponse(stats *task.WeeklyStats) dto.WeeklyStatsResponse {
	daily := make([]dto.DailyStatsResponse, len(stats.Daily))
	for i, d := range stats.Daily {
		daily[i] = dto.DailyStatsResponse{
			Date:         d.Date,
			Total:        d.Total,
			Completed:    d.Completed,
			MinutesSpent: d.MinutesSpent,
		}
	}

	categories := make([]dto.CategoryStatsResponse, len(stats.Categories))
	for i, cat := range stats.Categories {
		categories[i] = dto.CategoryStatsResponse{
			Category:   cat.Category,
			Minutes:    cat.Minutes,
			Percentage: cat.Percentage,
		}
	}

	priorities := make([]dto.PriorityStatsResponse, len(stats.Priorities))
	for i, p := range stats.Priorities {
		priorities[i] = dto.PriorityStatsResponse{
			Priority:  string(p.Priority),
			Total:     p.Total,
			Completed: p.Completed,
		}
	}

	return dto.WeeklyStatsResponse{
		Daily:             daily,
		StreakDays:        stats.StreakDays,
		CompletionRate:    stats.CompletionRate,
		ProductivityScore: stats.ProductivityScore,
		Categories:        categories,
		Priorities:        priorities,
		WorkShare:         stats.WorkShare,
		LifeShare:         stats.LifeShare,
	}
}
