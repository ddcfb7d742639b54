package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// StatsRoutes handles the setup of statistics and dashboard routes
type StatsRoutes struct {
	handler    *handlers.StatsHandler
	jwtService *auth.JWTService
}

// NewStatsRoutes creates a new StatsRoutes instance
func NewStatsRoutes(handler *handlers.StatsHandler, jwtService *auth.JWTService) *StatsRoutes {
	return &StatsRoutes{
		handler:    handler,
		jwtService: jwtService,
	}
}

// RegisterRoutes registers the statistics and dashboard routes
func (r *StatsRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	stats := router.Group("/api/stats")
	stats.Use(middleware.NewAuthMiddleware(r.jwtService))
	stats.Use(metrics.CollectMetrics())

	stats.GET("/weekly", cache.CacheResponse(), r.handler.WeeklyStats)
	stats.GET("/finance", cache.CacheResponse(), r.handler.FinanceStats)
	stats.GET("/contacts", r.handler.ContactStats)

	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.NewAuthMiddleware(r.jwtService))
	dashboard.Use(metrics.CollectMetrics())

	// caching handled inside the handler so invalidation events can target it
	dashboard.GET("/metrics", r.handler.DashboardMetrics)
}
