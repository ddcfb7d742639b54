package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// FinanceRoutes handles the setup of transaction and budget routes
type FinanceRoutes struct {
	handler    *handlers.FinanceHandler
	jwtService *auth.JWTService
}

// NewFinanceRoutes creates a new FinanceRoutes instance
func NewFinanceRoutes(handler *handlers.FinanceHandler, jwtService *auth.JWTService) *FinanceRoutes {
	return &FinanceRoutes{
		handler:    handler,
		jwtService: jwtService,
	}
}

// RegisterRoutes registers all finance-related routes
func (r *FinanceRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	finance := router.Group("/api/finance")
	finance.Use(middleware.NewAuthMiddleware(r.jwtService))
	finance.Use(metrics.CollectMetrics())

	finance.GET("/transactions", cache.CacheResponse(), r.handler.ListTransactions)
	finance.POST("/transactions", validation.ValidateRequest(&dto.CreateTransactionRequest{}), cache.CacheInvalidate("finance:*", "stats:*"), r.handler.CreateTransaction)
	finance.PUT("/transactions/:id", validation.ValidateRequest(&dto.UpdateTransactionRequest{}), cache.CacheInvalidate("finance:*", "stats:*"), r.handler.UpdateTransaction)
	finance.DELETE("/transactions/:id", cache.CacheInvalidate("finance:*", "stats:*"), r.handler.DeleteTransaction)

	finance.GET("/budgets", cache.CacheResponse(), r.handler.BudgetOverview)
	finance.PUT("/budgets", validation.ValidateRequest(&dto.UpsertBudgetRequest{}), cache.CacheInvalidate("finance:*"), r.handler.UpsertBudget)
	finance.DELETE("/budgets/:id", cache.CacheInvalidate("finance:*"), r.handler.DeleteBudget)
}
