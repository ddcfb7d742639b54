package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/handlers"
)

// HealthRoutes handles the setup of health check routes
type HealthRoutes struct {
	handler *handlers.HealthHandler
}

// NewHealthRoutes creates a new HealthRoutes instance
func NewHealthRoutes(handler *handlers.HealthHandler) *HealthRoutes {
	return &HealthRoutes{handler: handler}
}

// RegisterRoutes registers the health check routes
func (r *HealthRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.handler.Check)
	router.GET("/api/health", r.handler.Check)
}
