package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// AssistantRoutes handles the setup of assistant context routes
type AssistantRoutes struct {
	handler    *handlers.AssistantHandler
	jwtService *auth.JWTService
}

// NewAssistantRoutes creates a new AssistantRoutes instance
func NewAssistantRoutes(handler *handlers.AssistantHandler, jwtService *auth.JWTService) *AssistantRoutes {
	return &AssistantRoutes{
		handler:    handler,
		jwtService: jwtService,
	}
}

// RegisterRoutes registers the assistant context route
func (r *AssistantRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	assistant := router.Group("/api/assistant")
	assistant.Use(middleware.NewAuthMiddleware(r.jwtService))
	assistant.Use(metrics.CollectMetrics())

	// context is rebuilt per request so it always reflects current state
	assistant.GET("/context", r.handler.GetContext)
}
