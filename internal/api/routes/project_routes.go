package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// ProjectRoutes handles the setup of project-related routes
type ProjectRoutes struct {
	handler    *handlers.ProjectHandler
	jwtService *auth.JWTService
}

// NewProjectRoutes creates a new ProjectRoutes instance
func NewProjectRoutes(handler *handlers.ProjectHandler, jwtService *auth.JWTService) *ProjectRoutes {
	return &ProjectRoutes{
		handler:    handler,
		jwtService: jwtService,
	}
}

// RegisterRoutes registers all project-related routes
func (r *ProjectRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	projects := router.Group("/api/projects")
	projects.Use(middleware.NewAuthMiddleware(r.jwtService))
	projects.Use(metrics.CollectMetrics())

	projects.GET("", cache.CacheResponse(), r.handler.ListProjects)
	projects.GET("/:id", cache.CacheResponse(), r.handler.GetProject)

	projects.POST("", validation.ValidateRequest(&dto.CreateProjectRequest{}), cache.CacheInvalidate("projects:*"), r.handler.CreateProject)
	projects.PUT("/:id", validation.ValidateRequest(&dto.UpdateProjectRequest{}), cache.CacheInvalidate("projects:*"), r.handler.UpdateProject)
	projects.DELETE("/:id", cache.CacheInvalidate("projects:*"), r.handler.DeleteProject)
}
