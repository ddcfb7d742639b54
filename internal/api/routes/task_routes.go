package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler    *handlers.TaskHandler
	jwtService *auth.JWTService
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtService *auth.JWTService) *TaskRoutes {
	return &TaskRoutes{
		handler:    handler,
		jwtService: jwtService,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtService))
	tasks.Use(metrics.CollectMetrics())

	// Read operations with caching
	tasks.GET("", cache.CacheResponse(), r.handler.ListTasks)
	tasks.GET("/:id", cache.CacheResponse(), r.handler.GetTask)

	// Write operations with cache invalidation and validation
	tasks.POST("", validation.ValidateRequest(&dto.CreateTaskRequest{}), cache.CacheInvalidate("tasks:*", "stats:*"), r.handler.CreateTask)
	tasks.PUT("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), cache.CacheInvalidate("tasks:*", "stats:*"), r.handler.UpdateTask)
	tasks.DELETE("/:id", cache.CacheInvalidate("tasks:*", "stats:*"), r.handler.DeleteTask)

	// Status updates
	tasks.PATCH("/:id/status", validation.ValidateRequest(&dto.UpdateTaskStatusRequest{}), cache.CacheInvalidate("tasks:*", "stats:*"), r.handler.UpdateTaskStatus)

	// Objective roll-up
	tasks.GET("/objectives/progress", cache.CacheResponse(), r.handler.ObjectiveProgress)
}
