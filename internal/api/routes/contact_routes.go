package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/handlers"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/pkg/security/auth"
)

// ContactRoutes handles the setup of contact-related routes
type ContactRoutes struct {
	handler    *handlers.ContactHandler
	jwtService *auth.JWTService
}

// NewContactRoutes creates a new ContactRoutes instance
func NewContactRoutes(handler *handlers.ContactHandler, jwtService *auth.JWTService) *ContactRoutes {
	return &ContactRoutes{
		handler:    handler,
		jwtService: jwtService,
	}
}

// RegisterRoutes registers all contact-related routes
func (r *ContactRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	contacts := router.Group("/api/contacts")
	contacts.Use(middleware.NewAuthMiddleware(r.jwtService))
	contacts.Use(metrics.CollectMetrics())

	contacts.GET("", cache.CacheResponse(), r.handler.ListContacts)
	contacts.GET("/due", r.handler.DueForContact)
	contacts.GET("/:id", cache.CacheResponse(), r.handler.GetContact)

	contacts.POST("", validation.ValidateRequest(&dto.CreateContactRequest{}), cache.CacheInvalidate("contacts:*", "stats:*"), r.handler.CreateContact)
	contacts.PUT("/:id", validation.ValidateRequest(&dto.UpdateContactRequest{}), cache.CacheInvalidate("contacts:*", "stats:*"), r.handler.UpdateContact)
	contacts.DELETE("/:id", cache.CacheInvalidate("contacts:*", "stats:*"), r.handler.DeleteContact)

	// Touch the contact without a full update payload
	contacts.POST("/:id/record", cache.CacheInvalidate("contacts:*", "stats:*"), r.handler.RecordContact)
}
