package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mzohdy/northstar/internal/infrastructure/cache"
)

// HealthHandler reports liveness of the service and its backing stores
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.RedisClient
}

func NewHealthHandler(db *gorm.DB, cacheClient *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

// Check verifies database and cache connectivity
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	components := gin.H{}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		components["database"] = gin.H{"status": "down", "error": err.Error()}
	} else {
		components["database"] = gin.H{"status": "up"}
	}

	if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
		// degraded but still serving; cached endpoints fall back to source
		components["cache"] = gin.H{"status": "down", "error": err.Error()}
	} else {
		components["cache"] = gin.H{"status": "up"}
	}

	c.JSON(status, gin.H{
		"status":     statusLabel(status),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"components": components,
	})
}

func statusLabel(code int) string {
	if code == http.StatusOK {
		return "healthy"
	}
	return "unhealthy"
}
