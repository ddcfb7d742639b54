package events

import (
	"time"

	"github.com/google/uuid"
)

// DashboardEvent is the payload published over redis whenever a write
// should invalidate cached dashboard or stats responses.
type DashboardEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	EntityID  uuid.UUID   `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}

// Standard event types for dashboard events
const (
	DashboardEventMetricsUpdate   = "metrics_update"
	DashboardEventCacheInvalidate = "cache_invalidate"
)
