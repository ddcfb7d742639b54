package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/assistant"
)

// AssistantHandler exposes the assembled assistant context
type AssistantHandler struct {
	builder *assistant.ContextBuilder
}

func NewAssistantHandler(builder *assistant.ContextBuilder) *AssistantHandler {
	return &AssistantHandler{builder: builder}
}

// GetContext returns a plain-text snapshot of the user's current state,
// suitable for priming an assistant conversation.
func (h *AssistantHandler) GetContext(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	contextText, err := h.builder.Build(c.Request.Context(), userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AssistantContextResponse{Context: contextText}})
}
