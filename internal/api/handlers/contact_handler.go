package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/domain/contact"
	"github.com/mzohdy/northstar/internal/metrics"
)

// ContactHandler handles HTTP requests for contact operations
type ContactHandler struct {
	service contact.Service
}

// NewContactHandler creates a new ContactHandler instance
func NewContactHandler(service contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// CreateContact creates a new contact for the authenticated user
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.CreateContactRequest); ok {
			req = *ptr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.CreateContact(c.Request.Context(), contact.CreateContactInput{
		UserID:               userID,
		Name:                 req.Name,
		Relationship:         contact.RelationshipType(req.Relationship),
		Email:                req.Email,
		Phone:                req.Phone,
		Notes:                req.Notes,
		Tags:                 req.Tags,
		LastContactedAt:      req.LastContactedAt,
		ContactFrequencyDays: req.ContactFrequencyDays,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, contact.ErrInvalidInput) || errors.Is(err, contact.ErrInvalidRelationship) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": contactToResponse(created, derivedStatus(created))})
}

// GetContact returns a single contact by ID
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact ID"})
		return
	}

	ct, err := h.service.GetContact(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, contact.ErrContactNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contactToResponse(ct, derivedStatus(ct))})
}

// ListContacts returns the user's contacts with derived cadence status
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := parsePagination(c)
	filter := contact.ContactFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("relationship"); raw != "" {
		rel := contact.RelationshipType(raw)
		filter.Relationship = &rel
	}

	views, total, err := h.service.ListContacts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ContactResponse, len(views))
	for i := range views {
		responses[i] = *contactToResponse(&views[i].Contact, string(views[i].Status))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ContactListResponse{
		Contacts:   responses,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}})
}

// UpdateContact updates an existing contact
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact ID"})
		return
	}

	var req dto.UpdateContactRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.UpdateContactRequest); ok {
			req = *ptr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := contact.UpdateContactInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Notes:                req.Notes,
		Tags:                 req.Tags,
		LastContactedAt:      req.LastContactedAt,
		ContactFrequencyDays: req.ContactFrequencyDays,
	}
	if req.Relationship != nil {
		rel := contact.RelationshipType(*req.Relationship)
		input.Relationship = &rel
	}

	updated, err := h.service.UpdateContact(c.Request.Context(), id, input)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, contact.ErrContactNotFound):
			status = http.StatusNotFound
		case errors.Is(err, contact.ErrInvalidRelationship):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contactToResponse(updated, derivedStatus(updated))})
}

// DeleteContact removes a contact
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact ID"})
		return
	}

	if err := h.service.DeleteContact(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, contact.ErrContactNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact deleted successfully"})
}

// RecordContact marks a contact as reached today
func (h *ContactHandler) RecordContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact ID"})
		return
	}

	updated, err := h.service.RecordContact(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, contact.ErrContactNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contactToResponse(updated, derivedStatus(updated))})
}

// DueForContact lists the user's contacts whose cadence has lapsed
func (h *ContactHandler) DueForContact(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	due, err := h.service.DueForContact(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ContactResponse, len(due))
	for i := range due {
		responses[i] = *contactToResponse(&due[i].Contact, string(due[i].Status))
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func derivedStatus(ct *contact.Contact) string {
	return string(metrics.ComputeContactStatus(ct.LastContactedAt, ct.ContactFrequencyDays, time.Now()))
}

func contactToResponse(ct *contact.Contact, status string) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:                   ct.ID,
		UserID:               ct.UserID,
		Name:                 ct.Name,
		Relationship:         string(ct.Relationship),
		Email:                ct.Email,
		Phone:                ct.Phone,
		Notes:                ct.Notes,
		Tags:                 ct.Tags,
		LastContactedAt:      ct.LastContactedAt,
		ContactFrequencyDays: ct.ContactFrequencyDays,
		Status:               status,
		CreatedAt:            ct.CreatedAt,
		UpdatedAt:            ct.UpdatedAt,
	}
}
