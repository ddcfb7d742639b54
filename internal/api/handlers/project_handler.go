package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/domain/project"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	service project.Service
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(service project.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject creates a new project for the authenticated user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.CreateProjectRequest); ok {
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

	created, err := h.service.CreateProject(c.Request.Context(), project.CreateProjectInput{
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		Status:          project.ProjectStatus(req.Status),
		Deadline:        req.Deadline,
		EstimatedBudget: req.EstimatedBudget,
		TeamSize:        req.TeamSize,
		Tags:            req.Tags,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrInvalidInput) || errors.Is(err, project.ErrInvalidStatus) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": projectToResponse(created, nil, nil)})
}

// GetProject returns a single project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	p, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": projectToResponse(p, nil, nil)})
}

// ListProjects returns the user's projects with budget usage attached
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	overview, err := h.service.ListOverview(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ProjectResponse, len(overview))
	for i := range overview {
		responses[i] = *projectToResponse(&overview[i].Project, &overview[i].BudgetUsage, &overview[i].OverBudget)
	}

	page, pageSize := parsePagination(c)
	c.JSON(http.StatusOK, gin.H{"data": dto.ProjectListResponse{
		Projects:   responses,
		TotalCount: int64(len(responses)),
		Page:       page,
		PageSize:   pageSize,
	}})
}

// UpdateProject updates an existing project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req dto.UpdateProjectRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.UpdateProjectRequest); ok {
			req = *ptr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := project.UpdateProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		Progress:        req.Progress,
		Deadline:        req.Deadline,
		EstimatedBudget: req.EstimatedBudget,
		ActualCost:      req.ActualCost,
		TeamSize:        req.TeamSize,
		Tags:            req.Tags,
	}
	if req.Status != nil {
		status := project.ProjectStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.service.UpdateProject(c.Request.Context(), id, input)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, project.ErrProjectNotFound):
			status = http.StatusNotFound
		case errors.Is(err, project.ErrInvalidStatus), errors.Is(err, project.ErrInvalidProgress):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": projectToResponse(updated, nil, nil)})
}

// DeleteProject removes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

func projectToResponse(p *project.Project, usage *float64, over *bool) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Description:     p.Description,
		Status:          string(p.Status),
		Progress:        p.Progress,
		Deadline:        p.Deadline,
		EstimatedBudget: p.EstimatedBudget,
		ActualCost:      p.ActualCost,
		TeamSize:        p.TeamSize,
		Tags:            p.Tags,
		BudgetUsage:     usage,
		OverBudget:      over,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
