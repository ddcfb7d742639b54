package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/domain/task"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask creates a new task for the authenticated user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.CreateTaskRequest); ok {
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

	input := task.CreateTaskInput{
		UserID:           userID,
		Title:            req.Title,
		Description:      req.Description,
		Status:           task.TaskStatus(req.Status),
		Priority:         task.TaskPriority(req.Priority),
		Category:         req.Category,
		Objective:        req.Objective,
		DurationMinutes:  req.DurationMinutes,
		ScheduledAt:      req.ScheduledAt,
		Tags:             req.Tags,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
	}

	created, err := h.service.CreateTask(c.Request.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, task.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": taskToResponse(created)})
}

// GetTask returns a single task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	tsk, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, task.ErrTaskNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(tsk)})
}

// ListTasks returns the authenticated user's tasks, filtered and paginated
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.TaskFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := task.TaskFilter{
		UserID:         &userID,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Page:           req.Page,
		PageSize:       req.PageSize,
	}
	if req.Status != "" {
		status := task.TaskStatus(req.Status)
		filter.Status = &status
	}
	if req.Priority != "" {
		priority := task.TaskPriority(req.Priority)
		filter.Priority = &priority
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}
	if req.Objective != "" {
		filter.Objective = &req.Objective
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *taskToResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TaskListResponse{
		Tasks:      responses,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}})
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.UpdateTaskRequest); ok {
			req = *ptr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := task.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Objective:       req.Objective,
		DurationMinutes: req.DurationMinutes,
		ScheduledAt:     req.ScheduledAt,
		Tags:            req.Tags,
	}
	if req.Status != nil {
		status := task.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := task.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), id, input)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			status = http.StatusNotFound
		case errors.Is(err, task.ErrInvalidStatus), errors.Is(err, task.ErrInvalidPriority):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(updated)})
}

// UpdateTaskStatus changes only the status of a task
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskStatusRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.UpdateTaskStatusRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateTaskStatus(c.Request.Context(), id, task.TaskStatus(req.Status))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			status = http.StatusNotFound
		case errors.Is(err, task.ErrInvalidStatus):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(updated)})
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, task.ErrTaskNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}

// ObjectiveProgress returns per-objective completion roll-ups
func (h *TaskHandler) ObjectiveProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	progress, err := h.service.ObjectiveProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ObjectiveProgressResponse, len(progress))
	for i, p := range progress {
		responses[i] = dto.ObjectiveProgressResponse{
			Objective:  p.Objective,
			Total:      p.Total,
			Completed:  p.Completed,
			Percentage: p.Percentage,
			Minutes:    p.Minutes,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// parseWeekRef reads an optional ?date= reference for weekly views
func parseWeekRef(c *gin.Context) time.Time {
	if raw := c.Query("date"); raw != "" {
		if ref, err := time.Parse("2006-01-02", raw); err == nil {
			return ref
		}
	}
	return time.Now()
}

// parsePagination reads page/page_size query parameters
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	return page, pageSize
}

func taskToResponse(t *task.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:               t.ID,
		UserID:           t.UserID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		Category:         t.Category,
		Objective:        t.Objective,
		DurationMinutes:  t.DurationMinutes,
		ScheduledAt:      t.ScheduledAt,
		Tags:             t.Tags,
		IsRecurring:      t.IsRecurring,
		RecurringPattern: t.RecurringPattern,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
