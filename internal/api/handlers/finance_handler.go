package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mzohdy/northstar/internal/api/dto"
	"github.com/mzohdy/northstar/internal/api/middleware"
	"github.com/mzohdy/northstar/internal/domain/finance"
)

// FinanceHandler handles HTTP requests for transactions and budgets
type FinanceHandler struct {
	service finance.Service
}

// NewFinanceHandler creates a new FinanceHandler instance
func NewFinanceHandler(service finance.Service) *FinanceHandler {
	return &FinanceHandler{service: service}
}

// CreateTransaction records a new transaction
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.CreateTransactionRequest); ok {
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

	created, err := h.service.CreateTransaction(c.Request.Context(), finance.CreateTransactionInput{
		UserID:      userID,
		Type:        finance.TransactionType(req.Type),
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, finance.ErrInvalidType) || errors.Is(err, finance.ErrInvalidAmount) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": transactionToResponse(created)})
}

// ListTransactions returns the user's transactions, filtered and paginated
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := parsePagination(c)
	filter := finance.TransactionFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("type"); raw != "" {
		txType := finance.TransactionType(raw)
		filter.Type = &txType
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := c.Query("from"); raw != "" {
		if from, err := time.Parse("2006-01-02", raw); err == nil {
			filter.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.Parse("2006-01-02", raw); err == nil {
			filter.To = &to
		}
	}

	txns, total, err := h.service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = *transactionToResponse(&txns[i])
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TransactionListResponse{
		Transactions: responses,
		TotalCount:   total,
		Page:         page,
		PageSize:     pageSize,
	}})
}

// UpdateTransaction updates an existing transaction
func (h *FinanceHandler) UpdateTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	var req dto.UpdateTransactionRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.UpdateTransactionRequest); ok {
			req = *ptr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := finance.UpdateTransactionInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	}
	if req.Type != nil {
		txType := finance.TransactionType(*req.Type)
		input.Type = &txType
	}

	updated, err := h.service.UpdateTransaction(c.Request.Context(), id, input)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, finance.ErrTransactionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, finance.ErrInvalidType), errors.Is(err, finance.ErrInvalidAmount):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactionToResponse(updated)})
}

// DeleteTransaction removes a transaction
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	if err := h.service.DeleteTransaction(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, finance.ErrTransactionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted successfully"})
}

// UpsertBudget creates or updates a category budget
func (h *FinanceHandler) UpsertBudget(c *gin.Context) {
	var req dto.UpsertBudgetRequest
	if validated, exists := c.Get("validated_model"); exists {
		if ptr, ok := validated.(*dto.UpsertBudgetRequest); ok {
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

	budget, err := h.service.CreateBudget(c.Request.Context(), finance.UpsertBudgetInput{
		UserID:   userID,
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, finance.ErrInvalidInput) || errors.Is(err, finance.ErrInvalidAmount) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": budget})
}

// DeleteBudget removes a category budget
func (h *FinanceHandler) DeleteBudget(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget ID"})
		return
	}

	if err := h.service.DeleteBudget(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, finance.ErrBudgetNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "budget deleted successfully"})
}

// BudgetOverview returns the user's budgets with derived usage
func (h *FinanceHandler) BudgetOverview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	overview, err := h.service.BudgetOverview(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.BudgetStatusResponse, len(overview))
	for i, b := range overview {
		responses[i] = dto.BudgetStatusResponse{
			ID:         b.ID,
			Category:   b.Category,
			Limit:      b.Limit,
			Current:    b.Current,
			Usage:      b.Usage,
			OverBudget: b.OverBudget,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func transactionToResponse(t *finance.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Date:        t.Date,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
