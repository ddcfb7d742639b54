package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents the request body for recording a transaction
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description"`
}

// UpdateTransactionRequest represents the request body for updating a transaction
type UpdateTransactionRequest struct {
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// UpsertBudgetRequest represents the request body for setting a category budget
type UpsertBudgetRequest struct {
	Category string          `json:"category" validate:"required"`
	Limit    decimal.Decimal `json:"limit" validate:"required"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionListResponse represents a paginated list of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}

// BudgetStatusResponse represents a budget with its derived usage
type BudgetStatusResponse struct {
	ID         uuid.UUID       `json:"id"`
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Current    decimal.Decimal `json:"current"`
	Usage      float64         `json:"usage"`
	OverBudget bool            `json:"over_budget"`
}

// FinanceSummaryResponse represents the monthly finance roll-up
type FinanceSummaryResponse struct {
	TotalIncome          decimal.Decimal          `json:"total_income"`
	TotalExpenses        decimal.Decimal          `json:"total_expenses"`
	Balance              decimal.Decimal          `json:"balance"`
	TopExpenseCategories []CategoryAmountResponse `json:"top_expense_categories"`
}

// CategoryAmountResponse pairs a category with its total amount
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
