package finance

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single money movement
type Transaction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index:idx_transaction_user"`
	Type        TransactionType `json:"type" gorm:"not null;index:idx_transaction_type"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100);index:idx_transaction_category"`
	Date        time.Time       `json:"date" gorm:"not null;index:idx_transaction_date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// Budget represents a monthly spending limit for one category
type Budget struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index:idx_budget_user"`
	Category  string          `json:"category" gorm:"type:varchar(100);not null;index:idx_budget_category"`
	Limit     decimal.Decimal `json:"limit" gorm:"column:monthly_limit;type:decimal(12,2);not null"`
	Current   decimal.Decimal `json:"current" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("amount must not be negative")
)

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TableName specifies the table name for the Budget model
func (Budget) TableName() string {
	return "budgets"
}

// Validate performs basic validation of the transaction model
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// BeforeCreate hook is called before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	return t.Validate()
}

// BeforeUpdate hook is called before updating a transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	return t.Validate()
}

// BeforeCreate hook is called before creating a new budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
