package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrInvalidInput        = errors.New("invalid input")
)

// TransactionFilter defines filtering options for transactions
type TransactionFilter struct {
	UserID   *uuid.UUID
	Type     *TransactionType
	Category *string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// Repository defines the interface for finance persistence operations
type Repository interface {
	CreateTransaction(ctx context.Context, txn *Transaction) error
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	UpdateTransaction(ctx context.Context, txn *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	CreateBudget(ctx context.Context, budget *Budget) error
	FindBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error)
	UpdateBudget(ctx context.Context, budget *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type financeRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &financeRepository{db: db}
}

func (r *financeRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *financeRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var txn Transaction
	result := r.db.WithContext(ctx).First(&txn, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return &txn, nil
}

func (r *financeRepository) FindTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error) {
	var txns []Transaction
	var total int64

	query := r.db.WithContext(ctx)

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	// Count total before pagination
	err := query.Model(&Transaction{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}

	query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)

	if err := query.Order("date DESC").Find(&txns).Error; err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

func (r *financeRepository) UpdateTransaction(ctx context.Context, txn *Transaction) error {
	result := r.db.WithContext(ctx).Save(txn)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *financeRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Transaction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *financeRepository) CreateBudget(ctx context.Context, budget *Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *financeRepository) FindBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	var budgets []Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error
	return budgets, err
}

func (r *financeRepository) UpdateBudget(ctx context.Context, budget *Budget) error {
	result := r.db.WithContext(ctx).Save(budget)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

func (r *financeRepository) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Budget{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
