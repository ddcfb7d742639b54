package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/domain/events"
	"github.com/mzohdy/northstar/internal/metrics"
	"github.com/mzohdy/northstar/pkg/dates"
)

// EventPublisher pushes cache-invalidation events to the dashboard
// subscribers. Satisfied by the redis cache client.
type EventPublisher interface {
	PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error
}

type CreateTransactionInput struct {
	UserID      uuid.UUID       `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description"`
}

type UpdateTransactionInput struct {
	Type        *TransactionType `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

type UpsertBudgetInput struct {
	UserID   uuid.UUID       `json:"user_id"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// BudgetStatus is a budget annotated with its derived usage figures.
type BudgetStatus struct {
	Budget
	Usage      float64 `json:"usage"`
	OverBudget bool    `json:"over_budget"`
}

// MonthlySummary is the derived finance view for one calendar month.
type MonthlySummary struct {
	metrics.FinancialSummary
	TopExpenseCategories []metrics.CategoryAmount `json:"top_expense_categories"`
}

type Service interface {
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	CreateBudget(ctx context.Context, input UpsertBudgetInput) (*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	// Derived statistics
	Summary(ctx context.Context, userID uuid.UUID, month time.Time) (*MonthlySummary, error)
	BudgetOverview(ctx context.Context, userID uuid.UUID) ([]BudgetStatus, error)
}

type service struct {
	repo        Repository
	publisher   EventPublisher
	location    *time.Location
	topExpenses int
	logger      *zap.Logger
}

func NewService(repo Repository, publisher EventPublisher, location *time.Location, topExpenses int, logger *zap.Logger) Service {
	if location == nil {
		location = time.UTC
	}
	return &service{
		repo:        repo,
		publisher:   publisher,
		location:    location,
		topExpenses: topExpenses,
		logger:      logger,
	}
}

func (s *service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if input.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	txn := &Transaction{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        date,
		Description: input.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	// Expense transactions also count against the matching budget.
	if txn.Type == TransactionTypeExpense {
		s.applyToBudget(ctx, txn.UserID, txn.Category, txn.Amount)
	}

	s.publish(ctx, txn.UserID, txn.ID, "transaction_created")
	return txn, nil
}

func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.FindTransactionByID(ctx, id)
}

func (s *service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error) {
	return s.repo.FindTransactions(ctx, filter)
}

func (s *service) UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*Transaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, ErrInvalidType
		}
		txn.Type = *input.Type
	}
	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		txn.Amount = *input.Amount
	}
	if input.Category != nil {
		txn.Category = *input.Category
	}
	if input.Date != nil {
		txn.Date = *input.Date
	}
	if input.Description != nil {
		txn.Description = *input.Description
	}

	txn.UpdatedAt = time.Now()
	if err := s.repo.UpdateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	s.publish(ctx, txn.UserID, txn.ID, "transaction_updated")
	return txn, nil
}

func (s *service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	txn, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, txn.UserID, txn.ID, "transaction_deleted")
	return nil
}

func (s *service) CreateBudget(ctx context.Context, input UpsertBudgetInput) (*Budget, error) {
	if input.Category == "" {
		return nil, ErrInvalidInput
	}
	if input.Limit.IsNegative() {
		return nil, ErrInvalidAmount
	}

	// One budget per category: update in place when one already exists.
	existing, err := s.repo.FindBudgets(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Category == input.Category {
			existing[i].Limit = input.Limit
			existing[i].UpdatedAt = time.Now()
			if err := s.repo.UpdateBudget(ctx, &existing[i]); err != nil {
				return nil, err
			}
			s.publish(ctx, input.UserID, existing[i].ID, "budget_updated")
			return &existing[i], nil
		}
	}

	budget := &Budget{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Category:  input.Category,
		Limit:     input.Limit,
		Current:   decimal.Zero,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}

	s.publish(ctx, input.UserID, budget.ID, "budget_created")
	return budget, nil
}

func (s *service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}

func (s *service) Summary(ctx context.Context, userID uuid.UUID, month time.Time) (*MonthlySummary, error) {
	from := dates.StartOfMonth(month, s.location)
	to := from.AddDate(0, 1, 0)

	txns, _, err := s.repo.FindTransactions(ctx, TransactionFilter{
		UserID: &userID,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, err
	}

	snapshot := snapshots(txns)
	return &MonthlySummary{
		FinancialSummary:     metrics.ComputeFinancialSummary(snapshot),
		TopExpenseCategories: metrics.ComputeTopExpenseCategories(snapshot, s.topExpenses),
	}, nil
}

func (s *service) BudgetOverview(ctx context.Context, userID uuid.UUID) ([]BudgetStatus, error) {
	budgets, err := s.repo.FindBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		usage := metrics.BudgetUsage(b.Current, b.Limit)
		overview = append(overview, BudgetStatus{
			Budget:     b,
			Usage:      usage,
			OverBudget: usage > 100,
		})
	}
	return overview, nil
}

// applyToBudget bumps the running total of the category's budget. A
// missing budget is not an error, spending in untracked categories is
// allowed.
func (s *service) applyToBudget(ctx context.Context, userID uuid.UUID, category string, amount decimal.Decimal) {
	budgets, err := s.repo.FindBudgets(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load budgets", zap.Error(err))
		return
	}
	for i := range budgets {
		if budgets[i].Category != category {
			continue
		}
		budgets[i].Current = budgets[i].Current.Add(amount)
		budgets[i].UpdatedAt = time.Now()
		if err := s.repo.UpdateBudget(ctx, &budgets[i]); err != nil {
			s.logger.Error("Failed to update budget", zap.Error(err))
		}
		return
	}
}

func snapshots(txns []Transaction) []metrics.Transaction {
	out := make([]metrics.Transaction, len(txns))
	for i, t := range txns {
		out[i] = metrics.Transaction{
			Type:        metrics.TransactionType(t.Type),
			Amount:      t.Amount,
			Category:    t.Category,
			Date:        t.Date,
			Description: t.Description,
		}
	}
	return out
}

func (s *service) publish(ctx context.Context, userID, entityID uuid.UUID, action string) {
	if s.publisher == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: events.DashboardEventCacheInvalidate,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Details:   map[string]interface{}{"action": action},
	}
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
