package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/domain/events"
)

// Mock repository for testing
type mockRepository struct {
	transactions []Transaction
	budgets      []Budget
}

func (m *mockRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	m.transactions = append(m.transactions, *txn)
	return nil
}

func (m *mockRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	for i := range m.transactions {
		if m.transactions[i].ID == id {
			return &m.transactions[i], nil
		}
	}
	return nil, ErrTransactionNotFound
}

func (m *mockRepository) FindTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error) {
	var out []Transaction
	for _, t := range m.transactions {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !t.Date.Before(*filter.To) {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) UpdateTransaction(ctx context.Context, txn *Transaction) error {
	for i := range m.transactions {
		if m.transactions[i].ID == txn.ID {
			m.transactions[i] = *txn
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (m *mockRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	for i := range m.transactions {
		if m.transactions[i].ID == id {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (m *mockRepository) CreateBudget(ctx context.Context, budget *Budget) error {
	m.budgets = append(m.budgets, *budget)
	return nil
}

func (m *mockRepository) FindBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	var out []Budget
	for _, b := range m.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateBudget(ctx context.Context, budget *Budget) error {
	for i := range m.budgets {
		if m.budgets[i].ID == budget.ID {
			m.budgets[i] = *budget
			return nil
		}
	}
	return ErrBudgetNotFound
}

func (m *mockRepository) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	for i := range m.budgets {
		if m.budgets[i].ID == id {
			m.budgets = append(m.budgets[:i], m.budgets[i+1:]...)
			return nil
		}
	}
	return ErrBudgetNotFound
}

type mockPublisher struct {
	published []*events.DashboardEvent
}

func (m *mockPublisher) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	m.published = append(m.published, event)
	return nil
}

func newService(repo Repository) Service {
	return NewService(repo, &mockPublisher{}, time.UTC, 5, zap.NewNop())
}

func mkDate(day int) *time.Time {
	d := time.Date(2024, 7, day, 12, 0, 0, 0, time.UTC)
	return &d
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := newService(&mockRepository{})

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID: uuid.New(),
		Type:   "transfer",
		Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID: uuid.New(),
		Type:   TransactionTypeExpense,
		Amount: decimal.NewFromInt(-10),
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateExpenseUpdatesBudget(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{budgets: []Budget{{
		ID:       uuid.New(),
		UserID:   userID,
		Category: "food",
		Limit:    decimal.NewFromInt(500),
		Current:  decimal.NewFromInt(100),
	}}}
	svc := newService(repo)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:   userID,
		Type:     TransactionTypeExpense,
		Amount:   decimal.NewFromInt(50),
		Category: "food",
		Date:     mkDate(10),
	})
	require.NoError(t, err)
	assert.True(t, repo.budgets[0].Current.Equal(decimal.NewFromInt(150)))

	// Income never counts against a budget.
	_, err = svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:   userID,
		Type:     TransactionTypeIncome,
		Amount:   decimal.NewFromInt(1000),
		Category: "food",
		Date:     mkDate(11),
	})
	require.NoError(t, err)
	assert.True(t, repo.budgets[0].Current.Equal(decimal.NewFromInt(150)))
}

func TestSummary(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{transactions: []Transaction{
		{ID: uuid.New(), UserID: userID, Type: TransactionTypeIncome, Amount: decimal.NewFromInt(500), Category: "salary", Date: *mkDate(1)},
		{ID: uuid.New(), UserID: userID, Type: TransactionTypeExpense, Amount: decimal.NewFromInt(200), Category: "food", Date: *mkDate(5)},
		{ID: uuid.New(), UserID: userID, Type: TransactionTypeExpense, Amount: decimal.NewFromInt(50), Category: "transport", Date: *mkDate(8)},
		// Previous month stays out of the summary window.
		{ID: uuid.New(), UserID: userID, Type: TransactionTypeExpense, Amount: decimal.NewFromInt(999), Category: "rent", Date: time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)},
	}}
	svc := newService(repo)

	summary, err := svc.Summary(context.Background(), userID, *mkDate(15))
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(250)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(250)))

	require.Len(t, summary.TopExpenseCategories, 2)
	assert.Equal(t, "food", summary.TopExpenseCategories[0].Category)
	assert.True(t, summary.TopExpenseCategories[0].Amount.Equal(decimal.NewFromInt(200)))
}

func TestBudgetOverview(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{budgets: []Budget{
		{ID: uuid.New(), UserID: userID, Category: "food", Limit: decimal.NewFromInt(500), Current: decimal.NewFromInt(250)},
		{ID: uuid.New(), UserID: userID, Category: "fun", Limit: decimal.NewFromInt(100), Current: decimal.NewFromInt(130)},
	}}
	svc := newService(repo)

	overview, err := svc.BudgetOverview(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, overview, 2)

	assert.InDelta(t, 50.0, overview[0].Usage, 0.001)
	assert.False(t, overview[0].OverBudget)

	// Usage past 100 is the over-budget signal and stays uncapped.
	assert.InDelta(t, 130.0, overview[1].Usage, 0.001)
	assert.True(t, overview[1].OverBudget)
}

func TestCreateBudgetUpsertsPerCategory(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{}
	svc := newService(repo)

	first, err := svc.CreateBudget(context.Background(), UpsertBudgetInput{
		UserID: userID, Category: "food", Limit: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	second, err := svc.CreateBudget(context.Background(), UpsertBudgetInput{
		UserID: userID, Category: "food", Limit: decimal.NewFromInt(400),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, repo.budgets, 1)
	assert.True(t, repo.budgets[0].Limit.Equal(decimal.NewFromInt(400)))
}
