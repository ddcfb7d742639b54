package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputeFinancialSummary(t *testing.T) {
	txns := []Transaction{
		{Type: TransactionIncome, Amount: amount(500)},
		{Type: TransactionExpense, Amount: amount(120), Category: "food"},
		{Type: TransactionExpense, Amount: amount(80), Category: "food"},
		{Type: TransactionExpense, Amount: amount(50), Category: "transport"},
	}

	summary := ComputeFinancialSummary(txns)
	assert.True(t, summary.TotalIncome.Equal(amount(500)))
	assert.True(t, summary.TotalExpenses.Equal(amount(250)))
	assert.True(t, summary.Balance.Equal(amount(250)))

	top := ComputeTopExpenseCategories(txns, 5)
	assert.Equal(t, "food", top[0].Category)
	assert.True(t, top[0].Amount.Equal(amount(200)))
}

func TestComputeFinancialSummaryEmpty(t *testing.T) {
	summary := ComputeFinancialSummary(nil)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.Balance.IsZero())
}

func TestComputeFinancialSummaryNegativeBalance(t *testing.T) {
	summary := ComputeFinancialSummary([]Transaction{
		{Type: TransactionIncome, Amount: amount(100)},
		{Type: TransactionExpense, Amount: amount(300)},
	})
	assert.True(t, summary.Balance.Equal(amount(-200)))
}

func TestComputeTopExpenseCategories(t *testing.T) {
	txns := []Transaction{
		{Type: TransactionExpense, Amount: amount(10), Category: "a"},
		{Type: TransactionExpense, Amount: amount(30), Category: "b"},
		{Type: TransactionExpense, Amount: amount(20), Category: "c"},
		{Type: TransactionExpense, Amount: amount(20), Category: "d"},
		{Type: TransactionIncome, Amount: amount(1000), Category: "salary"},
	}

	top := ComputeTopExpenseCategories(txns, 3)
	assert.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Category)
	// Tie between c and d holds first-seen order.
	assert.Equal(t, "c", top[1].Category)
	assert.Equal(t, "d", top[2].Category)

	// Non-positive n falls back to the default of 5.
	all := ComputeTopExpenseCategories(txns, 0)
	assert.Len(t, all, 4)
}

func TestBudgetUsage(t *testing.T) {
	assert.Equal(t, 50.0, BudgetUsage(amount(50), amount(100)))
	// Over-budget stays visible, never clamped to 100.
	assert.Equal(t, 130.0, BudgetUsage(amount(130), amount(100)))
	assert.Equal(t, 0.0, BudgetUsage(amount(50), decimal.Zero))
}
