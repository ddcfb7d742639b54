package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is the snapshot record the financial aggregators consume.
// Amounts are non-negative decimals; the Type field carries the sign.
type Transaction struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
}

// FinancialSummary rolls a transaction set up into income, expenses and
// their difference.
type FinancialSummary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// CategoryAmount pairs an expense category with its total.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// DefaultTopExpenseCategories is the cut-off used when a caller does not
// supply one.
const DefaultTopExpenseCategories = 5

// ComputeFinancialSummary totals income and expenses over the snapshot.
// Balance is income minus expenses and may be negative.
func ComputeFinancialSummary(txns []Transaction) FinancialSummary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txns {
		switch tx.Type {
		case TransactionIncome:
			income = income.Add(tx.Amount)
		case TransactionExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return FinancialSummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// ComputeTopExpenseCategories totals expenses per category and returns
// the n largest, descending by amount. Ties keep first-seen order. A
// non-positive n falls back to DefaultTopExpenseCategories.
func ComputeTopExpenseCategories(txns []Transaction, n int) []CategoryAmount {
	if n <= 0 {
		n = DefaultTopExpenseCategories
	}

	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txns {
		if tx.Type != TransactionExpense {
			continue
		}
		if _, ok := totals[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	ranked := make([]CategoryAmount, 0, len(order))
	for _, category := range order {
		ranked = append(ranked, CategoryAmount{Category: category, Amount: totals[category]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// BudgetUsage returns spend against a limit as a percentage. The result
// is deliberately uncapped: values past 100 are the over-budget signal
// the budget views alert on, so clamping here would hide them. A zero
// or negative limit yields 0.
func BudgetUsage(current, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	usage, _ := current.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	return usage
}
