package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzohdy/northstar/internal/domain/contact"
	"github.com/mzohdy/northstar/internal/domain/finance"
	"github.com/mzohdy/northstar/internal/domain/task"
	"github.com/mzohdy/northstar/internal/metrics"
)

type stubTasks struct {
	task.Service
	stats *task.WeeklyStats
	err   error
}

func (s *stubTasks) WeeklyStats(ctx context.Context, userID uuid.UUID, ref time.Time) (*task.WeeklyStats, error) {
	return s.stats, s.err
}

type stubFinances struct {
	finance.Service
	summary *finance.MonthlySummary
	err     error
}

func (s *stubFinances) Summary(ctx context.Context, userID uuid.UUID, month time.Time) (*finance.MonthlySummary, error) {
	return s.summary, s.err
}

type stubContacts struct {
	contact.Service
	due []contact.ContactView
	err error
}

func (s *stubContacts) DueForContact(ctx context.Context, userID uuid.UUID) ([]contact.ContactView, error) {
	return s.due, s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func sampleStats() *task.WeeklyStats {
	return &task.WeeklyStats{
		Daily: []metrics.DailyStats{
			{Total: 4, Completed: 2, MinutesSpent: 75},
			{Total: 2, Completed: 2, MinutesSpent: 30},
		},
		StreakDays:        2,
		CompletionRate:    66.7,
		ProductivityScore: 58,
		WorkShare:         60,
		LifeShare:         40,
	}
}

func sampleSummary() *finance.MonthlySummary {
	return &finance.MonthlySummary{
		FinancialSummary: metrics.FinancialSummary{
			TotalIncome:   decimal.NewFromInt(500),
			TotalExpenses: decimal.NewFromInt(250),
			Balance:       decimal.NewFromInt(250),
		},
		TopExpenseCategories: []metrics.CategoryAmount{
			{Category: "food", Amount: decimal.NewFromInt(200)},
		},
	}
}

func TestBuildFullContext(t *testing.T) {
	builder := NewContextBuilder(BuilderConfig{
		Tasks:    &stubTasks{stats: sampleStats()},
		Finances: &stubFinances{summary: sampleSummary()},
		Contacts: &stubContacts{due: []contact.ContactView{
			{Contact: contact.Contact{Name: "Dana", Relationship: contact.RelationshipFriend}, Status: metrics.ContactStatusOverdue},
		}},
		Logger: quietLogger(),
	})

	out, err := builder.Build(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Contains(t, out, "4 of 6 tasks completed")
	assert.Contains(t, out, "Current streak: 2 day(s)")
	assert.Contains(t, out, "Productivity score: 58/100")
	assert.Contains(t, out, "Income: 500.00, expenses: 250.00, balance: 250.00")
	assert.Contains(t, out, "food (200.00)")
	assert.Contains(t, out, "Dana (friend, overdue)")
}

func TestBuildSkipsFailedSections(t *testing.T) {
	builder := NewContextBuilder(BuilderConfig{
		Tasks:    &stubTasks{err: errors.New("db down")},
		Finances: &stubFinances{summary: sampleSummary()},
		Contacts: &stubContacts{},
		Logger:   quietLogger(),
	})

	out, err := builder.Build(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.NotContains(t, out, "productivity")
	assert.Contains(t, out, "This month's finances")
	// Nobody due means no contact section at all.
	assert.NotContains(t, out, "People to reach out to")
}

func TestBuildFailsWhenNothingLoads(t *testing.T) {
	builder := NewContextBuilder(BuilderConfig{
		Tasks:    &stubTasks{err: errors.New("down")},
		Finances: &stubFinances{err: errors.New("down")},
		Contacts: &stubContacts{err: errors.New("down")},
		Logger:   quietLogger(),
	})

	_, err := builder.Build(context.Background(), uuid.New(), time.Now())
	assert.Error(t, err)
}
