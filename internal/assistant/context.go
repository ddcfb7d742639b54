// Package assistant assembles the natural-language context block handed
// to the downstream chat model. It only reads the derived views the
// domain services already expose; the model call itself lives elsewhere.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mzohdy/northstar/internal/domain/contact"
	"github.com/mzohdy/northstar/internal/domain/finance"
	"github.com/mzohdy/northstar/internal/domain/task"
)

// ContextBuilder gathers a user's current state into prompt-ready text
type ContextBuilder struct {
	tasks    task.Service
	finances finance.Service
	contacts contact.Service
	logger   *logrus.Logger
}

// BuilderConfig contains context builder configuration options
type BuilderConfig struct {
	Tasks    task.Service
	Finances finance.Service
	Contacts contact.Service
	Logger   *logrus.Logger
}

// NewContextBuilder creates a new assistant context builder
func NewContextBuilder(config BuilderConfig) *ContextBuilder {
	return &ContextBuilder{
		tasks:    config.Tasks,
		finances: config.Finances,
		contacts: config.Contacts,
		logger:   config.Logger,
	}
}

// Build renders the user's weekly stats, finances and lapsed contacts
// into one plain-text block. Sections that fail to load are skipped
// rather than failing the whole prompt.
func (b *ContextBuilder) Build(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	var sections []string

	if stats, err := b.tasks.WeeklyStats(ctx, userID, now); err != nil {
		b.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Warn("Skipping task section of assistant context")
	} else {
		sections = append(sections, renderTasks(stats))
	}

	if summary, err := b.finances.Summary(ctx, userID, now); err != nil {
		b.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Warn("Skipping finance section of assistant context")
	} else {
		sections = append(sections, renderFinances(summary))
	}

	if due, err := b.contacts.DueForContact(ctx, userID); err != nil {
		b.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Warn("Skipping contact section of assistant context")
	} else if len(due) > 0 {
		sections = append(sections, renderContacts(due))
	}

	if len(sections) == 0 {
		return "", fmt.Errorf("no context sections available for user %s", userID)
	}

	b.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"sections": len(sections),
	}).Info("Assembled assistant context")

	return strings.Join(sections, "\n\n"), nil
}

func renderTasks(stats *task.WeeklyStats) string {
	var sb strings.Builder
	sb.WriteString("This week's productivity:\n")

	completed, total := 0, 0
	for _, d := range stats.Daily {
		completed += d.Completed
		total += d.Total
	}
	fmt.Fprintf(&sb, "- %d of %d tasks completed (%.0f%% completion rate)\n", completed, total, stats.CompletionRate)
	fmt.Fprintf(&sb, "- Current streak: %d day(s)\n", stats.StreakDays)
	fmt.Fprintf(&sb, "- Productivity score: %d/100\n", stats.ProductivityScore)
	fmt.Fprintf(&sb, "- Work/life split: %.0f%% work, %.0f%% life", stats.WorkShare, stats.LifeShare)

	return sb.String()
}

func renderFinances(summary *finance.MonthlySummary) string {
	var sb strings.Builder
	sb.WriteString("This month's finances:\n")
	fmt.Fprintf(&sb, "- Income: %s, expenses: %s, balance: %s",
		summary.TotalIncome.StringFixed(2),
		summary.TotalExpenses.StringFixed(2),
		summary.Balance.StringFixed(2))

	if len(summary.TopExpenseCategories) > 0 {
		sb.WriteString("\n- Top spending: ")
		parts := make([]string, len(summary.TopExpenseCategories))
		for i, c := range summary.TopExpenseCategories {
			parts[i] = fmt.Sprintf("%s (%s)", c.Category, c.Amount.StringFixed(2))
		}
		sb.WriteString(strings.Join(parts, ", "))
	}

	return sb.String()
}

func renderContacts(due []contact.ContactView) string {
	var sb strings.Builder
	sb.WriteString("People to reach out to:\n")
	for i, c := range due {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", c.Name, c.Relationship, c.Status)
	}
	return sb.String()
}
