package metrics

import (
	"time"

	"github.com/mzohdy/northstar/pkg/dates"
)

// ContactStatus is derived from a contact's cadence fields on every
// read; it is never stored.
type ContactStatus string

const (
	ContactStatusUnknown ContactStatus = "unknown"
	ContactStatusOverdue ContactStatus = "overdue"
	ContactStatusDue     ContactStatus = "due"
	ContactStatusGood    ContactStatus = "good"
)

// ComputeContactStatus classifies how stale a relationship is. Without
// both a last-contacted date and an expected cadence the answer is
// unknown. Past the cadence it is overdue; past 80% of the cadence it
// is due. Elapsed days round partial days up, so any started day counts.
func ComputeContactStatus(lastContactedAt *time.Time, frequencyDays *int, now time.Time) ContactStatus {
	if lastContactedAt == nil || frequencyDays == nil {
		return ContactStatusUnknown
	}

	elapsed := dates.DaysBetween(*lastContactedAt, now)
	freq := *frequencyDays

	switch {
	case elapsed > freq:
		return ContactStatusOverdue
	case float64(elapsed) > 0.8*float64(freq):
		return ContactStatusDue
	default:
		return ContactStatusGood
	}
}
