package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeContactStatus(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		t := now.AddDate(0, 0, -d)
		return &t
	}
	freq := func(d int) *int {
		return &d
	}

	tests := []struct {
		name      string
		last      *time.Time
		frequency *int
		expected  ContactStatus
	}{
		{"no last contact", nil, freq(30), ContactStatusUnknown},
		{"no cadence", daysAgo(10), nil, ContactStatusUnknown},
		{"neither field", nil, nil, ContactStatusUnknown},
		{"well within cadence", daysAgo(10), freq(30), ContactStatusGood},
		{"past 80 percent of cadence", daysAgo(26), freq(30), ContactStatusDue},
		{"past cadence", daysAgo(35), freq(30), ContactStatusOverdue},
		{"one day past cadence", daysAgo(31), freq(30), ContactStatusOverdue},
		{"exactly at cadence is not overdue", daysAgo(30), freq(30), ContactStatusDue},
		{"85 of 100 days", daysAgo(85), freq(100), ContactStatusDue},
		{"contacted today", daysAgo(0), freq(7), ContactStatusGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeContactStatus(tt.last, tt.frequency, now))
		})
	}
}

func TestComputeContactStatusPartialDays(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	freq := 7

	// 7 days and one hour ago: the started eighth day already counts,
	// so the contact is overdue.
	last := now.Add(-(7*24 + 1) * time.Hour)
	assert.Equal(t, ContactStatusOverdue, ComputeContactStatus(&last, &freq, now))

	// Exactly 7 days is the boundary: not overdue yet.
	last = now.AddDate(0, 0, -7)
	assert.Equal(t, ContactStatusDue, ComputeContactStatus(&last, &freq, now))
}
