package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name      string
		input     time.Time
		weekStart time.Weekday
		expected  time.Time
	}{
		{
			name:      "Wednesday with Sunday week start",
			input:     time.Date(2024, 7, 10, 15, 30, 0, 0, loc), // Wed
			weekStart: time.Sunday,
			expected:  time.Date(2024, 7, 7, 0, 0, 0, 0, loc),
		},
		{
			name:      "Sunday is its own week start",
			input:     time.Date(2024, 7, 7, 23, 59, 59, 0, loc),
			weekStart: time.Sunday,
			expected:  time.Date(2024, 7, 7, 0, 0, 0, 0, loc),
		},
		{
			name:      "Sunday with Monday week start rolls back six days",
			input:     time.Date(2024, 7, 7, 8, 0, 0, 0, loc),
			weekStart: time.Monday,
			expected:  time.Date(2024, 7, 1, 0, 0, 0, 0, loc),
		},
		{
			name:      "week spanning a month boundary",
			input:     time.Date(2024, 8, 1, 12, 0, 0, 0, loc), // Thu
			weekStart: time.Sunday,
			expected:  time.Date(2024, 7, 28, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StartOfWeek(tt.input, tt.weekStart, loc))
		})
	}
}

func TestEndOfWeek(t *testing.T) {
	loc := time.UTC
	got := EndOfWeek(time.Date(2024, 7, 10, 15, 30, 0, 0, loc), time.Sunday, loc)
	assert.Equal(t, time.Date(2024, 7, 13, 0, 0, 0, 0, loc), got)
}

func TestMonthBoundaries(t *testing.T) {
	loc := time.UTC
	feb := time.Date(2024, 2, 14, 10, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), StartOfMonth(feb, loc))
	// 2024 is a leap year
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, loc), EndOfMonth(feb, loc))
}

func TestSameDay(t *testing.T) {
	loc := time.UTC

	a := time.Date(2024, 7, 10, 0, 0, 1, 0, loc)
	b := time.Date(2024, 7, 10, 23, 59, 59, 0, loc)
	assert.True(t, SameDay(a, b, loc))
	assert.False(t, SameDay(a, b.Add(time.Second), loc))

	// Zone matters: 23:00 UTC on the 10th is already the 11th in Cairo.
	cairo, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	late := time.Date(2024, 7, 10, 23, 0, 0, 0, time.UTC)
	next := time.Date(2024, 7, 11, 8, 0, 0, 0, time.UTC)
	assert.False(t, SameDay(late, next, time.UTC))
	assert.True(t, SameDay(late, next, cairo))
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{"same instant", base, base, 0},
		{"negative delta clamps to zero", base, base.Add(-time.Hour), 0},
		{"exactly one day", base, base.AddDate(0, 0, 1), 1},
		{"partial day rounds up", base, base.Add(25 * time.Hour), 2},
		{"one hour counts as a day", base, base.Add(time.Hour), 1},
		{"thirty full days", base, base.AddDate(0, 0, 30), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Monday, Weekday("monday"))
	assert.Equal(t, time.Monday, Weekday(" Monday "))
	assert.Equal(t, time.Sunday, Weekday("sunday"))
	assert.Equal(t, time.Sunday, Weekday("whatever"))
	assert.Equal(t, time.Sunday, Weekday(""))
}
