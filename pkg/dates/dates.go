// Package dates holds the calendar arithmetic shared by the metrics
// aggregators. Every function is pure and takes the time zone it should
// reason in as an explicit parameter; nothing here ever consults the
// process-local zone. Services read the zone once from configuration and
// pass it through, so "same day" means the same thing everywhere.
package dates

import (
	"math"
	"strings"
	"time"
)

// Weekday parses a configured first-day-of-week name. Unrecognized
// values fall back to Sunday.
func Weekday(name string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "monday":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Sunday
	}
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfWeek returns midnight of the first day of the week containing t.
func StartOfWeek(t time.Time, weekStart time.Weekday, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns midnight of the last day of the week containing t.
func EndOfWeek(t time.Time, weekStart time.Weekday, loc *time.Location) time.Time {
	return StartOfWeek(t, weekStart, loc).AddDate(0, 0, 6)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time, loc *time.Location) time.Time {
	return StartOfMonth(t, loc).AddDate(0, 1, -1)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of whole days elapsed from a to b,
// rounding any partial day up. A contact reached 30.2 days ago is 31
// days stale, not 30. Returns 0 when b is not after a.
func DaysBetween(a, b time.Time) int {
	delta := b.Sub(a)
	if delta <= 0 {
		return 0
	}
	return int(math.Ceil(delta.Hours() / 24))
}
