// Package timeutil holds the pure time helpers behind pickup scheduling:
// quarter-hour rounding, date-only flooring, date+clock combination and the
// pickup date range. All functions are referentially transparent; nothing
// here reads the wall clock.
package timeutil

import "time"

// RoundUpToQuarterHour returns the next 15-minute boundary at or after t.
// A t already on a boundary is returned unchanged; rounding past minute 59
// rolls into the next hour.
func RoundUpToQuarterHour(t time.Time) time.Time {
	trunc := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	if trunc.Equal(t) && t.Minute()%15 == 0 {
		return t
	}
	rem := trunc.Minute() % 15
	if rem == 0 && !trunc.Equal(t) {
		// boundary minute but with seconds elapsed, bump a full quarter
		return trunc.Add(15 * time.Minute)
	}
	return trunc.Add(time.Duration(15-rem) * time.Minute)
}

// StartOfDay floors t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Combine merges a calendar date with a clock time, zeroing seconds and
// below. Only the hour and minute of clock are read.
func Combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DatesThroughNextMonth returns every calendar day from today through one
// calendar month later, inclusive and ascending. Calling it again restarts
// the sequence.
func DatesThroughNextMonth(today time.Time) []time.Time {
	start := StartOfDay(today)
	end := start.AddDate(0, 1, 0)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DateLabel renders a pickup date option relative to today: "Today",
// "Tomorrow", or the full weekday form ("Monday, March 17, 2025").
func DateLabel(d, today time.Time) string {
	switch {
	case SameDay(d, today):
		return "Today"
	case SameDay(d, StartOfDay(today).AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.Format("Monday, January 2, 2006")
	}
}

// FormatDate renders the short confirmation form, e.g. "Mar 15, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatClock renders an hour:minute with AM/PM, e.g. "12:01 AM".
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
