// Package timex holds the project's date arithmetic and parsing helpers,
// plus a JSON-friendly Duration used by the config layer.
//
// All calendar math in the engine happens at day granularity: parsed dates
// are normalized to midnight in the local time zone, so equality and
// ordering comparisons are deterministic regardless of the time of day a
// classification runs.
package timex

import (
	"math"
	"strings"
	"time"
)

// wireDateLayout is the format the feed and the replication endpoint use.
const wireDateLayout = "02/01/2006"

// ParseDate parses a date in DD/MM/YYYY or YYYY-MM-DD form, with an RFC 3339
// fallback for timestamp-shaped input. The result is normalized to midnight
// local time. It reports false on unrecognized input and never panics.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "/") {
		t, err := time.ParseInLocation("2/1/2006", s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if strings.Contains(s, "-") {
		if strings.Contains(s, "T") {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return time.Time{}, false
			}
			return Midnight(t.In(time.Local)), true
		}
		t, err := time.ParseInLocation("2006-1-2", s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

// FormatDate renders t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(wireDateLayout)
}

// AddDays returns t advanced by n calendar days (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween counts the calendar days from a to b (negative when b precedes
// a). Both instants are taken at their day boundary and the hour quotient is
// rounded, so a DST transition inside the span cannot shift the count.
func DaysBetween(a, b time.Time) int {
	d := Midnight(b).Sub(Midnight(a))
	return int(math.Round(d.Hours() / 24))
}

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ReferenceWindow is the pair of day boundaries every deadline in one
// ingestion pass is judged against. Capturing it once per pass keeps status
// assignment internally consistent even when the pass spans midnight.
type ReferenceWindow struct {
	Today    time.Time
	Tomorrow time.Time
}

// NewReferenceWindow builds a window anchored at now's calendar day.
func NewReferenceWindow(now time.Time) ReferenceWindow {
	today := Midnight(now)
	return ReferenceWindow{Today: today, Tomorrow: AddDays(today, 1)}
}
