// Package dateutil provides the date string formats shared by storage, the
// crawler and the monitor pipeline. Dates are kept as plain strings so that
// stored rows compare lexicographically.
package dateutil

import "time"

const (
	// StampLayout is the storage timestamp format (no T, 19 chars).
	StampLayout = "2006-01-02 15:04:05"
	// DateLayout is the date-only format used for report_date and range bounds.
	DateLayout = "2006-01-02"
)

// Now returns the current time as a storage timestamp string.
func Now() string {
	return time.Now().Format(StampLayout)
}

// TodayDateString returns today's date as YYYY-MM-DD.
func TodayDateString() string {
	return time.Now().Format(DateLayout)
}

// DateRangeForToday returns the "<start> to <end>" range string covering today.
func DateRangeForToday() string {
	s := TodayDateString()
	return s + " to " + s
}

// ParseDate parses the first 10 characters of a stored date string.
// Invalid input yields the zero time.
func ParseDate(s string) time.Time {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
