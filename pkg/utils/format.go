package utils

import (
	"fmt"
	"time"
)

// TBD is rendered wherever a date or time has not been decided yet.
const TBD = "TBD"

// FormatDate renders a nullable date as "02 Jan 2006" or TBD.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return TBD
	}
	return t.Format("02 Jan 2006")
}

// FormatDateTime renders a nullable timestamp as "02 Jan 2006 15:04" or TBD.
func FormatDateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return TBD
	}
	return t.Format("02 Jan 2006 15:04")
}

// FormatDateRange renders a nullable [start, end] pair, e.g.
// "02 Jan 2026 - 10 Jan 2026", "02 Jan 2026 - TBD" or "TBD".
func FormatDateRange(start, end *time.Time) string {
	if (start == nil || start.IsZero()) && (end == nil || end.IsZero()) {
		return TBD
	}
	return fmt.Sprintf("%s - %s", FormatDate(start), FormatDate(end))
}

// OrTBD returns s, or TBD when s is empty.
func OrTBD(s string) string {
	if s == "" {
		return TBD
	}
	return s
}
