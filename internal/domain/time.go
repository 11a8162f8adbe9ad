package domain

import "time"

// TimeLayout is the storage encoding for timestamps: UTC ISO-8601 text with
// fixed-width nanoseconds so that lexical order matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime encodes t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime decodes a stored timestamp. Accepts any RFC 3339 text, not just
// TimeLayout, so rows written by other producers still scan.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
