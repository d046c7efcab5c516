package utils

import (
	"fmt"
	"time"
)

// Accepted layouts for user-entered date/time strings, tried in order. The
// first two match the datetime-local inputs of the web front-ends this
// gateway serves.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseLocalDateTime parses a date/time string into a millisecond timestamp.
// The second return value reports whether parsing succeeded; on failure the
// timestamp is 0. Callers that need to reject bad input must check ok rather
// than compare against zero.
func ParseLocalDateTime(input string) (int64, bool) {
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// IsValidDateString reports whether the input parses as a date/time.
func IsValidDateString(input string) bool {
	_, ok := ParseLocalDateTime(input)
	return ok
}

// IsValidRange reports whether both inputs parse to positive timestamps and
// the end strictly exceeds the start. Used as the precondition gate before an
// event-creation transaction is allowed to be submitted.
func IsValidRange(startInput, endInput string) bool {
	a, okA := ParseLocalDateTime(startInput)
	b, okB := ParseLocalDateTime(endInput)
	return okA && okB && a > 0 && b > 0 && b > a
}

// IsValidRangeMs is IsValidRange over millisecond values.
func IsValidRangeMs(a, b int64) bool {
	return a > 0 && b > 0 && b > a
}

// ToIsoFromMs renders a millisecond timestamp as ISO-8601 in UTC.
func ToIsoFromMs(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}

// ToIsoFromInput parses a local date/time string and renders it as ISO-8601.
// Unparseable input renders the epoch, matching the zero sentinel of
// ParseLocalDateTime.
func ToIsoFromInput(input string) string {
	ms, _ := ParseLocalDateTime(input)
	return ToIsoFromMs(ms)
}

// FormatDateMs renders the date portion of a millisecond timestamp.
func FormatDateMs(ms int64) string {
	return time.UnixMilli(ms).Format("Jan 2, 2006")
}

// FormatTimeMs renders the time-of-day portion of a millisecond timestamp.
func FormatTimeMs(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// FormatRangeMs renders a date label with the start and end times joined by
// an en-dash, e.g. "Jan 2, 2026 09:00–17:30".
func FormatRangeMs(a, b int64) string {
	return fmt.Sprintf("%s %s–%s", FormatDateMs(a), FormatTimeMs(a), FormatTimeMs(b))
}
