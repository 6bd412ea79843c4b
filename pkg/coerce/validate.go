package coerce

import (
	"math"
	"strings"
	"time"
)

// ISOLayout is the timestamp layout of every date emitted in a view model.
// It matches the millisecond precision UTC form used by the dashboard.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// ServerErrorStatus replaces HTTP status codes outside [100, 599].
const ServerErrorStatus = 500

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02",
	"Jan 2 15:04:05 2006 MST",
	"Jan _2 15:04:05 2006 GMT",
}

// ValidatePositiveNumber returns v as a non-negative number, or fallback
// when v is not numeric or is negative. Zero is a valid value.
func ValidatePositiveNumber(v any, fallback float64) float64 {
	f, ok := Number(v)
	if !ok || f < 0 {
		return fallback
	}
	return f
}

// ValidatePositiveInt is ValidatePositiveNumber truncated to an int.
func ValidatePositiveInt(v any, fallback int) int {
	f, ok := Number(v)
	if !ok || f < 0 {
		return fallback
	}
	return int(f)
}

// ValidatePercentage returns v clamped to [0, 100]; non-numeric input is 0.
func ValidatePercentage(v any) float64 {
	f, ok := Number(v)
	if !ok {
		return 0
	}
	return Clamp(f, 0, 100)
}

// ValidateISODate formats v as an ISO-8601 timestamp. Unparseable or
// missing values resolve to now.
func ValidateISODate(v any, now time.Time) string {
	if t, ok := ParseTime(v); ok {
		return FormatTime(t)
	}
	return FormatTime(now)
}

// FormatTime renders t with ISOLayout in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseTime parses a date string in one of the common layouts, or a unix
// timestamp in seconds or milliseconds.
func ParseTime(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}

	f, ok := Number(v)
	if !ok || f <= 0 {
		return time.Time{}, false
	}
	// Values beyond 1e12 can only be milliseconds for any realistic date.
	if f > 1e12 {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	return time.Unix(int64(f), 0).UTC(), true
}

// ValidateStatusCode returns v as an HTTP status code. Anything outside
// [100, 599] becomes ServerErrorStatus.
func ValidateStatusCode(v any) int {
	f, ok := Number(v)
	if !ok {
		return ServerErrorStatus
	}
	code := int(math.Trunc(f))
	if code < 100 || code > 599 {
		return ServerErrorStatus
	}
	return code
}
