// Package coerce converts loosely-typed JSON values into Go values.
//
// Backend payloads are decoded into interface values and every field access
// goes through this package, so a missing or mistyped field degrades to a
// zero value or a caller supplied fallback instead of failing.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number converts v to a finite float64.
// It accepts every Go numeric type, json.Number and numeric strings.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), "%"))
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String converts v to a string. Numbers are formatted without exponent,
// booleans as "true"/"false". Other values are rejected.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case nil:
		return "", false
	}
	if f, ok := Number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// Bool converts v to a bool. Strings such as "yes", "on" and "1" are
// accepted, and numbers are true when non-zero.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "on", "1", "enabled":
			return true, true
		case "false", "no", "n", "off", "0", "disabled", "":
			return false, true
		}
		return false, false
	}
	if f, ok := Number(v); ok {
		return f != 0, true
	}
	return false, false
}

// Slice returns v as a slice, or an empty non-nil slice when v is not one.
func Slice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return []any{}
}

// Strings returns the string elements of v. Non-string elements are
// skipped, and a non-array value yields an empty slice.
func Strings(v any) []string {
	items := Slice(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := String(item); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Round rounds f to the given number of decimal places.
func Round(f float64, places int) float64 {
	if places <= 0 {
		return math.Round(f)
	}
	pow := math.Pow(10, float64(places))
	return math.Round(f*pow) / pow
}

// Clamp bounds f to [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
