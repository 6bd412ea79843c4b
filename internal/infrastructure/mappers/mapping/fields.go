package mapping

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// Host returns the lower-cased host of raw without a leading "www.".
// Bare domains are accepted.
func Host(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// Count returns v as a count: the length of an array, or a non-negative
// number. Anything else is fallback.
func Count(v any, fallback int) int {
	if s, ok := v.([]any); ok {
		return len(s)
	}
	return coerce.ValidatePositiveInt(v, fallback)
}

// OptionalDate formats v as an ISO timestamp when it parses, and returns
// the trimmed raw string otherwise. Missing values stay empty.
func OptionalDate(v any) string {
	if t, ok := coerce.ParseTime(v); ok {
		return coerce.FormatTime(t)
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// ID returns id, or a positional identifier built from prefix.
func ID(id, prefix string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", prefix, index+1)
}

// Vitals rates the Core Web Vitals found in obj in display order.
// Unknown keys and non-numeric values are skipped. When several aliases
// name one metric the canonical key wins, then the first alias in sorted
// order.
func (e Env) Vitals(obj coerce.Object) []scoring.WebVital {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[scoring.MetricType]float64)
	for _, key := range keys {
		raw := obj[key]
		m, ok := scoring.ParseMetricType(key)
		if !ok {
			continue
		}
		if _, seen := values[m]; seen && key != string(m) {
			continue
		}
		if v, ok := coerce.Number(raw); ok {
			values[m] = v
		}
	}

	vitals := make([]scoring.WebVital, 0, len(values))
	for _, m := range scoring.AllMetricTypes() {
		if v, ok := values[m]; ok {
			vitals = append(vitals, e.Thresholds.RateVital(m, v))
		}
	}
	return vitals
}
