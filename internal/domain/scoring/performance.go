package scoring

import (
	"math"
	"strings"

	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// PerformanceGrade rates a single performance metric.
type PerformanceGrade string

const (
	PerformanceExcellent        PerformanceGrade = "EXCELLENT"
	PerformanceNeedsImprovement PerformanceGrade = "NEEDS_IMPROVEMENT"
	PerformancePoor             PerformanceGrade = "POOR"
)

// MetricType identifies a web performance metric.
type MetricType string

const (
	MetricLCP        MetricType = "lcp"
	MetricFID        MetricType = "fid"
	MetricINP        MetricType = "inp"
	MetricCLS        MetricType = "cls"
	MetricTTFB       MetricType = "ttfb"
	MetricFCP        MetricType = "fcp"
	MetricTBT        MetricType = "tbt"
	MetricSpeedIndex MetricType = "speed_index"
)

// Threshold is the good/poor boundary pair of a metric. Values at or
// below Good are excellent, values above Poor are poor.
type Threshold struct {
	Good float64 `yaml:"good" json:"good"`
	Poor float64 `yaml:"poor" json:"poor"`
}

// Thresholds maps metric types to their thresholds.
type Thresholds map[MetricType]Threshold

// DefaultThresholds returns the Core Web Vitals and Lighthouse thresholds.
// Timings are in milliseconds, CLS is unitless.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MetricLCP:        {Good: 2500, Poor: 4000},
		MetricFID:        {Good: 100, Poor: 300},
		MetricINP:        {Good: 200, Poor: 500},
		MetricCLS:        {Good: 0.1, Poor: 0.25},
		MetricTTFB:       {Good: 800, Poor: 1800},
		MetricFCP:        {Good: 1800, Poor: 3000},
		MetricTBT:        {Good: 200, Poor: 600},
		MetricSpeedIndex: {Good: 3400, Poor: 5800},
	}
}

// For returns the threshold of m, falling back to the default threshold
// when t has no valid entry for it.
func (t Thresholds) For(m MetricType) Threshold {
	if th, ok := t[m]; ok && th.Good > 0 && th.Poor > th.Good {
		return th
	}
	return DefaultThresholds()[m]
}

// Merge returns a copy of the defaults overridden by valid entries of t.
func (t Thresholds) Merge() Thresholds {
	merged := DefaultThresholds()
	for m, th := range t {
		if th.Good > 0 && th.Poor > th.Good {
			merged[m] = th
		}
	}
	return merged
}

var metricAliases = map[string]MetricType{
	"lcp":                       MetricLCP,
	"largest_contentful_paint":  MetricLCP,
	"fid":                       MetricFID,
	"first_input_delay":         MetricFID,
	"inp":                       MetricINP,
	"interaction_to_next_paint": MetricINP,
	"cls":                       MetricCLS,
	"cumulative_layout_shift":   MetricCLS,
	"ttfb":                      MetricTTFB,
	"time_to_first_byte":        MetricTTFB,
	"fcp":                       MetricFCP,
	"first_contentful_paint":    MetricFCP,
	"tbt":                       MetricTBT,
	"total_blocking_time":       MetricTBT,
	"speed_index":               MetricSpeedIndex,
	"speedindex":                MetricSpeedIndex,
	"si":                        MetricSpeedIndex,
}

// ParseMetricType maps a backend metric key onto a MetricType.
func ParseMetricType(s string) (MetricType, bool) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	m, ok := metricAliases[key]
	return m, ok
}

// AllMetricTypes returns the metric types in display order.
func AllMetricTypes() []MetricType {
	return []MetricType{MetricLCP, MetricFID, MetricINP, MetricCLS, MetricTTFB, MetricFCP, MetricTBT, MetricSpeedIndex}
}

// Unit returns the display unit of the metric.
func (m MetricType) Unit() string {
	if m == MetricCLS {
		return ""
	}
	return "ms"
}

// GradeMetric rates value against th.
func GradeMetric(value float64, th Threshold) PerformanceGrade {
	switch {
	case value <= th.Good:
		return PerformanceExcellent
	case value <= th.Poor:
		return PerformanceNeedsImprovement
	default:
		return PerformancePoor
	}
}

// Percentile maps value onto 0-100 with three linear segments:
// [0, good] -> [100, 75], (good, poor] -> [75, 25] and (poor, 2*poor] -> [25, 0].
// Each segment is clamped and the result rounded.
func Percentile(value float64, th Threshold) int {
	if value < 0 {
		value = 0
	}

	var p float64
	switch {
	case th.Good <= 0 || th.Poor <= th.Good:
		return 0
	case value <= th.Good:
		p = coerce.Clamp(100-(value/th.Good)*25, 75, 100)
	case value <= th.Poor:
		p = coerce.Clamp(75-(value-th.Good)/(th.Poor-th.Good)*50, 25, 75)
	default:
		p = coerce.Clamp(25-(value-th.Poor)/th.Poor*25, 0, 25)
	}
	return int(math.Round(p))
}

// WebVital is one rated performance metric.
type WebVital struct {
	Metric     MetricType       `json:"metric"`
	Value      float64          `json:"value"`
	Unit       string           `json:"unit"`
	Grade      PerformanceGrade `json:"grade"`
	Percentile int              `json:"percentile"`
}

// RateVital grades value against the threshold t holds for m.
func (t Thresholds) RateVital(m MetricType, value float64) WebVital {
	th := t.For(m)
	if value < 0 {
		value = 0
	}
	return WebVital{
		Metric:     m,
		Value:      coerce.Round(value, 3),
		Unit:       m.Unit(),
		Grade:      GradeMetric(value, th),
		Percentile: Percentile(value, th),
	}
}
