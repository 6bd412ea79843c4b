package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeMetric(t *testing.T) {
	th := Threshold{Good: 2500, Poor: 4000}

	assert.Equal(t, PerformanceExcellent, GradeMetric(1200, th))
	assert.Equal(t, PerformanceExcellent, GradeMetric(2500, th))
	assert.Equal(t, PerformanceNeedsImprovement, GradeMetric(2501, th))
	assert.Equal(t, PerformanceNeedsImprovement, GradeMetric(4000, th))
	assert.Equal(t, PerformancePoor, GradeMetric(4001, th))
}

func TestPercentile(t *testing.T) {
	th := Threshold{Good: 2500, Poor: 4000}

	tests := []struct {
		value    float64
		expected int
	}{
		{0, 100},
		{-50, 100},
		{1250, 88},
		{2500, 75},
		{3250, 50},
		{4000, 25},
		{6000, 13},
		{8000, 0},
		{100000, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Percentile(tt.value, th), "value %v", tt.value)
	}
}

func TestPercentile_InvalidThreshold(t *testing.T) {
	assert.Equal(t, 0, Percentile(10, Threshold{}))
	assert.Equal(t, 0, Percentile(10, Threshold{Good: 5, Poor: 5}))
}

func TestPercentile_Bounds(t *testing.T) {
	for _, m := range AllMetricTypes() {
		th := DefaultThresholds().For(m)
		for _, v := range []float64{-1, 0, th.Good, th.Poor, th.Poor * 10} {
			p := Percentile(v, th)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}

func TestParseMetricType(t *testing.T) {
	tests := []struct {
		input    string
		expected MetricType
		ok       bool
	}{
		{"LCP", MetricLCP, true},
		{"largest-contentful-paint", MetricLCP, true},
		{"Cumulative Layout Shift", MetricCLS, true},
		{"speedIndex", MetricSpeedIndex, true},
		{"fps", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMetricType(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}

func TestThresholds_ForAndMerge(t *testing.T) {
	custom := Thresholds{
		MetricLCP: {Good: 2000, Poor: 3000},
		MetricCLS: {Good: 0.5, Poor: 0.1}, // invalid, ignored
	}

	assert.Equal(t, Threshold{Good: 2000, Poor: 3000}, custom.For(MetricLCP))
	assert.Equal(t, DefaultThresholds()[MetricCLS], custom.For(MetricCLS))
	assert.Equal(t, DefaultThresholds()[MetricTTFB], custom.For(MetricTTFB))

	merged := custom.Merge()
	assert.Equal(t, Threshold{Good: 2000, Poor: 3000}, merged[MetricLCP])
	assert.Equal(t, DefaultThresholds()[MetricCLS], merged[MetricCLS])
	assert.Len(t, merged, len(AllMetricTypes()))
}

func TestMetricType_Unit(t *testing.T) {
	assert.Equal(t, "", MetricCLS.Unit())
	assert.Equal(t, "ms", MetricLCP.Unit())
}

func TestThresholds_RateVital(t *testing.T) {
	th := DefaultThresholds()

	lcp := th.RateVital(MetricLCP, 2500)
	assert.Equal(t, MetricLCP, lcp.Metric)
	assert.Equal(t, "ms", lcp.Unit)
	assert.Equal(t, PerformanceExcellent, lcp.Grade)
	assert.Equal(t, 75, lcp.Percentile)

	cls := th.RateVital(MetricCLS, 0.3)
	assert.Equal(t, "", cls.Unit)
	assert.Equal(t, PerformancePoor, cls.Grade)

	neg := th.RateVital(MetricTTFB, -10)
	assert.Equal(t, 0.0, neg.Value)
	assert.Equal(t, 100, neg.Percentile)
}
