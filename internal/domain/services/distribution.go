package services

import (
	"github.com/felixgeelhaar/firesalamander/internal/domain/visual"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// scoreBuckets are the fixed ranges of the 0-100 histogram.
var scoreBuckets = []struct {
	label    string
	min, max float64
}{
	{"0-20", 0, 20},
	{"21-40", 21, 40},
	{"41-60", 41, 60},
	{"61-80", 61, 80},
	{"81-100", 81, 100},
}

// ScoreDistribution folds 0-100 scores into the fixed five-bucket
// histogram. Scores are clamped to [0, 100] and a fractional score falls
// into the bucket whose upper bound it does not exceed. Percentages are
// rounded to one decimal and are all zero for empty input.
func ScoreDistribution(scores []float64) []visual.DistributionBucket {
	buckets := make([]visual.DistributionBucket, len(scoreBuckets))
	for i, b := range scoreBuckets {
		buckets[i] = visual.DistributionBucket{Range: b.label, Min: b.min, Max: b.max}
	}

	for _, s := range scores {
		s = coerce.Clamp(s, 0, 100)
		for i, b := range scoreBuckets {
			if s <= b.max || i == len(scoreBuckets)-1 {
				buckets[i].Count++
				break
			}
		}
	}

	if len(scores) == 0 {
		return buckets
	}
	total := float64(len(scores))
	for i := range buckets {
		buckets[i].Percentage = coerce.Round(float64(buckets[i].Count)/total*100, 1)
	}
	return buckets
}

// CountChart builds a chart from counts, labelled in the given order.
// Labels missing from counts are emitted with a zero value.
func CountChart(counts map[string]int, order []string) visual.Chart {
	chart := visual.EmptyChart()
	for _, label := range order {
		chart.Labels = append(chart.Labels, label)
		chart.Values = append(chart.Values, float64(counts[label]))
	}
	return chart
}
