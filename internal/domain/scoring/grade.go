// Package scoring holds the pure calculators that turn normalized signals
// into scores, grades and percentiles.
//
// The constants in this package are calibration data shared with the
// dashboard's historical output. Change them only together with product.
package scoring

import "github.com/felixgeelhaar/firesalamander/pkg/coerce"

// Grade is a letter grade derived from a 0-100 score.
type Grade string

const (
	GradeAPlus Grade = "A+" // 95-100
	GradeA     Grade = "A"  // 85-94
	GradeB     Grade = "B"  // 70-84
	GradeC     Grade = "C"  // 50-69
	GradeD     Grade = "D"  // 30-49
	GradeF     Grade = "F"  // 0-29
)

// GradeFromScore bands a 0-100 score into a letter grade. It is shared by
// header, SSL and overall scores.
func GradeFromScore(score float64) Grade {
	switch {
	case score >= 95:
		return GradeAPlus
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 50:
		return GradeC
	case score >= 30:
		return GradeD
	default:
		return GradeF
	}
}

// Description returns a human-readable description of the grade.
func (g Grade) Description() string {
	switch g {
	case GradeAPlus:
		return "Outstanding"
	case GradeA:
		return "Excellent"
	case GradeB:
		return "Good"
	case GradeC:
		return "Fair"
	case GradeD:
		return "Poor"
	case GradeF:
		return "Critical"
	default:
		return "Unknown"
	}
}

// clampScore bounds a score to [0, 100] and rounds it to one decimal.
func clampScore(v float64) float64 {
	return coerce.Round(coerce.Clamp(v, 0, 100), 1)
}
