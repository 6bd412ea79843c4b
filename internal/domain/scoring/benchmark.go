package scoring

// BenchmarkPosition places an average quality against competitors.
type BenchmarkPosition string

const (
	PositionAbove BenchmarkPosition = "ABOVE"
	PositionEqual BenchmarkPosition = "EQUAL"
	PositionBelow BenchmarkPosition = "BELOW"
)

// Position bands an average quality score: 80 and above is ABOVE,
// 70 and above is EQUAL, anything lower is BELOW.
func Position(averageQuality float64) BenchmarkPosition {
	switch {
	case averageQuality >= 80:
		return PositionAbove
	case averageQuality >= 70:
		return PositionEqual
	default:
		return PositionBelow
	}
}
