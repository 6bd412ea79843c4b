package scoring

import "github.com/felixgeelhaar/firesalamander/pkg/coerce"

// Content quality weights. They sum to 1.
const (
	weightLength      = 0.25
	weightReadability = 0.25
	weightKeywords    = 0.20
	weightStructure   = 0.20
	weightIssues      = 0.10
)

// ThinContentWords is the word count under which content is thin.
const ThinContentWords = 300

// DefaultTargetWords is the target length used when none is supplied.
const DefaultTargetWords = 1000

// QualityInput carries the normalized signals of one content page.
type QualityInput struct {
	WordCount int
	// TargetWords is the length at which the length sub-score saturates.
	TargetWords    int
	Readability    float64
	KeywordDensity float64 // percent
	H1Count        int
	H2Count        int
	CriticalIssues int
	WarningIssues  int
	InfoIssues     int
}

// QualityBreakdown holds the five sub-scores and the weighted total.
type QualityBreakdown struct {
	Length      float64 `json:"length"`
	Readability float64 `json:"readability"`
	Keywords    float64 `json:"keywords"`
	Structure   float64 `json:"structure"`
	Issues      float64 `json:"issues"`
	Total       float64 `json:"total"`
}

// ContentQuality computes the weighted content quality score.
func ContentQuality(in QualityInput) QualityBreakdown {
	b := QualityBreakdown{
		Length:      LengthScore(in.WordCount, in.TargetWords),
		Readability: clampScore(in.Readability),
		Keywords:    KeywordScore(in.KeywordDensity),
		Structure:   StructureScore(in.H1Count, in.H2Count),
		Issues:      IssuesScore(in.CriticalIssues, in.WarningIssues, in.InfoIssues),
	}

	b.Total = clampScore(b.Length*weightLength +
		b.Readability*weightReadability +
		b.Keywords*weightKeywords +
		b.Structure*weightStructure +
		b.Issues*weightIssues)
	return b
}

// LengthScore rates a word count against a target length. Thin content
// (under 300 words) scales linearly up to 40, the range up to the target
// scales from 40 to 90, and anything between the target and three times
// the target scores 100. Longer content scores 85.
func LengthScore(words, target int) float64 {
	if words <= 0 {
		return 0
	}
	if target <= ThinContentWords {
		target = DefaultTargetWords
	}

	w := float64(words)
	switch {
	case words < ThinContentWords:
		return coerce.Round(w/ThinContentWords*40, 1)
	case words < target:
		return coerce.Round(40+(w-ThinContentWords)/float64(target-ThinContentWords)*50, 1)
	case words <= target*3:
		return 100
	default:
		return 85
	}
}

// KeywordScore rates keyword density (percent). The score peaks at 90 for
// densities in [1, 3] and degrades linearly on both sides.
func KeywordScore(density float64) float64 {
	switch {
	case density <= 0:
		return 0
	case density < 1:
		return coerce.Round(density*90, 1)
	case density <= 3:
		return 90
	default:
		return coerce.Round(coerce.Clamp(90-(density-3)*30, 0, 90), 1)
	}
}

// StructureScore rates the heading outline.
func StructureScore(h1, h2 int) float64 {
	switch {
	case h1 == 1 && h2 >= 3:
		return 85
	case h1 > 1:
		return 40
	default:
		return 50
	}
}

// IssuesScore starts at 100 and deducts 20, 10 and 5 points per critical,
// warning and info issue.
func IssuesScore(critical, warning, info int) float64 {
	return coerce.Clamp(100-float64(critical*20+warning*10+info*5), 0, 100)
}
