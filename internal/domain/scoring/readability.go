package scoring

import "github.com/felixgeelhaar/firesalamander/pkg/coerce"

// Offsets applied to the Flesch-Kincaid grade to approximate the other
// grade-level indices. They are approximations kept for output
// compatibility, not independently computed indices.
const (
	gunningFogOffset  = 2.5
	smogOffset        = 1.5
	colemanLiauOffset = 0.5
	ariOffset         = 1.0
)

// ReadingLevel labels a Flesch Reading Ease score.
type ReadingLevel string

const (
	ReadingVeryEasy        ReadingLevel = "very-easy"
	ReadingEasy            ReadingLevel = "easy"
	ReadingFairlyEasy      ReadingLevel = "fairly-easy"
	ReadingStandard        ReadingLevel = "standard"
	ReadingFairlyDifficult ReadingLevel = "fairly-difficult"
	ReadingDifficult       ReadingLevel = "difficult"
	ReadingVeryDifficult   ReadingLevel = "very-difficult"
)

// ReadabilityIndices are the readability figures derived from a single
// Flesch Reading Ease score.
type ReadabilityIndices struct {
	FleschReadingEase         float64      `json:"fleschReadingEase"`
	FleschKincaidGrade        float64      `json:"fleschKincaidGrade"`
	GunningFog                float64      `json:"gunningFog"`
	SMOG                      float64      `json:"smog"`
	ColemanLiau               float64      `json:"colemanLiau"`
	AutomatedReadabilityIndex float64      `json:"automatedReadabilityIndex"`
	Level                     ReadingLevel `json:"level"`
}

// Readability derives every index from a Flesch Reading Ease score.
func Readability(fleschReadingEase float64) ReadabilityIndices {
	fre := coerce.Clamp(fleschReadingEase, 0, 100)
	grade := FleschKincaidGrade(fre)

	return ReadabilityIndices{
		FleschReadingEase:         coerce.Round(fre, 1),
		FleschKincaidGrade:        coerce.Round(grade, 1),
		GunningFog:                coerce.Round(grade+gunningFogOffset, 1),
		SMOG:                      coerce.Round(grade+smogOffset, 1),
		ColemanLiau:               coerce.Round(grade+colemanLiauOffset, 1),
		AutomatedReadabilityIndex: coerce.Round(grade+ariOffset, 1),
		Level:                     LevelFor(fre),
	}
}

// FleschKincaidGrade converts Flesch Reading Ease to a US grade level.
func FleschKincaidGrade(fleschReadingEase float64) float64 {
	grade := (206.835 - fleschReadingEase) / 15.3
	if grade < 0 {
		return 0
	}
	return grade
}

// LevelFor bands a Flesch Reading Ease score.
func LevelFor(fre float64) ReadingLevel {
	switch {
	case fre >= 90:
		return ReadingVeryEasy
	case fre >= 80:
		return ReadingEasy
	case fre >= 70:
		return ReadingFairlyEasy
	case fre >= 60:
		return ReadingStandard
	case fre >= 50:
		return ReadingFairlyDifficult
	case fre >= 30:
		return ReadingDifficult
	default:
		return ReadingVeryDifficult
	}
}

// AllReadingLevels returns the reading levels from easiest to hardest.
func AllReadingLevels() []ReadingLevel {
	return []ReadingLevel{
		ReadingVeryEasy,
		ReadingEasy,
		ReadingFairlyEasy,
		ReadingStandard,
		ReadingFairlyDifficult,
		ReadingDifficult,
		ReadingVeryDifficult,
	}
}
