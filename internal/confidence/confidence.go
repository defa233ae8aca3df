// Package confidence computes the shared 0-100 trust score used by the SMS
// extractor and by downstream insight consumers.
package confidence

import "math"

// Level is the coarse trust bucket derived from the numeric score.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Factors breaks the score into its 0-100 inputs.
type Factors struct {
	DataCompleteness      int `json:"data_completeness"`
	HistoricalConsistency int `json:"historical_consistency"`
	PatternStrength       int `json:"pattern_strength"`
}

// Score is the derived confidence value. It is recomputed on demand from
// caller-supplied inputs and never persisted by this pipeline.
type Score struct {
	Level   Level   `json:"level"`
	Score   int     `json:"score"` // 0-100
	Factors Factors `json:"factors"`
}

// Compute derives a confidence score from the volume and regularity of the
// underlying data. categoryConsistency and patternStrength are clamped into
// [0, 1]. Pure: identical inputs always yield the identical score.
func Compute(transactionCount, daysOfData int, categoryConsistency, patternStrength float64) Score {
	if transactionCount < 0 {
		transactionCount = 0
	}
	if daysOfData < 0 {
		daysOfData = 0
	}
	categoryConsistency = clamp01(categoryConsistency)
	patternStrength = clamp01(patternStrength)

	dataCompleteness := math.Min(100,
		float64(transactionCount)/50*50+float64(daysOfData)/90*50)
	historicalConsistency := categoryConsistency * 100
	patternScore := patternStrength * 100

	score := int(math.Round(0.3*dataCompleteness + 0.3*historicalConsistency + 0.4*patternScore))

	return Score{
		Level: levelFor(score),
		Score: score,
		Factors: Factors{
			DataCompleteness:      int(math.Round(dataCompleteness)),
			HistoricalConsistency: int(math.Round(historicalConsistency)),
			PatternStrength:       int(math.Round(patternScore)),
		},
	}
}

func levelFor(score int) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
