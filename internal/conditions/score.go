// Package conditions scores surf conditions on a 0-100 scale and normalizes
// upstream forecasts into models.ConditionResult records.
//
// Every scorer is a piecewise-linear curve returning a neutral 50 for zero,
// negative, or NaN input. Nothing here returns an error.
package conditions

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
)

const (
	neutralScore = 50.0

	periodWeight = 0.40
	windWeight   = 0.35
	heightWeight = 0.25

	cleanWindWeight   = 0.70
	cleanPeriodWeight = 0.30
)

var scorePattern = regexp.MustCompile(`\((\d+)/100\)`)

// ScoreInputs are the raw readings behind an overall score. WavePeriod and
// SwellPeriod are seconds, WindSpeed is mph, WaveHeight is feet.
type ScoreInputs struct {
	WavePeriod  float64
	SwellPeriod float64
	WindSpeed   float64
	WaveHeight  float64
}

// SwellPeriodScore rates a period in seconds. Longer periods score higher.
func SwellPeriodScore(period float64) float64 {
	if !valid(period) {
		return neutralScore
	}

	switch {
	case period < 10:
		return lerp(period, 0, 10, 0, 30)
	case period < 15:
		return lerp(period, 10, 15, 30, 60)
	case period < 20:
		return lerp(period, 15, 20, 60, 90)
	default:
		return math.Min(100, lerp(period, 20, 25, 90, 100))
	}
}

// WindQualityScore rates wind speed in mph. Lighter wind scores higher.
func WindQualityScore(mph float64) float64 {
	if !valid(mph) {
		return neutralScore
	}

	switch {
	case mph < 15:
		return lerp(mph, 0, 15, 100, 70)
	case mph < 20:
		return lerp(mph, 15, 20, 70, 40)
	default:
		return math.Max(0, lerp(mph, 20, 30, 40, 0))
	}
}

// WaveHeightScore rates a wave height in feet, peaking on the 4-6ft plateau
func WaveHeightScore(heightFt float64) float64 {
	if !valid(heightFt) {
		return neutralScore
	}

	switch {
	case heightFt < 2:
		return lerp(heightFt, 0, 2, 50, 75)
	case heightFt < 4:
		return lerp(heightFt, 2, 4, 75, 100)
	case heightFt <= 6:
		return 100
	default:
		return math.Max(60, 100-(heightFt-6)/2*10)
	}
}

// PeriodQuality averages the wave and swell period scores when both periods
// are present, otherwise uses whichever is.
func PeriodQuality(wavePeriod, swellPeriod float64) float64 {
	switch {
	case valid(wavePeriod) && valid(swellPeriod):
		return (SwellPeriodScore(wavePeriod) + SwellPeriodScore(swellPeriod)) / 2
	case valid(swellPeriod):
		return SwellPeriodScore(swellPeriod)
	default:
		return SwellPeriodScore(wavePeriod)
	}
}

// OverallScore weights period, wind, and height quality into a rounded 0-100 score
func OverallScore(in ScoreInputs) int {
	total := PeriodQuality(in.WavePeriod, in.SwellPeriod)*periodWeight +
		WindQualityScore(in.WindSpeed)*windWeight +
		WaveHeightScore(in.WaveHeight)*heightWeight

	return clamp(int(math.Round(total)))
}

// EnhancedConditionScore classifies the overall score of in
func EnhancedConditionScore(in ScoreInputs) models.ConditionScore {
	return Classify(OverallScore(in))
}

// Classify maps an overall score to its level, color, and label. The
// description always carries the score as "(n/100)".
func Classify(score int) models.ConditionScore {
	score = clamp(score)

	cs := models.ConditionScore{Score: score}
	switch {
	case score >= 80:
		cs.Level, cs.Color, cs.Label = models.LevelExcellent, models.ColorSuccess, "Excellent"
		cs.Description = "Excellent conditions, clean and well-organized swell"
	case score >= 60:
		cs.Level, cs.Color, cs.Label = models.LevelGood, models.ColorSuccess, "Good"
		cs.Description = "Good conditions, worth paddling out"
	case score >= 40:
		cs.Level, cs.Color, cs.Label = models.LevelFair, models.ColorWarning, "Fair"
		cs.Description = "Fair conditions, surfable but not ideal"
	default:
		cs.Level, cs.Color, cs.Label = models.LevelPoor, models.ColorError, "Poor"
		cs.Description = "Poor conditions"
	}
	cs.Description = fmt.Sprintf("%s (%d/100)", cs.Description, score)

	return cs
}

// ScoreFromDescription extracts n from a "(n/100)" description
func ScoreFromDescription(description string) (int, bool) {
	m := scorePattern.FindStringSubmatch(description)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CleanlinessScore rates surface cleanliness from wind quality and swell period.
// It ignores wave height so a small clean day can beat a big messy one.
func CleanlinessScore(windSpeed, swellPeriod float64) float64 {
	return WindQualityScore(windSpeed)*cleanWindWeight + SwellPeriodScore(swellPeriod)*cleanPeriodWeight
}

func lerp(x, x0, x1, y0, y1 float64) float64 {
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
