package conditions

import (
	"math"
	"regexp"
	"testing"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSwellPeriodScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		period float64
		want   float64
	}{
		{"zero is neutral", 0, 50},
		{"negative is neutral", -4, 50},
		{"NaN is neutral", math.NaN(), 50},
		{"short wind swell", 5, 15},
		{"lower band edge", 10, 30},
		{"mid band", 12.5, 45},
		{"ground swell", 15, 60},
		{"long ground swell", 17.5, 75},
		{"upper band edge", 20, 90},
		{"past twenty", 22.5, 95},
		{"capped", 30, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, SwellPeriodScore(tt.period), 0.001)
		})
	}
}

func TestWindQualityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mph  float64
		want float64
	}{
		{"zero is neutral", 0, 50},
		{"negative is neutral", -1, 50},
		{"light", 5, 90},
		{"moderate edge", 15, 70},
		{"breezy", 17.5, 55},
		{"strong edge", 20, 40},
		{"strong", 25, 20},
		{"gale floors at zero", 45, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, WindQualityScore(tt.mph), 0.001)
		})
	}
}

func TestWaveHeightScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		height float64
		want   float64
	}{
		{"flat is neutral", 0, 50},
		{"negative is neutral", -2, 50},
		{"ankle high", 1, 62.5},
		{"knee to waist", 2, 75},
		{"waist to chest", 3, 87.5},
		{"plateau start", 4, 100},
		{"plateau end", 6, 100},
		{"overhead", 8, 90},
		{"double overhead", 10, 80},
		{"floor reached", 14, 60},
		{"never below floor", 25, 60},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, WaveHeightScore(tt.height), 0.001)
		})
	}
}

func TestScoresStayInRange(t *testing.T) {
	t.Parallel()

	inputs := []float64{-100, -1, 0, 0.1, 1, 3, 7, 9.99, 10, 14, 19, 20, 24, 26, 50, 1000, math.NaN(), math.Inf(1)}
	for _, v := range inputs {
		for _, s := range []float64{SwellPeriodScore(v), WindQualityScore(v), WaveHeightScore(v)} {
			assert.GreaterOrEqual(t, s, 0.0, "input %v", v)
			assert.LessOrEqual(t, s, 100.0, "input %v", v)
		}

		overall := OverallScore(ScoreInputs{WavePeriod: v, SwellPeriod: v, WindSpeed: v, WaveHeight: v})
		assert.GreaterOrEqual(t, overall, 0)
		assert.LessOrEqual(t, overall, 100)
	}
}

func TestOverallScore(t *testing.T) {
	t.Parallel()

	t.Run("all missing is neutral", func(t *testing.T) {
		assert.Equal(t, 50, OverallScore(ScoreInputs{}))
	})

	t.Run("averages both periods", func(t *testing.T) {
		// periods 45 and 75 average to 60, wind 80, height 100
		got := OverallScore(ScoreInputs{WavePeriod: 12.5, SwellPeriod: 17.5, WindSpeed: 10, WaveHeight: 5})
		assert.Equal(t, 77, got)
	})

	t.Run("single period used alone", func(t *testing.T) {
		swellOnly := OverallScore(ScoreInputs{SwellPeriod: 17.5, WindSpeed: 10, WaveHeight: 5})
		waveOnly := OverallScore(ScoreInputs{WavePeriod: 17.5, WindSpeed: 10, WaveHeight: 5})
		// 75*0.4 + 80*0.35 + 100*0.25
		assert.Equal(t, 83, swellOnly)
		assert.Equal(t, swellOnly, waveOnly)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := ScoreInputs{WavePeriod: 9, SwellPeriod: 13, WindSpeed: 18, WaveHeight: 3.3}
		assert.Equal(t, OverallScore(in), OverallScore(in))
	})
}

func TestEnhancedConditionScore(t *testing.T) {
	t.Parallel()

	descPattern := regexp.MustCompile(`\(\d+/100\)`)

	tests := []struct {
		name  string
		in    ScoreInputs
		level models.ConditionLevel
		color models.Color
		score int
	}{
		{
			name:  "excellent",
			in:    ScoreInputs{SwellPeriod: 20, WindSpeed: 3, WaveHeight: 5},
			level: models.LevelExcellent,
			color: models.ColorSuccess,
			score: 94,
		},
		{
			name:  "good",
			in:    ScoreInputs{WavePeriod: 12.5, SwellPeriod: 17.5, WindSpeed: 10, WaveHeight: 5},
			level: models.LevelGood,
			color: models.ColorSuccess,
			score: 77,
		},
		{
			name:  "fair when nothing is known",
			in:    ScoreInputs{},
			level: models.LevelFair,
			color: models.ColorWarning,
			score: 50,
		},
		{
			// 15*0.4 + 0*0.35 + 62.5*0.25
			name:  "poor",
			in:    ScoreInputs{SwellPeriod: 5, WindSpeed: 35, WaveHeight: 1},
			level: models.LevelPoor,
			color: models.ColorError,
			score: 22,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := EnhancedConditionScore(tt.in)
			assert.Equal(t, tt.level, cs.Level)
			assert.Equal(t, tt.color, cs.Color)
			assert.Equal(t, tt.score, cs.Score)
			assert.Regexp(t, descPattern, cs.Description)

			parsed, ok := ScoreFromDescription(cs.Description)
			assert.True(t, ok)
			assert.Equal(t, cs.Score, parsed)
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.LevelExcellent, Classify(80).Level)
	assert.Equal(t, models.LevelGood, Classify(79).Level)
	assert.Equal(t, models.LevelGood, Classify(60).Level)
	assert.Equal(t, models.LevelFair, Classify(59).Level)
	assert.Equal(t, models.LevelFair, Classify(40).Level)
	assert.Equal(t, models.LevelPoor, Classify(39).Level)
	assert.Equal(t, 100, Classify(140).Score)
	assert.Contains(t, Classify(-5).Description, "(0/100)")
}

func TestScoreFromDescription(t *testing.T) {
	t.Parallel()

	n, ok := ScoreFromDescription("Good conditions (64/100)")
	assert.True(t, ok)
	assert.Equal(t, 64, n)

	_, ok = ScoreFromDescription("no score here")
	assert.False(t, ok)
}

func TestCleanlinessScore(t *testing.T) {
	t.Parallel()

	// wind 90, period 60
	assert.InDelta(t, 81.0, CleanlinessScore(5, 15), 0.001)
	// wind 0, period 15
	assert.InDelta(t, 4.5, CleanlinessScore(40, 5), 0.001)
	assert.InDelta(t, 50.0, CleanlinessScore(0, 0), 0.001)
}

func BenchmarkEnhancedConditionScore(b *testing.B) {
	in := ScoreInputs{WavePeriod: 11, SwellPeriod: 14, WindSpeed: 9, WaveHeight: 4.2}
	for i := 0; i < b.N; i++ {
		_ = EnhancedConditionScore(in)
	}
}
