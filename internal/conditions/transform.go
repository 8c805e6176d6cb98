package conditions

import (
	"fmt"
	"math"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/swell"
	"github.com/crubio/surfe-diem/backend-go/internal/timeseries"
	"github.com/crubio/surfe-diem/backend-go/internal/units"
)

// Transform normalizes a forecast for spot as of the current time
func Transform(f models.Forecast, spot models.Spot) (models.ConditionResult, error) {
	return TransformAt(f, spot, time.Now())
}

// TransformAt dispatches on the forecast kind. It fails only when the kind is
// unknown or its payload is missing.
func TransformAt(f models.Forecast, spot models.Spot, now time.Time) (models.ConditionResult, error) {
	switch f.Kind {
	case models.KindOpenMeteo:
		if f.OpenMeteo == nil {
			return models.ConditionResult{}, fmt.Errorf("forecast kind %s has no payload", f.Kind)
		}
		return TransformOpenMeteo(*f.OpenMeteo, spot), nil
	case models.KindNWS:
		if f.NWS == nil {
			return models.ConditionResult{}, fmt.Errorf("forecast kind %s has no payload", f.Kind)
		}
		current := timeseries.ParseCurrentForecastAt(f.NWS.WaveData, now.In(timeseries.Location(f.NWS.Timezone)))
		return TransformNWS(current, spot), nil
	default:
		return models.ConditionResult{}, fmt.Errorf("unknown forecast kind: %q", f.Kind)
	}
}

// TransformOpenMeteo builds a result from the Open-Meteo "current" block.
// The marine API has no wind speed field, so the wind-wave height in feet
// stands in for it in both the chop label and the wind quality score.
func TransformOpenMeteo(f models.OpenMeteoForecast, spot models.Spot) models.ConditionResult {
	c := f.Current

	height := units.MetersToFeet(deref(c.SwellWaveHeight))
	windWave := units.MetersToFeet(deref(c.WindWaveHeight))
	swellPeriod := deref(c.SwellWavePeriod)

	result := newResult(spot, height)
	result.WindSpeedValue = windWave
	result.Conditions = swell.ChopLabel(windWave)
	if c.WindWaveHeight == nil {
		result.Conditions = swell.Unknown
	}
	result.Direction = swell.Direction(c.SwellWaveDirection)
	result.Score = EnhancedConditionScore(ScoreInputs{
		WavePeriod:  deref(c.WavePeriod),
		SwellPeriod: swellPeriod,
		WindSpeed:   windWave,
		WaveHeight:  height,
	})

	result.SwellHeight = &height
	if c.SwellWavePeriod != nil {
		result.SwellPeriod = &swellPeriod
	}
	if c.WindWaveHeight != nil {
		result.WindWaveHeight = &windWave
	}
	result.WindWaveDirection = c.WindWaveDirection
	result.SwellDirection = c.SwellWaveDirection
	result.WaterTemperature = c.SeaSurfaceTemperature

	return result
}

// TransformNWS builds a result from a parsed NWS snapshot. Wind speed is
// converted from km/h to whole mph before scoring.
func TransformNWS(p models.ParsedCurrentForecast, spot models.Spot) models.ConditionResult {
	windMph := math.Floor(units.KmhToMph(p.WindSpeed))

	direction := p.SwellWaveDirection
	if p.WaveDirection > 0 {
		direction = p.WaveDirection
	}

	result := newResult(spot, p.SwellWaveHeight)
	result.WindSpeedValue = windMph
	result.Conditions = swell.ChopLabel(p.WindWaveHeight)
	// both layers zero-filled means neither had a covering point
	if direction > 0 {
		result.Direction = swell.CardinalDirection(direction)
	} else {
		result.Direction = swell.Direction(nil)
	}
	result.Score = EnhancedConditionScore(ScoreInputs{
		SwellPeriod: p.SwellWavePeriod,
		WindSpeed:   windMph,
		WaveHeight:  p.SwellWaveHeight,
	})

	period, height, windWave, swellDir := p.SwellWavePeriod, p.PrimarySwellHeight, p.WindWaveHeight, p.SwellWaveDirection
	result.SwellPeriod = &period
	result.SwellHeight = &height
	result.WindWaveHeight = &windWave
	result.SwellDirection = &swellDir

	return result
}

// WaveHeightRange formats a height as the "low-highft" band shown to users
func WaveHeightRange(heightFt float64) string {
	return fmt.Sprintf("%.1f-%.1fft", heightFt*0.8, heightFt*1.2)
}

func newResult(spot models.Spot, height float64) models.ConditionResult {
	return models.ConditionResult{
		Spot:            spot.Name,
		SpotID:          spot.ID,
		Slug:            spot.Slug,
		Distance:        spot.Distance,
		WaveHeight:      WaveHeightRange(height),
		WaveHeightValue: height,
	}
}

func deref(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}
