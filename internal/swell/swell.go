// Package swell maps raw swell, wave, and water readings to display labels
// and color tokens. Zero, negative, and NaN inputs map to a neutral value.
package swell

import (
	"math"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
)

const Unknown = "Unknown"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// PeriodLabel describes a swell by its period in seconds
func PeriodLabel(period float64) string {
	switch {
	case !positive(period):
		return Unknown
	case period < 8:
		return "Wind swell"
	case period < 12:
		return "Mixed swell"
	case period < 16:
		return "Ground swell"
	default:
		return "Long period ground swell"
	}
}

// WaveHeightColor picks a color token for a wave height in feet
func WaveHeightColor(heightFt float64) models.Color {
	switch {
	case !positive(heightFt):
		return models.ColorInfo
	case heightFt >= 6:
		return models.ColorError
	case heightFt >= 3:
		return models.ColorWarning
	case heightFt >= 1:
		return models.ColorSuccess
	default:
		return models.ColorInfo
	}
}

// ChopLabel describes surface texture from wind-wave height in feet
func ChopLabel(windWaveFt float64) string {
	switch {
	case math.IsNaN(windWaveFt) || windWaveFt < 0:
		return Unknown
	case windWaveFt < 0.5:
		return "Glassy"
	case windWaveFt < 1.0:
		return "Clean"
	case windWaveFt < 2.0:
		return "Slight chop"
	default:
		return "Choppy"
	}
}

// WaterTempLabel describes water temperature in Celsius
func WaterTempLabel(celsius float64) string {
	switch {
	case !positive(celsius):
		return Unknown
	case celsius < 10:
		return "Very Cold"
	case celsius < 15:
		return "Cold"
	case celsius < 20:
		return "Cool"
	case celsius < 25:
		return "Comfortable"
	case celsius < 30:
		return "Warm"
	default:
		return "Hot"
	}
}

// WaterTempColor picks a color token for water temperature in Celsius
func WaterTempColor(celsius float64) models.Color {
	switch {
	case !positive(celsius):
		return models.ColorInfo
	case celsius < 10:
		return models.ColorError
	case celsius < 15:
		return models.ColorWarning
	case celsius < 20:
		return models.ColorInfo
	case celsius < 25:
		return models.ColorSuccess
	case celsius < 30:
		return models.ColorWarning
	default:
		return models.ColorError
	}
}

// WaterTempGear suggests exposure protection for water temperature in Celsius
func WaterTempGear(celsius float64) string {
	switch {
	case !positive(celsius):
		return Unknown
	case celsius < 10:
		return "Wetsuit Required"
	case celsius < 15:
		return "Full Wetsuit"
	case celsius < 20:
		return "Spring Suit"
	case celsius < 25:
		return "Rash Guard"
	default:
		return "Board Shorts"
	}
}

// CardinalDirection converts degrees to a 16-point compass label. Degrees
// wrap modulo 360 in both directions; NaN and infinities yield "N/A".
func CardinalDirection(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return "N/A"
	}
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return compassPoints[int(math.Round(d/22.5))%16]
}

// Direction is CardinalDirection for an optional reading
func Direction(degrees *float64) string {
	if degrees == nil {
		return "N/A"
	}
	return CardinalDirection(*degrees)
}

func positive(v float64) bool {
	return !math.IsNaN(v) && v > 0
}
