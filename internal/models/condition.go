package models

type ConditionLevel string

const (
	LevelExcellent ConditionLevel = "excellent"
	LevelGood      ConditionLevel = "good"
	LevelFair      ConditionLevel = "fair"
	LevelPoor      ConditionLevel = "poor"
)

// Color is a display color token
type Color string

const (
	ColorSuccess Color = "success"
	ColorWarning Color = "warning"
	ColorError   Color = "error"
	ColorInfo    Color = "info"
)

// ConditionScore classifies an overall 0-100 score. Description always embeds
// the score as "(<n>/100)".
type ConditionScore struct {
	Score       int            `json:"score"`
	Level       ConditionLevel `json:"level"`
	Color       Color          `json:"color"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
}

// ConditionResult is the normalized per-spot surf summary
type ConditionResult struct {
	Spot              string         `json:"spot"`
	SpotID            string         `json:"spotId"`
	Slug              string         `json:"slug,omitempty"`
	WaveHeight        string         `json:"waveHeight"`
	WaveHeightValue   float64        `json:"waveHeightValue"`
	WindSpeedValue    float64        `json:"windSpeedValue"`
	Conditions        string         `json:"conditions"`
	Direction         string         `json:"direction"`
	Distance          *float64       `json:"distance,omitempty"`
	Score             ConditionScore `json:"score"`
	SwellPeriod       *float64       `json:"swellPeriod,omitempty"`
	SwellHeight       *float64       `json:"swellHeight,omitempty"`
	WindWaveHeight    *float64       `json:"windWaveHeight,omitempty"`
	WindWaveDirection *float64       `json:"windWaveDirection,omitempty"`
	SwellDirection    *float64       `json:"swellDirection,omitempty"`
	WaterTemperature  *float64       `json:"waterTemperature,omitempty"`
}
