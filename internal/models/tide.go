package models

import (
	"fmt"
	"time"
)

type TideType string

const (
	TideTypeHigh TideType = "HIGH"
	TideTypeLow  TideType = "LOW"
)

type TideDirection string

const (
	TideRising  TideDirection = "rising"
	TideFalling TideDirection = "falling"
)

// TideExtreme represents a high or low tide
type TideExtreme struct {
	Type      TideType `json:"type"`
	Timestamp int64    `json:"timestamp"`
	LocalTime string   `json:"localTime"`
	Height    float64  `json:"height"`
}

// TidePrediction represents a tide prediction at a specific time
type TidePrediction struct {
	Timestamp int64   `json:"timestamp"`
	LocalTime string  `json:"localTime"`
	Height    float64 `json:"height"`
}

func (tp TidePrediction) GetTimestamp() int64 {
	return tp.Timestamp
}

// TideState describes the tide at one instant relative to the next extreme
type TideState struct {
	CurrentHeight float64       `json:"currentHeight"`
	Direction     TideDirection `json:"direction"`
	RateOfChange  float64       `json:"rateOfChange"` // ft/hr
	TimeToNext    int           `json:"timeToNext"`   // minutes
	NextType      TideType      `json:"nextType"`
	NextHeight    float64       `json:"nextHeight"`
	NextTime      string        `json:"nextTime"`
}

// ExtendedTideResponse represents the full tide response including predictions and extremes
type ExtendedTideResponse struct {
	ResponseType      string           `json:"responseType"`
	Timestamp         int64            `json:"timestamp"`
	LocalTime         string           `json:"localTime"`
	WaterLevel        *float64         `json:"waterLevel"`
	NearestStation    string           `json:"nearestStation"`
	Timezone          string           `json:"timezone"`
	Direction         *TideDirection   `json:"direction"`
	State             *TideState       `json:"state"`
	CalculationMethod string           `json:"calculationMethod"`
	Extremes          []TideExtreme    `json:"extremes"`
	Predictions       []TidePrediction `json:"predictions"`
}

// NoaaPrediction represents the raw NOAA API prediction response
type NoaaPrediction struct {
	Time   string  `json:"t"`              // Time of prediction
	Height string  `json:"v"`              // Predicted water level
	Type   *string `json:"type,omitempty"` // H for high, L for low
}

type NoaaResponse struct {
	Predictions []NoaaPrediction `json:"predictions"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Validate checks if a TidePrediction's fields are valid
func (tp *TidePrediction) Validate() error {
	if tp.Timestamp <= 0 {
		return fmt.Errorf("invalid timestamp: %d", tp.Timestamp)
	}
	return validateLocalTime(tp.LocalTime, tp.Timestamp)
}

// Validate checks if a TideExtreme's fields are valid
func (te *TideExtreme) Validate() error {
	if te.Timestamp <= 0 {
		return fmt.Errorf("invalid timestamp: %d", te.Timestamp)
	}

	switch te.Type {
	case TideTypeHigh, TideTypeLow:
	default:
		return fmt.Errorf("invalid tide type: %s", te.Type)
	}

	return validateLocalTime(te.LocalTime, te.Timestamp)
}

// Validate checks if an ExtendedTideResponse's fields are valid
func (r *ExtendedTideResponse) Validate() error {
	if r.Timestamp <= 0 {
		return fmt.Errorf("invalid timestamp: %d", r.Timestamp)
	}

	if r.NearestStation == "" {
		return fmt.Errorf("nearest station is required")
	}

	if r.Direction != nil {
		switch *r.Direction {
		case TideRising, TideFalling:
		default:
			return fmt.Errorf("invalid tide direction: %s", *r.Direction)
		}
	}

	for i, pred := range r.Predictions {
		if err := pred.Validate(); err != nil {
			return fmt.Errorf("invalid prediction at index %d: %w", i, err)
		}
	}

	for i, extreme := range r.Extremes {
		if err := extreme.Validate(); err != nil {
			return fmt.Errorf("invalid extreme at index %d: %w", i, err)
		}
	}

	return nil
}

func validateLocalTime(localTime string, timestamp int64) error {
	if localTime == "" {
		return nil
	}

	t, err := time.Parse("2006-01-02T15:04:05", localTime)
	if err != nil {
		return fmt.Errorf("invalid local time format: %s", localTime)
	}

	diff := t.UnixMilli() - timestamp
	if diff < 0 {
		diff = -diff
	}

	// must be within 24 hours of localtime
	if diff > 1000*60*60*24 {
		return fmt.Errorf("local time does not match timestamp")
	}

	return nil
}
