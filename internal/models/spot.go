package models

import (
	"context"
	"fmt"
)

// Spot is a surf spot as listed by the locations API
type Spot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug,omitempty"`
	SubregionName *string  `json:"subregion_name,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Distance      *float64 `json:"distance,omitempty"` // miles from the query point
	TideStationID *string  `json:"tide_station_id,omitempty"`
}

// SpotFinder looks up spots by id or proximity
type SpotFinder interface {
	FindSpot(ctx context.Context, spotID string) (*Spot, error)
	FindNearestSpots(ctx context.Context, lat, lon float64, limit int) ([]Spot, error)
}

// Validate checks if a Spot's fields are valid
func (s *Spot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("spot ID is required")
	}

	if s.Name == "" {
		return fmt.Errorf("spot name is required")
	}

	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", s.Latitude)
	}

	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("invalid longitude: %f", s.Longitude)
	}

	if s.Distance != nil && *s.Distance < 0 {
		return fmt.Errorf("invalid distance: %f", *s.Distance)
	}

	return nil
}
