package models

import (
	"fmt"
	"time"
)

type FavoriteType string

const (
	FavoriteSpot FavoriteType = "spot"
	FavoriteBuoy FavoriteType = "buoy"
)

// Favorite is a user-saved spot or buoy. At most one entry exists per (ID, Type).
type Favorite struct {
	ID            string       `json:"id"`
	Type          FavoriteType `json:"type"`
	Name          string       `json:"name"`
	SubregionName *string      `json:"subregion_name,omitempty"`
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	Location      *string      `json:"location,omitempty"`
	AddedAt       string       `json:"addedAt"`
}

// Validate checks if a Favorite's fields are valid
func (f *Favorite) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("favorite ID is required")
	}

	switch f.Type {
	case FavoriteSpot, FavoriteBuoy:
	default:
		return fmt.Errorf("invalid favorite type: %s", f.Type)
	}

	if f.Name == "" {
		return fmt.Errorf("favorite name is required")
	}

	if f.Latitude != nil && (*f.Latitude < -90 || *f.Latitude > 90) {
		return fmt.Errorf("invalid latitude: %f", *f.Latitude)
	}

	if f.Longitude != nil && (*f.Longitude < -180 || *f.Longitude > 180) {
		return fmt.Errorf("invalid longitude: %f", *f.Longitude)
	}

	if f.AddedAt != "" {
		if _, err := time.Parse(time.RFC3339, f.AddedAt); err != nil {
			return fmt.Errorf("invalid addedAt: %s", f.AddedAt)
		}
	}

	return nil
}
