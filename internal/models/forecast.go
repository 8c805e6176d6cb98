package models

import "time"

// NWSDataPoint is one irregular-interval sample from the NWS grid forecast.
// ValidTime is an ISO-8601 interval of the form "start/duration".
type NWSDataPoint struct {
	ValidTime string  `json:"validTime"`
	Value     float64 `json:"value"`
}

// NWSWaveData holds the NWS grid layers used for surf conditions. Heights are
// in meters, periods in seconds, directions in degrees, wind speed in km/h.
type NWSWaveData struct {
	WaveHeight            []NWSDataPoint `json:"wave_height"`
	WavePeriod            []NWSDataPoint `json:"wave_period"`
	WaveDirection         []NWSDataPoint `json:"wave_direction"`
	PrimarySwellHeight    []NWSDataPoint `json:"primary_swell_height"`
	PrimarySwellDirection []NWSDataPoint `json:"primary_swell_direction"`
	SecondarySwellHeight  []NWSDataPoint `json:"secondary_swell_height"`
	WindWaveHeight        []NWSDataPoint `json:"wind_wave_height"`
	WindSpeed             []NWSDataPoint `json:"wind_speed"`
	WindDirection         []NWSDataPoint `json:"wind_direction"`
}

// NWSForecast is the NWS forecast shape: wave layers plus the grid's IANA timezone
type NWSForecast struct {
	WaveData NWSWaveData `json:"wave_data"`
	Timezone string      `json:"timezone"`
}

// OpenMeteoCurrent is the "current" block of the Open-Meteo marine API.
// Nil fields were absent from the response.
type OpenMeteoCurrent struct {
	Time                  string   `json:"time"`
	WaveHeight            *float64 `json:"wave_height"`
	WavePeriod            *float64 `json:"wave_period"`
	WaveDirection         *float64 `json:"wave_direction"`
	SwellWaveHeight       *float64 `json:"swell_wave_height"`
	SwellWavePeriod       *float64 `json:"swell_wave_period"`
	SwellWaveDirection    *float64 `json:"swell_wave_direction"`
	WindWaveHeight        *float64 `json:"wind_wave_height"`
	WindWaveDirection     *float64 `json:"wind_wave_direction"`
	SeaSurfaceTemperature *float64 `json:"sea_surface_temperature"` // Celsius
}

// OpenMeteoForecast is the Open-Meteo marine response
type OpenMeteoForecast struct {
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Timezone  string           `json:"timezone"`
	Current   OpenMeteoCurrent `json:"current"`
}

type ForecastKind string

const (
	KindOpenMeteo ForecastKind = "open-meteo"
	KindNWS       ForecastKind = "nws"
)

// Forecast is a tagged union of the supported upstream forecast shapes.
// Exactly one payload matching Kind is set.
type Forecast struct {
	Kind      ForecastKind       `json:"kind"`
	OpenMeteo *OpenMeteoForecast `json:"open_meteo,omitempty"`
	NWS       *NWSForecast       `json:"nws,omitempty"`
}

// ParsedCurrentForecast is the freshest value of each NWS layer. Heights are
// in feet and every field is 0 when no covering data point exists.
type ParsedCurrentForecast struct {
	Timestamp            time.Time `json:"timestamp"`
	SwellWaveHeight      float64   `json:"swell_wave_height"`
	SwellWavePeriod      float64   `json:"swell_wave_period"`
	SwellWaveDirection   float64   `json:"swell_wave_direction"`
	WaveDirection        float64   `json:"wave_direction"`
	PrimarySwellHeight   float64   `json:"primary_swell_height"`
	SecondarySwellHeight float64   `json:"secondary_swell_height"`
	WindWaveHeight       float64   `json:"wind_wave_height"`
	WindSpeed            float64   `json:"wind_speed"` // km/h
	WindDirection        float64   `json:"wind_direction"`
}

// HourlyValue is one fixed hourly slot of a re-bucketed series
type HourlyValue struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}
