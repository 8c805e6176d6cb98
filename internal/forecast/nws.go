package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// NWS grid assignments change only with office boundary updates
const gridpointTTL = 30 * 24 * time.Hour

type gridpoint struct {
	Office   string
	X, Y     int
	Timezone string
}

type pointsResponse struct {
	Properties struct {
		GridID   string `json:"gridId"`
		GridX    int    `json:"gridX"`
		GridY    int    `json:"gridY"`
		TimeZone string `json:"timeZone"`
	} `json:"properties"`
}

type nwsLayer struct {
	UOM    string `json:"uom"`
	Values []struct {
		ValidTime string   `json:"validTime"`
		Value     *float64 `json:"value"`
	} `json:"values"`
}

type gridpointResponse struct {
	Properties struct {
		WaveHeight            nwsLayer `json:"waveHeight"`
		WavePeriod            nwsLayer `json:"wavePeriod"`
		WaveDirection         nwsLayer `json:"waveDirection"`
		PrimarySwellHeight    nwsLayer `json:"primarySwellHeight"`
		PrimarySwellDirection nwsLayer `json:"primarySwellDirection"`
		SecondarySwellHeight  nwsLayer `json:"secondarySwellHeight"`
		WindWaveHeight        nwsLayer `json:"windWaveHeight"`
		WindSpeed             nwsLayer `json:"windSpeed"`
		WindDirection         nwsLayer `json:"windDirection"`
	} `json:"properties"`
}

// NWSClient resolves a spot to its NWS forecast grid and reads the marine layers
type NWSClient struct {
	httpClient *client.Client
	gridpoints *cache.TTLCache[string, gridpoint]
}

func NewNWSClient(httpClient *client.Client, gridpointCacheSize int) (*NWSClient, error) {
	if gridpointCacheSize <= 0 {
		gridpointCacheSize = 1000
	}
	gridpoints, err := cache.NewTTLCache[string, gridpoint](gridpointCacheSize, gridpointTTL)
	if err != nil {
		return nil, fmt.Errorf("creating gridpoint cache: %w", err)
	}

	return &NWSClient{
		httpClient: httpClient,
		gridpoints: gridpoints,
	}, nil
}

func (c *NWSClient) FetchForecast(ctx context.Context, spot models.Spot) (models.Forecast, error) {
	grid, err := c.resolveGridpoint(ctx, spot.Latitude, spot.Longitude)
	if err != nil {
		return models.Forecast{}, err
	}

	var resp gridpointResponse
	path := fmt.Sprintf("/gridpoints/%s/%d,%d", grid.Office, grid.X, grid.Y)
	if err := c.httpClient.GetJSON(ctx, path, &resp); err != nil {
		return models.Forecast{}, upstreamError(string(models.KindNWS), err)
	}

	p := resp.Properties
	forecast := &models.NWSForecast{
		Timezone: grid.Timezone,
		WaveData: models.NWSWaveData{
			WaveHeight:            p.WaveHeight.points(),
			WavePeriod:            p.WavePeriod.points(),
			WaveDirection:         p.WaveDirection.points(),
			PrimarySwellHeight:    p.PrimarySwellHeight.points(),
			PrimarySwellDirection: p.PrimarySwellDirection.points(),
			SecondarySwellHeight:  p.SecondarySwellHeight.points(),
			WindWaveHeight:        p.WindWaveHeight.points(),
			WindSpeed:             p.WindSpeed.points(),
			WindDirection:         p.WindDirection.points(),
		},
	}

	log.Trace().
		Str("spot_id", spot.ID).
		Str("grid", path).
		Int("wave_height_points", len(forecast.WaveData.WaveHeight)).
		Msg("Fetched NWS gridpoint forecast")

	return models.Forecast{Kind: models.KindNWS, NWS: forecast}, nil
}

func (c *NWSClient) resolveGridpoint(ctx context.Context, lat, lon float64) (gridpoint, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if grid, ok := c.gridpoints.Get(key); ok {
		return grid, nil
	}

	var resp pointsResponse
	if err := c.httpClient.GetJSON(ctx, "/points/"+key, &resp); err != nil {
		return gridpoint{}, upstreamError(string(models.KindNWS), fmt.Errorf("resolving gridpoint: %w", err))
	}
	if resp.Properties.GridID == "" {
		return gridpoint{}, &UpstreamError{Provider: string(models.KindNWS), Err: fmt.Errorf("no forecast grid for %s", key)}
	}

	grid := gridpoint{
		Office:   resp.Properties.GridID,
		X:        resp.Properties.GridX,
		Y:        resp.Properties.GridY,
		Timezone: resp.Properties.TimeZone,
	}
	c.gridpoints.Add(key, grid)
	return grid, nil
}

// points drops null values and normalizes wind speed to km/h
func (l nwsLayer) points() []models.NWSDataPoint {
	scale := 1.0
	if l.UOM == "wmoUnit:m_s-1" {
		scale = 3.6
	}

	out := make([]models.NWSDataPoint, 0, len(l.Values))
	for _, v := range l.Values {
		if v.Value == nil || math.IsNaN(*v.Value) {
			continue
		}
		out = append(out, models.NWSDataPoint{ValidTime: v.ValidTime, Value: *v.Value * scale})
	}
	return out
}
