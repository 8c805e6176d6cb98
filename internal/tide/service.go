// Package tide fetches NOAA tide predictions and derives the current water
// level and tide state from them.
package tide

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/timeseries"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const (
	MaxRange = 5 * 24 * time.Hour

	localTimeLayout = "2006-01-02T15:04:05"
	noaaTimeLayout  = "2006-01-02 15:04"
	noaaDateLayout  = "20060102"
)

// ErrNoTideStation is returned for a spot without a linked tide station
var ErrNoTideStation = errors.New("spot has no tide station")

// PredictionRecord is one NOAA fetch covering a station and date range
type PredictionRecord struct {
	StationID   string
	Predictions []models.TidePrediction
	Extremes    []models.TideExtreme
}

type Service struct {
	httpClient *client.Client
	spots      models.SpotFinder
	cache      *cache.TTLCache[string, *PredictionRecord]
	now        func() time.Time
}

// NewService builds a tide service. spots and predictionCache may be nil.
func NewService(httpClient *client.Client, spots models.SpotFinder, predictionCache *cache.TTLCache[string, *PredictionRecord]) *Service {
	return &Service{
		httpClient: httpClient,
		spots:      spots,
		cache:      predictionCache,
		now:        time.Now,
	}
}

// GetTidesForSpot resolves the spot's linked station and returns its tides
func (s *Service) GetTidesForSpot(ctx context.Context, spotID string, startTimeStr, endTimeStr *string, timezone string) (*models.ExtendedTideResponse, error) {
	if s.spots == nil {
		return nil, fmt.Errorf("no spot finder configured")
	}

	spot, err := s.spots.FindSpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("finding spot: %w", err)
	}
	if spot.TideStationID == nil || *spot.TideStationID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoTideStation, spotID)
	}

	return s.GetTidesForStation(ctx, *spot.TideStationID, startTimeStr, endTimeStr, timezone)
}

// GetTidesForStation returns the predictions and extremes between start and
// end (local "2006-01-02T15:04:05" in timezone; default today) along with the
// interpolated current level and tide state.
func (s *Service) GetTidesForStation(ctx context.Context, stationID string, startTimeStr, endTimeStr *string, timezone string) (*models.ExtendedTideResponse, error) {
	location := timeseries.Location(timezone)
	now := s.now().In(location)

	startTime, endTime, err := parseRange(now, startTimeStr, endTimeStr, location)
	if err != nil {
		return nil, err
	}

	// pad a day either side so the extremes bracket the whole window
	queryStart := startTime.UTC().AddDate(0, 0, -1)
	queryEnd := endTime.UTC().AddDate(0, 0, 1)

	record, err := s.getPredictions(ctx, stationID, queryStart, queryEnd)
	if err != nil {
		return nil, fmt.Errorf("getting predictions: %w", err)
	}

	nowMs := now.UnixMilli()
	startMs := startTime.UnixMilli()
	endMs := endTime.UnixMilli()

	resp := &models.ExtendedTideResponse{
		ResponseType:      "tide",
		Timestamp:         nowMs,
		LocalTime:         now.Format(localTimeLayout),
		NearestStation:    stationID,
		Timezone:          location.String(),
		CalculationMethod: "NOAA API",
		Predictions:       withLocalTime(filterPredictions(record.Predictions, startMs, endMs), location),
		Extremes:          withLocalTimeExtremes(filterExtremes(record.Extremes, startMs, endMs), location),
	}

	if levels := InterpolateTide(record.Predictions, []int64{nowMs}); len(levels) == 1 {
		resp.WaterLevel = &levels[0]
	}

	if state, ok := CurrentState(withLocalTimeExtremes(record.Extremes, location), nowMs); ok {
		resp.State = &state
		resp.Direction = &state.Direction
	}

	log.Debug().
		Str("station_id", stationID).
		Int("predictions", len(resp.Predictions)).
		Int("extremes", len(resp.Extremes)).
		Msg("Built tide response")

	return resp, nil
}

func parseRange(now time.Time, startTimeStr, endTimeStr *string, location *time.Location) (time.Time, time.Time, error) {
	var startTime time.Time
	if startTimeStr != nil && *startTimeStr != "" {
		var err error
		startTime, err = time.ParseInLocation(localTimeLayout, *startTimeStr, location)
		if err != nil {
			return time.Time{}, time.Time{}, NewInvalidRangeError(fmt.Sprintf("invalid start time: %s", *startTimeStr))
		}
	} else {
		startTime = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
	}

	var endTime time.Time
	if endTimeStr != nil && *endTimeStr != "" {
		var err error
		endTime, err = time.ParseInLocation(localTimeLayout, *endTimeStr, location)
		if err != nil {
			return time.Time{}, time.Time{}, NewInvalidRangeError(fmt.Sprintf("invalid end time: %s", *endTimeStr))
		}
	} else {
		endTime = startTime.AddDate(0, 0, 1)
	}

	if !endTime.After(startTime) {
		return time.Time{}, time.Time{}, NewInvalidRangeError("end time must be after start time")
	}
	if endTime.Sub(startTime) > MaxRange {
		return time.Time{}, time.Time{}, NewInvalidRangeError("date range cannot exceed 5 days")
	}

	return startTime, endTime, nil
}

func (s *Service) getPredictions(ctx context.Context, stationID string, start, end time.Time) (*PredictionRecord, error) {
	startStr := start.Format(noaaDateLayout)
	endStr := end.Format(noaaDateLayout)
	key := fmt.Sprintf("%s:%s:%s", stationID, startStr, endStr)

	if s.cache != nil {
		if record, ok := s.cache.Get(key); ok {
			log.Trace().Str("station_id", stationID).Msg("Tide prediction cache hit")
			return record, nil
		}
	}

	predictions, err := s.fetchNoaa(ctx, stationID, startStr, endStr, "6")
	if err != nil {
		return nil, err
	}
	extremes, err := s.fetchNoaa(ctx, stationID, startStr, endStr, "hilo")
	if err != nil {
		return nil, err
	}

	record := &PredictionRecord{StationID: stationID}
	if record.Predictions, err = ParsePredictions(predictions); err != nil {
		return nil, err
	}
	if record.Extremes, err = ParseExtremes(extremes); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Add(key, record)
	}
	return record, nil
}

func (s *Service) fetchNoaa(ctx context.Context, stationID, beginDate, endDate, interval string) ([]models.NoaaPrediction, error) {
	q := url.Values{}
	q.Set("station", stationID)
	q.Set("begin_date", beginDate)
	q.Set("end_date", endDate)
	q.Set("product", "predictions")
	q.Set("datum", "MLLW")
	q.Set("units", "english")
	q.Set("time_zone", "gmt")
	q.Set("format", "json")
	q.Set("interval", interval)

	var noaaResp models.NoaaResponse
	if err := s.httpClient.GetJSON(ctx, "/api/prod/datagetter?"+q.Encode(), &noaaResp); err != nil {
		return nil, NewNoaaAPIError("fetching "+interval+" predictions", err)
	}
	if noaaResp.Error != nil {
		return nil, NewNoaaAPIError(noaaResp.Error.Message, nil)
	}

	log.Debug().
		Str("station_id", stationID).
		Str("begin_date", beginDate).
		Str("end_date", endDate).
		Str("interval", interval).
		Msg("Fetched predictions from NOAA")

	return noaaResp.Predictions, nil
}

// ParsePredictions converts raw GMT NOAA predictions, keeping their order
func ParsePredictions(raw []models.NoaaPrediction) ([]models.TidePrediction, error) {
	predictions := make([]models.TidePrediction, len(raw))
	for i, p := range raw {
		timestamp, height, err := parseNoaaPoint(p)
		if err != nil {
			return nil, err
		}
		predictions[i] = models.TidePrediction{Timestamp: timestamp, Height: height}
	}
	return predictions, nil
}

// ParseExtremes converts raw GMT NOAA hi/lo predictions
func ParseExtremes(raw []models.NoaaPrediction) ([]models.TideExtreme, error) {
	extremes := make([]models.TideExtreme, len(raw))
	for i, p := range raw {
		timestamp, height, err := parseNoaaPoint(p)
		if err != nil {
			return nil, err
		}

		tideType := models.TideTypeLow
		if p.Type != nil && *p.Type == "H" {
			tideType = models.TideTypeHigh
		}

		extremes[i] = models.TideExtreme{Type: tideType, Timestamp: timestamp, Height: height}
	}
	return extremes, nil
}

func parseNoaaPoint(p models.NoaaPrediction) (int64, float64, error) {
	t, err := time.ParseInLocation(noaaTimeLayout, p.Time, time.UTC)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing time %s: %w", p.Time, err)
	}

	height, err := strconv.ParseFloat(p.Height, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing height %s: %w", p.Height, err)
	}

	return t.UnixMilli(), height, nil
}

func filterPredictions(predictions []models.TidePrediction, start, end int64) []models.TidePrediction {
	filtered := make([]models.TidePrediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Timestamp >= start && p.Timestamp <= end {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func filterExtremes(extremes []models.TideExtreme, start, end int64) []models.TideExtreme {
	filtered := make([]models.TideExtreme, 0, len(extremes))
	for _, e := range extremes {
		if e.Timestamp >= start && e.Timestamp <= end {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func withLocalTime(predictions []models.TidePrediction, location *time.Location) []models.TidePrediction {
	for i := range predictions {
		predictions[i].LocalTime = formatLocalTime(predictions[i].Timestamp, location)
	}
	return predictions
}

// withLocalTimeExtremes returns a copy so cached records are never mutated
func withLocalTimeExtremes(extremes []models.TideExtreme, location *time.Location) []models.TideExtreme {
	out := make([]models.TideExtreme, len(extremes))
	for i, e := range extremes {
		e.LocalTime = formatLocalTime(e.Timestamp, location)
		out[i] = e
	}
	return out
}

func formatLocalTime(timestamp int64, location *time.Location) string {
	return time.UnixMilli(timestamp).In(location).Format(localTimeLayout)
}
