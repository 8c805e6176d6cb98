package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/conditions"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	fetchFunc func(ctx context.Context, spot models.Spot) (models.Forecast, error)
}

func (m *mockFetcher) FetchForecast(ctx context.Context, spot models.Spot) (models.Forecast, error) {
	return m.fetchFunc(ctx, spot)
}

func ptr(v float64) *float64 {
	return &v
}

func openMeteo(swellM, period, windWaveM float64) models.Forecast {
	return models.Forecast{
		Kind: models.KindOpenMeteo,
		OpenMeteo: &models.OpenMeteoForecast{Current: models.OpenMeteoCurrent{
			SwellWaveHeight:    ptr(swellM),
			SwellWavePeriod:    ptr(period),
			SwellWaveDirection: ptr(280),
			WindWaveHeight:     ptr(windWaveM),
		}},
	}
}

func spots(ids ...string) []models.Spot {
	out := make([]models.Spot, len(ids))
	for i, id := range ids {
		out[i] = models.Spot{ID: id, Name: "Spot " + id}
	}
	return out
}

func scored(id string, score int) models.ConditionResult {
	return models.ConditionResult{SpotID: id, Score: conditions.Classify(score)}
}

func TestRecommend(t *testing.T) {
	forecasts := map[string]models.Forecast{
		"small": openMeteo(0.3, 6, 0.9),
		"big":   openMeteo(1.5, 16, 0.1),
		"mid":   openMeteo(0.9, 11, 0.4),
	}

	fetcher := &mockFetcher{
		fetchFunc: func(_ context.Context, spot models.Spot) (models.Forecast, error) {
			if f, ok := forecasts[spot.ID]; ok {
				return f, nil
			}
			return models.Forecast{}, errors.New("upstream timeout")
		},
	}

	rec, err := NewSelector(fetcher, 2).Recommend(context.Background(), spots("small", "broken", "big", "mid"))
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Len(t, rec.Results, 3)
	assert.Equal(t, "small", rec.Results[0].SpotID)
	assert.Equal(t, "big", rec.Results[1].SpotID)
	assert.Equal(t, "mid", rec.Results[2].SpotID)

	require.NotNil(t, rec.Best)
	assert.Equal(t, "big", rec.Best.SpotID)
	require.NotNil(t, rec.Cleanest)
	assert.Equal(t, "big", rec.Cleanest.SpotID)
	require.NotNil(t, rec.Highest)
	assert.Equal(t, "big", rec.Highest.SpotID)
}

func TestRecommendEmpty(t *testing.T) {
	var calls atomic.Int32
	fetcher := &mockFetcher{
		fetchFunc: func(context.Context, models.Spot) (models.Forecast, error) {
			calls.Add(1)
			return models.Forecast{}, nil
		},
	}

	rec, err := NewSelector(fetcher, 0).Recommend(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Zero(t, calls.Load())
}

func TestRecommendAllFailed(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(context.Context, models.Spot) (models.Forecast, error) {
			return models.Forecast{}, errors.New("down")
		},
	}

	rec, err := NewSelector(fetcher, 3).Recommend(context.Background(), spots("a", "b"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Empty(t, rec.Results)
	assert.Nil(t, rec.Best)
	assert.Nil(t, rec.Cleanest)
	assert.Nil(t, rec.Highest)
}

func TestRecommendBadPayloadIsDropped(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(_ context.Context, spot models.Spot) (models.Forecast, error) {
			if spot.ID == "a" {
				return models.Forecast{Kind: models.KindNWS}, nil
			}
			return openMeteo(1, 12, 0.2), nil
		},
	}

	rec, err := NewSelector(fetcher, 3).Recommend(context.Background(), spots("a", "b"))
	require.NoError(t, err)
	require.Len(t, rec.Results, 1)
	assert.Equal(t, "b", rec.Results[0].SpotID)
}

func TestFetchConditionsLimits(t *testing.T) {
	var (
		mu       sync.Mutex
		seen     = map[string]bool{}
		inFlight atomic.Int32
		peak     atomic.Int32
	)

	fetcher := &mockFetcher{
		fetchFunc: func(_ context.Context, spot models.Spot) (models.Forecast, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			seen[spot.ID] = true
			mu.Unlock()
			return openMeteo(1, 12, 0.2), nil
		},
	}

	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
	results := NewSelector(fetcher, 3).FetchConditions(context.Background(), spots(ids...))

	assert.Len(t, results, MaxBatchSpots)
	assert.Len(t, seen, MaxBatchSpots)
	assert.False(t, seen["11"])
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestBestConditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []models.ConditionResult
		wantID  string
	}{
		{
			name:    "highest score wins",
			results: []models.ConditionResult{scored("a", 45), scored("b", 82), scored("c", 60)},
			wantID:  "b",
		},
		{
			name:    "first of a tie wins",
			results: []models.ConditionResult{scored("a", 70), scored("b", 90), scored("c", 90)},
			wantID:  "b",
		},
		{
			name:    "single result",
			results: []models.ConditionResult{scored("a", 10)},
			wantID:  "a",
		},
		{
			name: "score read from description when missing",
			results: []models.ConditionResult{
				scored("a", 50),
				{SpotID: "b", Score: models.ConditionScore{Description: "Good conditions (64/100)"}},
			},
			wantID: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BestConditions(tt.results)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.SpotID)
		})
	}

	assert.Nil(t, BestConditions(nil))
}

func TestCleanestConditions(t *testing.T) {
	t.Parallel()

	// wind 25mph scores 20 and a 16.67s period scores 70
	weak := []models.ConditionResult{
		{SpotID: "a", WindSpeedValue: 25, SwellPeriod: ptr(50.0 / 3)},
		{SpotID: "b", WindSpeedValue: 28, SwellPeriod: ptr(12)},
	}
	assert.InDelta(t, 35, cleanliness(weak[0]), 0.001)
	assert.Nil(t, CleanestConditions(weak))

	clean := []models.ConditionResult{
		{SpotID: "a", WindSpeedValue: 25, SwellPeriod: ptr(18)},
		{SpotID: "b", WindSpeedValue: 3, SwellPeriod: ptr(9)},
		{SpotID: "c", WindSpeedValue: 3, SwellPeriod: ptr(9)},
	}
	got := CleanestConditions(clean)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.SpotID)

	// a missing period counts as neutral
	assert.InDelta(t, conditions.CleanlinessScore(5, 0), cleanliness(models.ConditionResult{WindSpeedValue: 5}), 0.0001)
}

func TestHighestWaves(t *testing.T) {
	t.Parallel()

	flat := []models.ConditionResult{
		{SpotID: "a", WaveHeightValue: 0.5},
		{SpotID: "b", WaveHeightValue: 0.8},
	}
	assert.Nil(t, HighestWaves(flat))

	surf := []models.ConditionResult{
		{SpotID: "a", WaveHeightValue: 2.1},
		{SpotID: "b", WaveHeightValue: 5.5},
		{SpotID: "c", WaveHeightValue: 1.0},
	}
	got := HighestWaves(surf)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.SpotID)

	assert.Nil(t, HighestWaves(nil))
}

func TestSelectionsReturnCopies(t *testing.T) {
	results := []models.ConditionResult{scored("a", 90)}
	got := BestConditions(results)
	got.SpotID = "changed"
	assert.Equal(t, "a", results[0].SpotID)
}
