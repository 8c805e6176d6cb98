package spot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locationsBody = `[
  {"id": 1, "name": "Steamer Lane", "slug": "steamer-lane", "subregion_name": "Santa Cruz", "latitude": 36.9514, "longitude": -122.0263, "tide_station_id": "9413745"},
  {"id": 2, "name": "Pleasure Point", "slug": "pleasure-point", "latitude": 36.9547, "longitude": -121.9717},
  {"id": "3", "name": "Ocean Beach", "slug": "ocean-beach-sf", "latitude": 37.7594, "longitude": -122.5107},
  {"id": 4, "name": "", "latitude": 0, "longitude": 0},
  {"id": 5, "name": "Nowhere", "latitude": 123.0, "longitude": 0}
]`

func newTestFinder(t *testing.T, calls *atomic.Int32) *APIFinder {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locations", r.URL.Path)
		calls.Add(1)
		_, _ = w.Write([]byte(locationsBody))
	}))
	t.Cleanup(srv.Close)

	return NewAPIFinder(client.New(client.Options{BaseURL: srv.URL}), nil, nil)
}

func TestFindSpot(t *testing.T) {
	var calls atomic.Int32
	f := newTestFinder(t, &calls)
	ctx := context.Background()

	s, err := f.FindSpot(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Steamer Lane", s.Name)
	require.NotNil(t, s.SubregionName)
	assert.Equal(t, "Santa Cruz", *s.SubregionName)
	require.NotNil(t, s.TideStationID)
	assert.Equal(t, "9413745", *s.TideStationID)

	s, err = f.FindSpot(ctx, "ocean-beach-sf")
	require.NoError(t, err)
	assert.Equal(t, "3", s.ID, "string ids decode too")

	_, err = f.FindSpot(ctx, "4")
	assert.True(t, errors.Is(err, ErrSpotNotFound), "invalid spots are dropped")

	_, err = f.FindSpot(ctx, "5")
	assert.True(t, errors.Is(err, ErrSpotNotFound))

	assert.Equal(t, int32(1), calls.Load(), "spot list is cached")
}

func TestFindNearestSpots(t *testing.T) {
	var calls atomic.Int32
	f := newTestFinder(t, &calls)

	// Santa Cruz wharf
	spots, err := f.FindNearestSpots(context.Background(), 36.9615, -122.0219, 2)
	require.NoError(t, err)
	require.Len(t, spots, 2)

	assert.Equal(t, "Steamer Lane", spots[0].Name)
	assert.Equal(t, "Pleasure Point", spots[1].Name)
	require.NotNil(t, spots[0].Distance)
	assert.InDelta(t, 0.73, *spots[0].Distance, 0.05)
	assert.Less(t, *spots[0].Distance, *spots[1].Distance)

	all, err := f.FindNearestSpots(context.Background(), 36.9615, -122.0219, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Ocean Beach", all[2].Name)
}

func TestFindNearestSpotsInvalidCoordinates(t *testing.T) {
	var calls atomic.Int32
	f := newTestFinder(t, &calls)

	_, err := f.FindNearestSpots(context.Background(), 91, 0, 5)
	assert.ErrorContains(t, err, "invalid latitude")

	_, err = f.FindNearestSpots(context.Background(), 0, -181, 5)
	assert.ErrorContains(t, err, "invalid longitude")

	assert.Equal(t, int32(0), calls.Load())
}

func TestFindSpotUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewAPIFinder(client.New(client.Options{BaseURL: srv.URL}), nil, nil)
	_, err := f.FindSpot(context.Background(), "1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSpotNotFound))
}

type mockPersistentCache struct {
	spots []models.Spot
	saved []models.Spot
	err   error
}

func (m *mockPersistentCache) GetSpots(context.Context) ([]models.Spot, error) {
	return m.spots, m.err
}

func (m *mockPersistentCache) SaveSpots(_ context.Context, spots []models.Spot) error {
	m.saved = spots
	return nil
}

func TestPersistentCache(t *testing.T) {
	t.Run("hit skips the API", func(t *testing.T) {
		persistent := &mockPersistentCache{spots: []models.Spot{{ID: "9", Name: "Rincon", Latitude: 34.37, Longitude: -119.47}}}
		f := NewAPIFinder(&client.Client{GetFunc: func(ctx context.Context, path string) (*client.Response, error) {
			t.Fatal("locations API should not be called")
			return nil, nil
		}}, cache.NewSpotCache(0), persistent)

		s, err := f.FindSpot(context.Background(), "9")
		require.NoError(t, err)
		assert.Equal(t, "Rincon", s.Name)
	})

	t.Run("miss saves the fetched list", func(t *testing.T) {
		persistent := &mockPersistentCache{err: errors.New("s3 unavailable")}
		f := NewAPIFinder(&client.Client{GetFunc: func(ctx context.Context, path string) (*client.Response, error) {
			return &client.Response{StatusCode: http.StatusOK, Body: []byte(locationsBody)}, nil
		}}, nil, persistent)

		_, err := f.FindSpot(context.Background(), "2")
		require.NoError(t, err)
		assert.Len(t, persistent.saved, 3)
	})
}

func TestCalculateDistance(t *testing.T) {
	t.Parallel()

	// San Francisco to Los Angeles
	km := calculateDistance(37.7749, -122.4194, 34.0522, -118.2437)
	assert.InDelta(t, 559, km, 5)
	assert.InDelta(t, 0, calculateDistance(10, 10, 10, 10), 1e-9)
}
