// Package spot lists surf spots from the locations API and finds the ones
// nearest a point.
package spot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/units"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var ErrSpotNotFound = errors.New("spot not found")

const distanceWorkers = 4

// flexibleID accepts both numeric and string ids
type flexibleID string

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	*id = flexibleID(bytes.Trim(b, `"`))
	return nil
}

type locationRecord struct {
	ID            flexibleID `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	SubregionName *string    `json:"subregion_name"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	TideStationID *string    `json:"tide_station_id"`
}

// APIFinder implements models.SpotFinder over the locations API. The list is
// kept in memory and, when a persistent cache is set, in S3 between cold starts.
type APIFinder struct {
	httpClient *client.Client
	cache      *cache.SpotCache
	persistent cache.SpotListCacheProvider
	refreshMu  sync.Mutex
}

var _ models.SpotFinder = (*APIFinder)(nil)

// NewAPIFinder builds a finder. spotCache defaults to a 24h in-memory cache
// and persistent may be nil.
func NewAPIFinder(httpClient *client.Client, spotCache *cache.SpotCache, persistent cache.SpotListCacheProvider) *APIFinder {
	if spotCache == nil {
		spotCache = cache.NewSpotCache(cache.DefaultSpotListTTL)
	}
	return &APIFinder{
		httpClient: httpClient,
		cache:      spotCache,
		persistent: persistent,
	}
}

// FindSpot looks a spot up by id or slug
func (f *APIFinder) FindSpot(ctx context.Context, spotID string) (*models.Spot, error) {
	spots, err := f.getSpotList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting spot list: %w", err)
	}

	for _, s := range spots {
		if s.ID == spotID || (s.Slug != "" && s.Slug == spotID) {
			log.Trace().Str("spot_id", s.ID).Msg("FindSpot: Found spot")
			found := s
			return &found, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrSpotNotFound, spotID)
}

// FindNearestSpots returns up to limit spots ordered by distance in miles
func (f *APIFinder) FindNearestSpots(ctx context.Context, lat, lon float64, limit int) ([]models.Spot, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid latitude: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid longitude: %f", lon)
	}

	spots, err := f.getSpotList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting spot list: %w", err)
	}

	withDistance := distances(spots, lat, lon)

	sort.Slice(withDistance, func(i, j int) bool {
		di, dj := *withDistance[i].Distance, *withDistance[j].Distance
		if di != dj {
			return di < dj
		}
		return withDistance[i].ID < withDistance[j].ID
	})

	if limit > 0 && len(withDistance) > limit {
		withDistance = withDistance[:limit]
	}

	return withDistance, nil
}

// distances annotates copies of spots with their distance from (lat, lon)
// using a small worker pool
func distances(spots []models.Spot, lat, lon float64) []models.Spot {
	work := make(chan models.Spot, len(spots))
	results := make(chan models.Spot, len(spots))

	var wg sync.WaitGroup
	for i := 0; i < distanceWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range work {
				miles := units.KmToMiles(calculateDistance(lat, lon, s.Latitude, s.Longitude))
				s.Distance = &miles
				results <- s
			}
		}()
	}

	for _, s := range spots {
		work <- s
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]models.Spot, 0, len(spots))
	for s := range results {
		out = append(out, s)
	}
	return out
}

func (f *APIFinder) getSpotList(ctx context.Context) ([]models.Spot, error) {
	if spots := f.cache.GetSpots(); spots != nil {
		log.Debug().Msg("Cache HIT for spot list")
		return spots, nil
	}

	f.refreshMu.Lock()
	defer f.refreshMu.Unlock()

	// another caller may have refreshed while we waited
	if spots := f.cache.GetSpots(); spots != nil {
		return spots, nil
	}

	if f.persistent != nil {
		spots, err := f.persistent.GetSpots(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Reading persistent spot cache failed")
		} else if spots != nil {
			log.Debug().Int("spot_count", len(spots)).Msg("Spot list loaded from persistent cache")
			f.cache.SetSpots(spots)
			return spots, nil
		}
	}

	log.Debug().Msg("Cache MISS for spot list, calling locations API")

	var records []locationRecord
	if err := f.httpClient.GetJSON(ctx, "/locations", &records); err != nil {
		return nil, fmt.Errorf("fetching spots: %w", err)
	}

	spots := make([]models.Spot, 0, len(records))
	for _, r := range records {
		s := models.Spot{
			ID:            string(r.ID),
			Name:          r.Name,
			Slug:          r.Slug,
			SubregionName: r.SubregionName,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			TideStationID: r.TideStationID,
		}
		if err := s.Validate(); err != nil {
			log.Trace().Str("spot_id", s.ID).Err(err).Msg("Skipping invalid spot")
			continue
		}
		spots = append(spots, s)
	}

	log.Debug().Int("spot_count", len(spots)).Msg("Caching spot list")
	f.cache.SetSpots(spots)

	if f.persistent != nil {
		if err := f.persistent.SaveSpots(ctx, spots); err != nil {
			log.Warn().Err(err).Msg("Saving persistent spot cache failed")
		}
	}

	return spots, nil
}

// calculateDistance returns the great-circle distance in km
func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
