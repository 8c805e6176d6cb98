package forecast

import (
	"context"
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// CachedFetcher serves forecasts from a TTL LRU and collapses concurrent
// fetches for the same spot into one upstream call. Failures are not cached.
type CachedFetcher struct {
	next     Fetcher
	provider string
	cache    *cache.TTLCache[string, models.Forecast]
	group    singleflight.Group
}

func NewCachedFetcher(next Fetcher, provider string, lru *cache.TTLCache[string, models.Forecast]) *CachedFetcher {
	return &CachedFetcher{
		next:     next,
		provider: provider,
		cache:    lru,
	}
}

func (f *CachedFetcher) FetchForecast(ctx context.Context, spot models.Spot) (models.Forecast, error) {
	key := f.cacheKey(spot)
	if forecast, ok := f.cache.Get(key); ok {
		log.Trace().Str("spot_id", spot.ID).Msg("Forecast cache hit")
		return forecast, nil
	}

	// the shared fetch outlives any one caller; each caller still stops
	// waiting when its own ctx ends
	ch := f.group.DoChan(key, func() (interface{}, error) {
		forecast, err := f.next.FetchForecast(context.WithoutCancel(ctx), spot)
		if err != nil {
			return models.Forecast{}, err
		}
		f.cache.Add(key, forecast)
		return forecast, nil
	})

	select {
	case <-ctx.Done():
		return models.Forecast{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.Forecast{}, res.Err
		}
		return res.Val.(models.Forecast), nil
	}
}

// GetCacheStats returns statistics about cache hits and misses
func (f *CachedFetcher) GetCacheStats() map[string]uint64 {
	return f.cache.Stats()
}

func (f *CachedFetcher) cacheKey(spot models.Spot) string {
	if spot.ID != "" {
		return fmt.Sprintf("%s:%s", f.provider, spot.ID)
	}
	return fmt.Sprintf("%s:%.4f,%.4f", f.provider, spot.Latitude, spot.Longitude)
}
