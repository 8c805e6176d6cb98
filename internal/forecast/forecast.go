// Package forecast fetches marine forecasts for a spot from Open-Meteo or the
// NWS gridpoint API.
package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/config"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
)

// Fetcher returns the raw forecast for a spot
type Fetcher interface {
	FetchForecast(ctx context.Context, spot models.Spot) (models.Forecast, error)
}

// NewFetcher builds the configured provider's client, wrapped in an LRU
// when the cache is enabled.
func NewFetcher(cfg *config.Config, cacheCfg *config.CacheConfig) (Fetcher, error) {
	var (
		fetcher Fetcher
		err     error
	)

	switch cfg.ForecastProvider {
	case config.ProviderNWS:
		fetcher, err = NewNWSClient(client.New(client.Options{
			BaseURL:    cfg.NWSBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
			Headers:    map[string]string{"Accept": "application/geo+json"},
		}), cacheCfg.GridpointLRUSize)
		if err != nil {
			return nil, err
		}
	case config.ProviderOpenMeteo, "":
		fetcher = NewOpenMeteoClient(client.New(client.Options{
			BaseURL:    cfg.OpenMeteoMarineURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		}))
	default:
		return nil, fmt.Errorf("unknown forecast provider: %s", cfg.ForecastProvider)
	}

	if !cacheCfg.EnableLRUCache {
		return fetcher, nil
	}

	lru, err := cache.NewTTLCache[string, models.Forecast](cacheCfg.ForecastLRUSize, cacheCfg.GetForecastLRUTTL())
	if err != nil {
		return nil, fmt.Errorf("creating forecast cache: %w", err)
	}
	return NewCachedFetcher(fetcher, cfg.ForecastProvider, lru), nil
}

func upstreamError(provider string, err error) error {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return &UpstreamError{Provider: provider, StatusCode: statusErr.StatusCode, Err: err}
	}
	return &UpstreamError{Provider: provider, Err: err}
}
