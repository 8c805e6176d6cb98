package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/config"
	"github.com/crubio/surfe-diem/backend-go/internal/forecast"
	"github.com/crubio/surfe-diem/backend-go/internal/handler"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/recommend"
	"github.com/crubio/surfe-diem/backend-go/internal/spot"
	"github.com/crubio/surfe-diem/backend-go/internal/storage"
	"github.com/crubio/surfe-diem/backend-go/internal/tide"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
)

// app holds the collaborators behind every subcommand. Unset ones are built
// from config on first use.
type app struct {
	cfg      *config.Config
	cacheCfg *config.CacheConfig
	out      io.Writer
	jsonOut  bool

	spots   models.SpotFinder
	fetcher recommend.Fetcher
	tides   handler.TideProvider
	kv      storage.Store
}

func newApp(out io.Writer) *app {
	return &app{out: out}
}

func (a *app) init() {
	if a.cfg == nil {
		a.cfg = config.LoadFromEnv()
		a.cfg.InitializeLogging()
	}
	if a.cacheCfg == nil {
		a.cacheCfg = config.GetCacheConfig()
	}
}

func (a *app) spotFinder(ctx context.Context) (models.SpotFinder, error) {
	if a.spots != nil {
		return a.spots, nil
	}
	finder, err := spot.NewFinderFromConfig(ctx, a.cfg, a.cacheCfg)
	if err != nil {
		return nil, err
	}
	a.spots = finder
	return a.spots, nil
}

func (a *app) forecastFetcher() (recommend.Fetcher, error) {
	if a.fetcher != nil {
		return a.fetcher, nil
	}
	fetcher, err := forecast.NewFetcher(a.cfg, a.cacheCfg)
	if err != nil {
		return nil, err
	}
	a.fetcher = fetcher
	return a.fetcher, nil
}

func (a *app) tideService(ctx context.Context) (handler.TideProvider, error) {
	if a.tides != nil {
		return a.tides, nil
	}
	finder, err := a.spotFinder(ctx)
	if err != nil {
		return nil, err
	}
	predictionCache, err := cache.NewTTLCache[string, *tide.PredictionRecord](a.cacheCfg.TideLRUSize, a.cacheCfg.GetTideLRUTTL())
	if err != nil {
		return nil, fmt.Errorf("creating tide cache: %w", err)
	}
	a.tides = tide.NewService(client.New(client.Options{
		BaseURL:    a.cfg.NOAABaseURL,
		Timeout:    a.cfg.HTTPTimeout,
		MaxRetries: a.cfg.MaxRetries,
	}), finder, predictionCache)
	return a.tides, nil
}

func (a *app) store(ctx context.Context) (storage.Store, error) {
	if a.kv != nil {
		return a.kv, nil
	}
	kv, err := storage.New(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", a.cfg.StorageBackend, err)
	}
	a.kv = kv
	return a.kv, nil
}

func (a *app) close() error {
	if c, ok := a.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
