package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCacheConfigDefaults(t *testing.T) {
	cfg := GetCacheConfig()

	assert.Equal(t, defaultForecastLRUSize, cfg.ForecastLRUSize)
	assert.Equal(t, 30*time.Minute, cfg.GetForecastLRUTTL())
	assert.Equal(t, 6*time.Hour, cfg.GetTideLRUTTL())
	assert.Equal(t, 24*time.Hour, cfg.GetSpotListTTL())
	assert.Equal(t, defaultBatchConcurrency, cfg.BatchConcurrency)
	assert.True(t, cfg.EnableLRUCache)
	assert.True(t, cfg.EnableS3Cache)
}

func TestGetCacheConfigOverrides(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		check   func(*testing.T, *CacheConfig)
	}{
		{
			name: "forecast lru",
			envVars: map[string]string{
				"CACHE_FORECAST_LRU_SIZE":    "2000",
				"CACHE_FORECAST_TTL_MINUTES": "10",
			},
			check: func(t *testing.T, c *CacheConfig) {
				assert.Equal(t, 2000, c.ForecastLRUSize)
				assert.Equal(t, 10*time.Minute, c.GetForecastLRUTTL())
			},
		},
		{
			name: "spot list ttl",
			envVars: map[string]string{
				"CACHE_SPOT_LIST_TTL_HOURS": "48",
			},
			check: func(t *testing.T, c *CacheConfig) {
				assert.Equal(t, 48*time.Hour, c.GetSpotListTTL())
			},
		},
		{
			name: "disabled caches",
			envVars: map[string]string{
				"CACHE_ENABLE_LRU": "false",
				"CACHE_ENABLE_S3":  "no",
			},
			check: func(t *testing.T, c *CacheConfig) {
				assert.False(t, c.EnableLRUCache)
				assert.False(t, c.EnableS3Cache)
			},
		},
		{
			name: "invalid numeric values",
			envVars: map[string]string{
				"CACHE_FORECAST_LRU_SIZE": "invalid",
				"CACHE_BATCH_CONCURRENCY": "not_a_number",
			},
			check: func(t *testing.T, c *CacheConfig) {
				assert.Equal(t, defaultForecastLRUSize, c.ForecastLRUSize)
				assert.Equal(t, defaultBatchConcurrency, c.BatchConcurrency)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			tt.check(t, GetCacheConfig())
		})
	}
}
