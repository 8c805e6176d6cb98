package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds the cache and fan-out settings
type CacheConfig struct {
	ForecastLRUSize       int
	ForecastLRUTTLMinutes int

	TideLRUSize       int
	TideLRUTTLMinutes int

	GridpointLRUSize int

	SpotListTTLHours int

	// BatchConcurrency caps concurrent forecast fetches in the batch selector
	BatchConcurrency int

	EnableLRUCache bool
	EnableS3Cache  bool
}

const (
	defaultForecastLRUSize    = 500
	defaultForecastTTLMinutes = 30
	defaultTideLRUSize        = 200
	defaultTideTTLMinutes     = 360
	defaultGridpointLRUSize   = 1000
	defaultSpotListTTLHours   = 24
	defaultBatchConcurrency   = 5
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		ForecastLRUSize:       getEnvInt("CACHE_FORECAST_LRU_SIZE", defaultForecastLRUSize),
		ForecastLRUTTLMinutes: getEnvInt("CACHE_FORECAST_TTL_MINUTES", defaultForecastTTLMinutes),
		TideLRUSize:           getEnvInt("CACHE_TIDE_LRU_SIZE", defaultTideLRUSize),
		TideLRUTTLMinutes:     getEnvInt("CACHE_TIDE_TTL_MINUTES", defaultTideTTLMinutes),
		GridpointLRUSize:      getEnvInt("CACHE_GRIDPOINT_LRU_SIZE", defaultGridpointLRUSize),
		SpotListTTLHours:      getEnvInt("CACHE_SPOT_LIST_TTL_HOURS", defaultSpotListTTLHours),
		BatchConcurrency:      getEnvInt("CACHE_BATCH_CONCURRENCY", defaultBatchConcurrency),
		EnableLRUCache:        getEnvBool("CACHE_ENABLE_LRU", true),
		EnableS3Cache:         getEnvBool("CACHE_ENABLE_S3", true),
	}

	log.Debug().
		Int("ForecastLRUSize", config.ForecastLRUSize).
		Int("ForecastLRUTTLMinutes", config.ForecastLRUTTLMinutes).
		Int("TideLRUSize", config.TideLRUSize).
		Int("TideLRUTTLMinutes", config.TideLRUTTLMinutes).
		Int("GridpointLRUSize", config.GridpointLRUSize).
		Int("SpotListTTLHours", config.SpotListTTLHours).
		Int("BatchConcurrency", config.BatchConcurrency).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableS3Cache", config.EnableS3Cache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetForecastLRUTTL() time.Duration {
	return time.Duration(c.ForecastLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetTideLRUTTL() time.Duration {
	return time.Duration(c.TideLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetSpotListTTL() time.Duration {
	return time.Duration(c.SpotListTTLHours) * time.Hour
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
