package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ProviderOpenMeteo = "open-meteo"
	ProviderNWS       = "nws"

	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageDynamoDB = "dynamodb"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration
	MaxRetries  int

	OpenMeteoMarineURL string
	NWSBaseURL         string
	NOAABaseURL        string
	SpotsAPIURL        string
	ForecastProvider   string

	StorageBackend   string
	SQLitePath       string
	DynamoDBTable    string
	DynamoDBEndpoint string
	SpotCacheBucket  string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level. Unknown levels fall back to info.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithForecastProvider selects the upstream forecast API. Unknown values are ignored.
func WithForecastProvider(provider string) Option {
	return func(c *Config) {
		switch provider {
		case ProviderOpenMeteo, ProviderNWS:
			c.ForecastProvider = provider
		default:
			log.Warn().Str("provider", provider).Msg("Unknown forecast provider, keeping default")
		}
	}
}

// WithStorage selects the key-value backend for favorites and session state
func WithStorage(backend string) Option {
	return func(c *Config) {
		switch backend {
		case StorageMemory, StorageSQLite, StorageDynamoDB:
			c.StorageBackend = backend
		default:
			log.Warn().Str("backend", backend).Msg("Unknown storage backend, keeping default")
		}
	}
}

func WithSQLitePath(path string) Option {
	return func(c *Config) {
		c.SQLitePath = path
	}
}

func WithDynamoDB(table, endpoint string) Option {
	return func(c *Config) {
		c.DynamoDBTable = table
		c.DynamoDBEndpoint = endpoint
	}
}

func WithSpotCacheBucket(bucket string) Option {
	return func(c *Config) {
		c.SpotCacheBucket = bucket
	}
}

// WithUpstreams overrides the upstream base URLs. Empty values keep the default.
func WithUpstreams(openMeteo, nws, noaa, spots string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.OpenMeteoMarineURL, openMeteo)
		setIfNotEmpty(&c.NWSBaseURL, nws)
		setIfNotEmpty(&c.NOAABaseURL, noaa)
		setIfNotEmpty(&c.SpotsAPIURL, spots)
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:        "production",
		LogLevel:           zerolog.InfoLevel,
		HTTPTimeout:        10 * time.Second,
		MaxRetries:         3,
		OpenMeteoMarineURL: "https://marine-api.open-meteo.com",
		NWSBaseURL:         "https://api.weather.gov",
		NOAABaseURL:        "https://api.tidesandcurrents.noaa.gov",
		SpotsAPIURL:        "https://api.surfe-diem.com/api/v1",
		ForecastProvider:   ProviderOpenMeteo,
		StorageBackend:     StorageMemory,
		SQLitePath:         "surfe.db",
		DynamoDBTable:      "surfe-kv",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// IsLocal reports whether the process runs on a developer machine
func (c *Config) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "development"
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.IsLocal() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithUpstreams(
			os.Getenv("OPEN_METEO_MARINE_URL"),
			os.Getenv("NWS_BASE_URL"),
			os.Getenv("NOAA_BASE_URL"),
			os.Getenv("SPOTS_API_URL"),
		),
		WithForecastProvider(getEnvOrDefault("FORECAST_PROVIDER", ProviderOpenMeteo)),
		WithStorage(getEnvOrDefault("STORAGE_BACKEND", StorageMemory)),
		WithSQLitePath(getEnvOrDefault("SQLITE_PATH", "surfe.db")),
		WithDynamoDB(getEnvOrDefault("DYNAMODB_TABLE", "surfe-kv"), os.Getenv("DYNAMODB_ENDPOINT")),
		WithSpotCacheBucket(os.Getenv("SPOT_CACHE_BUCKET")),
	)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
