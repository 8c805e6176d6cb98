package spot

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/config"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// NewFinderFromConfig builds an APIFinder against the configured spots API.
// The S3 list cache is used only when a bucket is configured and enabled.
func NewFinderFromConfig(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig) (*APIFinder, error) {
	httpClient := client.New(client.Options{
		BaseURL:    cfg.SpotsAPIURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})

	var persistent cache.SpotListCacheProvider
	if cacheCfg.EnableS3Cache && cfg.SpotCacheBucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		persistent = cache.NewS3SpotCache(s3.NewFromConfig(awsCfg), cfg.SpotCacheBucket, cacheCfg.GetSpotListTTL())
		log.Debug().Str("bucket", cfg.SpotCacheBucket).Msg("Using S3 spot list cache")
	}

	return NewAPIFinder(httpClient, cache.NewSpotCache(cacheCfg.GetSpotListTTL()), persistent), nil
}
