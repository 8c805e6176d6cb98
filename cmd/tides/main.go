package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/crubio/surfe-diem/backend-go/internal/cache"
	"github.com/crubio/surfe-diem/backend-go/internal/config"
	"github.com/crubio/surfe-diem/backend-go/internal/handler"
	"github.com/crubio/surfe-diem/backend-go/internal/spot"
	"github.com/crubio/surfe-diem/backend-go/internal/tide"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart  = lambda.Start // Allow mocking of lambda.Start in tests
	tidesHandler *handler.TidesHandler
	setupOnce    sync.Once
)

func setup() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()
	cacheCfg := config.GetCacheConfig()

	httpClient := client.New(client.Options{
		BaseURL:    cfg.NOAABaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})

	finder, err := spot.NewFinderFromConfig(context.Background(), cfg, cacheCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create spot finder")
	}

	var predictionCache *cache.TTLCache[string, *tide.PredictionRecord]
	if cacheCfg.EnableLRUCache {
		predictionCache, err = cache.NewTTLCache[string, *tide.PredictionRecord](cacheCfg.TideLRUSize, cacheCfg.GetTideLRUTTL())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create tide cache")
		}
	}

	tidesHandler = handler.NewTidesHandler(tide.NewService(httpClient, finder, predictionCache))
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return tidesHandler.HandleRequest(ctx, request)
}

func main() {
	setupOnce.Do(setup)
	lambdaStart(handleRequest)
}
