package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/crubio/surfe-diem/backend-go/internal/config"
	"github.com/crubio/surfe-diem/backend-go/internal/forecast"
	"github.com/crubio/surfe-diem/backend-go/internal/handler"
	"github.com/crubio/surfe-diem/backend-go/internal/spot"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart       = lambda.Start // Allow mocking of lambda.Start in tests
	conditionsHandler *handler.ConditionsHandler
	setupOnce         sync.Once
)

func setup() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()
	cacheCfg := config.GetCacheConfig()

	finder, err := spot.NewFinderFromConfig(context.Background(), cfg, cacheCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create spot finder")
	}

	fetcher, err := forecast.NewFetcher(cfg, cacheCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create forecast fetcher")
	}

	conditionsHandler = handler.NewConditionsHandler(finder, fetcher)
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return conditionsHandler.HandleRequest(ctx, request)
}

func main() {
	setupOnce.Do(setup)
	lambdaStart(handleRequest)
}
