package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/crubio/surfe-diem/backend-go/internal/api"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/recommend"
	"github.com/rs/zerolog/log"
)

const defaultRecommendationSpots = 5

// Recommender selects from the conditions at a batch of spots
type Recommender interface {
	Recommend(ctx context.Context, spots []models.Spot) (*recommend.Recommendation, error)
}

type RecommendationsHandler struct {
	spots       models.SpotFinder
	recommender Recommender
}

func NewRecommendationsHandler(spots models.SpotFinder, recommender Recommender) *RecommendationsHandler {
	return &RecommendationsHandler{
		spots:       spots,
		recommender: recommender,
	}
}

// HandleRequest serves GET /recommendations?lat&lon[&limit]
func (h *RecommendationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	lat, lon, err := api.ParseCoordinates(params)
	if err != nil {
		return errorResponse(err, "Invalid parameters")
	}

	limit, err := api.ParseIntParam(params, "limit", defaultRecommendationSpots, 1, recommend.MaxBatchSpots)
	if err != nil {
		return errorResponse(err, "Invalid parameters")
	}

	spots, err := h.spots.FindNearestSpots(ctx, lat, lon, limit)
	if err != nil {
		return errorResponse(err, "Error finding spots")
	}

	rec, err := h.recommender.Recommend(ctx, spots)
	if err != nil {
		return errorResponse(err, "Error building recommendations")
	}

	log.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Int("spots", len(spots)).
		Msg("Built recommendations")

	return api.Success(api.NewRecommendationsResponse(rec))
}
