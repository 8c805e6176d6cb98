package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/crubio/surfe-diem/backend-go/internal/api"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// TideProvider returns tides by station or by a spot's linked station
type TideProvider interface {
	GetTidesForStation(ctx context.Context, stationID string, startTimeStr, endTimeStr *string, timezone string) (*models.ExtendedTideResponse, error)
	GetTidesForSpot(ctx context.Context, spotID string, startTimeStr, endTimeStr *string, timezone string) (*models.ExtendedTideResponse, error)
}

type TidesHandler struct {
	tides TideProvider
}

func NewTidesHandler(tides TideProvider) *TidesHandler {
	return &TidesHandler{tides: tides}
}

// HandleRequest serves GET /tides?stationId|spotId[&startDateTime&endDateTime&timezone]
func (h *TidesHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters
	log.Info().Msg("Handling tides request")

	start := api.OptionalParam(params, "startDateTime")
	end := api.OptionalParam(params, "endDateTime")
	timezone := params["timezone"]

	var (
		response *models.ExtendedTideResponse
		err      error
	)

	if stationID := params["stationId"]; stationID != "" {
		response, err = h.tides.GetTidesForStation(ctx, stationID, start, end, timezone)
	} else if spotID := params["spotId"]; spotID != "" {
		response, err = h.tides.GetTidesForSpot(ctx, spotID, start, end, timezone)
	} else {
		return errorResponse(api.MissingParameterError{Name: "stationId or spotId"}, "Invalid parameters")
	}

	if err != nil {
		return errorResponse(err, "Error getting tide data")
	}

	return api.Success(response)
}
