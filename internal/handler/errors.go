package handler

import (
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/crubio/surfe-diem/backend-go/internal/api"
	"github.com/crubio/surfe-diem/backend-go/internal/forecast"
	"github.com/crubio/surfe-diem/backend-go/internal/spot"
	"github.com/crubio/surfe-diem/backend-go/internal/tide"
	"github.com/rs/zerolog/log"
)

// errorResponse maps err onto a status code. Anything unrecognised is a 500
// and is logged.
func errorResponse(err error, fallback string) (events.APIGatewayProxyResponse, error) {
	var (
		invalidCoords api.InvalidCoordinatesError
		missing       api.MissingParameterError
		invalidParam  api.InvalidParameterError
		invalidRange  *tide.InvalidRangeError
		upstream      *forecast.UpstreamError
		noaa          *tide.NoaaAPIError
	)

	switch {
	case errors.As(err, &invalidCoords), errors.As(err, &missing), errors.As(err, &invalidParam):
		return api.Error(err.Error(), http.StatusBadRequest)
	case errors.As(err, &invalidRange):
		return api.Error(invalidRange.Message, http.StatusBadRequest)
	case errors.Is(err, spot.ErrSpotNotFound):
		return api.Error("Spot not found", http.StatusNotFound)
	case errors.Is(err, tide.ErrNoTideStation):
		return api.Error("Spot has no tide station", http.StatusNotFound)
	case errors.As(err, &upstream), errors.As(err, &noaa):
		log.Error().Err(err).Msg("Upstream request failed")
		return api.Error("Upstream service unavailable", http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg(fallback)
		return api.Error(fallback, http.StatusInternalServerError)
	}
}
