package handler

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/crubio/surfe-diem/backend-go/internal/api"
	"github.com/crubio/surfe-diem/backend-go/internal/conditions"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/recommend"
	"github.com/crubio/surfe-diem/backend-go/internal/timeseries"
)

const (
	defaultHourlyHorizon = 24
	maxHourlyHorizon     = 168
)

type ConditionsHandler struct {
	spots   models.SpotFinder
	fetcher recommend.Fetcher
	now     func() time.Time
}

func NewConditionsHandler(spots models.SpotFinder, fetcher recommend.Fetcher) *ConditionsHandler {
	return &ConditionsHandler{
		spots:   spots,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// HandleRequest serves GET /conditions?spotId[&hours]. NWS forecasts also
// carry an hourly wave height series in feet.
func (h *ConditionsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	spotID, ok := params["spotId"]
	if !ok || spotID == "" {
		return errorResponse(api.MissingParameterError{Name: "spotId"}, "Invalid parameters")
	}

	hours, err := api.ParseIntParam(params, "hours", defaultHourlyHorizon, 1, maxHourlyHorizon)
	if err != nil {
		return errorResponse(err, "Invalid parameters")
	}

	spot, err := h.spots.FindSpot(ctx, spotID)
	if err != nil {
		return errorResponse(err, "Error finding spot")
	}

	f, err := h.fetcher.FetchForecast(ctx, *spot)
	if err != nil {
		return errorResponse(err, "Error fetching forecast")
	}

	now := h.now()
	result, err := conditions.TransformAt(f, *spot, now)
	if err != nil {
		return errorResponse(err, "Error reading forecast")
	}

	var hourly []models.HourlyValue
	if f.Kind == models.KindNWS {
		local := now.In(timeseries.Location(f.NWS.Timezone))
		hourly = timeseries.HourlyFeet(timeseries.BucketHourlyAt(f.NWS.WaveData.WaveHeight, local, hours))
	}

	return api.Success(api.NewConditionsResponse(result, hourly))
}
