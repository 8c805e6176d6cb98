package forecast

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var openMeteoCurrentFields = []string{
	"swell_wave_height",
	"swell_wave_period",
	"swell_wave_direction",
	"wind_wave_height",
	"wind_wave_direction",
	"wave_height",
	"wave_period",
	"wave_direction",
	"sea_surface_temperature",
}

// OpenMeteoClient reads the "current" block of the Open-Meteo marine API
type OpenMeteoClient struct {
	httpClient *client.Client
}

func NewOpenMeteoClient(httpClient *client.Client) *OpenMeteoClient {
	return &OpenMeteoClient{httpClient: httpClient}
}

func (c *OpenMeteoClient) FetchForecast(ctx context.Context, spot models.Spot) (models.Forecast, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(spot.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(spot.Longitude, 'f', 4, 64))
	q.Set("current", strings.Join(openMeteoCurrentFields, ","))
	q.Set("timezone", "auto")

	var resp models.OpenMeteoForecast
	if err := c.httpClient.GetJSON(ctx, "/v1/marine?"+q.Encode(), &resp); err != nil {
		return models.Forecast{}, upstreamError(string(models.KindOpenMeteo), err)
	}

	log.Trace().Str("spot_id", spot.ID).Str("time", resp.Current.Time).Msg("Fetched Open-Meteo marine forecast")

	return models.Forecast{Kind: models.KindOpenMeteo, OpenMeteo: &resp}, nil
}
