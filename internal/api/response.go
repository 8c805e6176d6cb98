package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/recommend"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type RecommendationsResponse struct {
	APIResponse
	*recommend.Recommendation
}

type ConditionsResponse struct {
	APIResponse
	Conditions models.ConditionResult `json:"conditions"`
	Hourly     []models.HourlyValue   `json:"hourly,omitempty"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

// NewRecommendationsResponse wraps rec. A nil rec, from an empty spot list,
// reads as empty picks.
func NewRecommendationsResponse(rec *recommend.Recommendation) *RecommendationsResponse {
	if rec == nil {
		rec = &recommend.Recommendation{Results: []models.ConditionResult{}}
	}
	return &RecommendationsResponse{
		APIResponse:    APIResponse{ResponseType: "recommendations"},
		Recommendation: rec,
	}
}

func NewConditionsResponse(result models.ConditionResult, hourly []models.HourlyValue) *ConditionsResponse {
	return &ConditionsResponse{
		APIResponse: APIResponse{ResponseType: "conditions"},
		Conditions:  result,
		Hourly:      hourly,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

var defaultHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// Success renders body as a 200 JSON response
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers(),
		Body:       string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(body),
	}, nil
}

func headers() map[string]string {
	h := make(map[string]string, len(defaultHeaders))
	for k, v := range defaultHeaders {
		h[k] = v
	}
	return h
}

// ParseCoordinates reads the required lat and lon parameters
func ParseCoordinates(params map[string]string) (float64, float64, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat || !hasLon {
		return 0, 0, MissingParameterError{Name: "lat and lon"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, InvalidParameterError{Name: "lat", Value: latStr}
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, InvalidParameterError{Name: "lon", Value: lonStr}
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, InvalidCoordinatesError{}
	}

	return lat, lon, nil
}

// ParseIntParam reads an optional integer parameter in [lo, hi], returning
// def when it is absent.
func ParseIntParam(params map[string]string, name string, def, lo, hi int) (int, error) {
	raw, ok := params[name]
	if !ok || raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, InvalidParameterError{Name: name, Value: raw}
	}
	return n, nil
}

// OptionalParam returns a pointer to the parameter's value, or nil when absent
func OptionalParam(params map[string]string, name string) *string {
	if v, ok := params[name]; ok && v != "" {
		return &v
	}
	return nil
}

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}

type MissingParameterError struct {
	Name string
}

func (e MissingParameterError) Error() string {
	return "Missing required parameter: " + e.Name
}

type InvalidParameterError struct {
	Name  string
	Value string
}

func (e InvalidParameterError) Error() string {
	return "Invalid value for " + e.Name + ": " + e.Value
}
