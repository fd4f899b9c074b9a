package api

import (
	"context"
	"fmt"
	"strconv"

	"aqi-api/internal/domain/model/external"
	"aqi-api/pkg/http"
)

const hourlyFields = "pm10,pm2_5,carbon_monoxide,ozone,nitrogen_dioxide,sulphur_dioxide,us_aqi"

// airQualityGatewayImpl implements the AirQualityGateway interface against
// the Open-Meteo air-quality API
type airQualityGatewayImpl struct {
	httpClient *http.Client
}

// NewAirQualityGateway creates a new instance of AirQualityGateway with HTTP client
func NewAirQualityGateway(baseUrl string, clientOptions http.ClientOptions) AirQualityGateway {
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	return &airQualityGatewayImpl{
		httpClient: httpClient,
	}
}

// LatestByCoordinates fetches the hourly air-quality series for a coordinate
func (g *airQualityGatewayImpl) LatestByCoordinates(ctx context.Context, lat, lon float64) (*external.AirQualityResponse, error) {
	queryParams := map[string]string{
		"latitude":  strconv.FormatFloat(lat, 'f', -1, 64),
		"longitude": strconv.FormatFloat(lon, 'f', -1, 64),
		"hourly":    hourlyFields,
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/v1/air-quality").
		WithQueryParams(queryParams).
		WithSuccessResp(&external.AirQualityResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err == nil {
		response := successResp.(*external.AirQualityResponse)
		return response, nil
	}

	if errResp != nil {
		errorResponse := errResp.(*external.APIErrorResponse)
		if errorResponse.Reason != "" {
			return nil, fmt.Errorf("air-quality provider rejected request: %s", errorResponse.Reason)
		}
	}

	return nil, err
}
