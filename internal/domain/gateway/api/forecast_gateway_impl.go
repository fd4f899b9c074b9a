package api

import (
	"context"
	"fmt"

	"aqi-api/pkg/http"
)

// forecastGatewayImpl implements the ForecastGateway interface against the
// ML server reached over its tunnel URL
type forecastGatewayImpl struct {
	httpClient *http.Client
}

// NewForecastGateway creates a new instance of ForecastGateway with HTTP client
func NewForecastGateway(baseUrl string, clientOptions http.ClientOptions) ForecastGateway {
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	return &forecastGatewayImpl{
		httpClient: httpClient,
	}
}

// HybridForecast requests the monthly hybrid model forecast
func (g *forecastGatewayImpl) HybridForecast(ctx context.Context, city string, horizonMonths int) (any, int, error) {
	body := map[string]any{"city": city, "horizon_months": horizonMonths}
	return g.post(ctx, "/hybrid", body)
}

// ProphetForecast requests the daily prophet model forecast
func (g *forecastGatewayImpl) ProphetForecast(ctx context.Context, city string, horizonDays int) (any, int, error) {
	body := map[string]any{"city": city, "horizon_days": horizonDays}
	return g.post(ctx, "/prophet", body)
}

// ShortTermForecast requests the hourly short-term model forecast
func (g *forecastGatewayImpl) ShortTermForecast(ctx context.Context, city string, hours int) (any, int, error) {
	body := map[string]any{"city": city, "hours": hours}
	return g.post(ctx, "/short_term", body)
}

// ListCities requests the list of cities the server has models for
func (g *forecastGatewayImpl) ListCities(ctx context.Context) (any, int, error) {
	var success, failure any

	_, _, status, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/list_cities").
		WithSuccessResp(&success).
		WithErrorResp(&failure).
		Execute()

	return g.pickPayload(success, failure, status, err)
}

func (g *forecastGatewayImpl) post(ctx context.Context, path string, body any) (any, int, error) {
	var success, failure any

	_, _, status, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.POST).
		WithPath(path).
		WithBody(body).
		WithSuccessResp(&success).
		WithErrorResp(&failure).
		Execute()

	return g.pickPayload(success, failure, status, err)
}

// pickPayload folds the client's dual success/error decoding into a single
// payload. Transport failures and undecodable bodies keep their error; an
// HTTP error status with a decoded JSON body is a valid answer for the
// caller to classify.
func (g *forecastGatewayImpl) pickPayload(success, failure any, status int, err error) (any, int, error) {
	if status == 0 {
		return nil, 0, err
	}

	if status >= 200 && status < 300 {
		if err != nil {
			return nil, status, fmt.Errorf("ml server returned undecodable body: %w", err)
		}
		return success, status, nil
	}

	if failure == nil {
		return nil, status, fmt.Errorf("ml server returned non-JSON body with status %d", status)
	}
	return failure, status, nil
}
