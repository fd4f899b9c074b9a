package api

import "context"

// ForecastGateway defines the interface for calls to the external ML
// forecasting server. Payloads are returned as decoded generic JSON because
// the server's response shapes vary by endpoint and version; the forecast
// usecase normalizes them.
//
// A non-nil error means the server could not be reached or did not answer
// JSON (transport failure, timeout, or undecodable body). HTTP-level domain
// errors come back as a payload with the reported status instead.
type ForecastGateway interface {
	// HybridForecast requests the monthly hybrid model forecast
	HybridForecast(ctx context.Context, city string, horizonMonths int) (any, int, error)

	// ProphetForecast requests the daily prophet model forecast
	ProphetForecast(ctx context.Context, city string, horizonDays int) (any, int, error)

	// ShortTermForecast requests the hourly short-term model forecast
	ShortTermForecast(ctx context.Context, city string, hours int) (any, int, error)

	// ListCities requests the list of cities the server has models for
	ListCities(ctx context.Context) (any, int, error)
}
