package forecast

import (
	"context"

	"aqi-api/internal/domain/model"
)

type UseCase interface {
	// HybridForecast returns the canonical monthly forecast for a city
	HybridForecast(ctx context.Context, city string, horizonMonths int) (*model.HybridForecastResponse, error)

	// ProphetForecast returns the canonical daily forecast for a city,
	// degrading to an expanded hybrid forecast when the daily model is unavailable
	ProphetForecast(ctx context.Context, city string, horizonDays int) (*model.ProphetForecastResponse, error)

	// ForecastHistory returns the daily series relabeled as history,
	// with horizon derived from the requested number of monthly periods
	ForecastHistory(ctx context.Context, city string, periods int) (*model.ForecastHistoryResponse, error)

	// ShortTermForecast returns the canonical hourly forecast for a city,
	// degrading to an expanded hybrid forecast when the hourly model is unavailable
	ShortTermForecast(ctx context.Context, city string, hours int) (*model.ShortTermForecastResponse, error)

	// ListCities returns the cities the ML server has models for
	ListCities(ctx context.Context) ([]string, error)
}
