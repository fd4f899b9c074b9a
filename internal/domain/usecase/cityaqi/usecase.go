package cityaqi

import (
	"context"

	"aqi-api/internal/domain/model"
)

// UseCase defines the interface for city resolution and live AQI operations
type UseCase interface {
	// CityAQI resolves a city name against the coordinate table and returns
	// the latest provider readings for the matched coordinate
	CityAQI(ctx context.Context, city string) (*model.CityAQIResponse, error)

	// LiveAQIByCoords returns the latest readings for an arbitrary coordinate
	LiveAQIByCoords(ctx context.Context, lat, lon float64) (*model.LiveAQIResponse, error)

	// GlobalSnapshot returns the cached per-city snapshot built by the scheduler
	GlobalSnapshot(ctx context.Context) (model.GlobalSnapshot, error)

	// RefreshGlobalSnapshot rebuilds the snapshot for every city in the table
	// and stores it in the cache
	RefreshGlobalSnapshot(ctx context.Context, requestID string) error

	// RefreshCitySnapshot updates a single city's slot in the cached snapshot
	RefreshCitySnapshot(ctx context.Context, city string) error
}
