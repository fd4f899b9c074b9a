package api

import (
	"context"

	"aqi-api/internal/domain/model/external"
)

// AirQualityGateway defines the interface for the live third-party
// air-quality provider
type AirQualityGateway interface {
	// LatestByCoordinates fetches the hourly air-quality series for a coordinate
	LatestByCoordinates(ctx context.Context, lat, lon float64) (*external.AirQualityResponse, error)
}
