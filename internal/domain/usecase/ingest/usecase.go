package ingest

import (
	"context"

	"aqi-api/internal/domain/entity"
	"aqi-api/internal/domain/model"
)

// UseCase defines the interface for sensor reading ingestion operations
type UseCase interface {
	// Ingest validates and persists one sensor reading together with its
	// ingestion audit log, then hands the city off for a snapshot refresh.
	// rawPayload is the request body exactly as received.
	Ingest(ctx context.Context, request model.SensorReadingRequest, rawPayload []byte) (*model.SensorIngestResponse, error)

	// History returns the newest stored readings for a city
	History(ctx context.Context, city string, limit int) ([]entity.SensorReading, error)
}
