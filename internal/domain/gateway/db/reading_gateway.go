package db

import (
	"context"

	"aqi-api/internal/domain/entity"
)

// ReadingGateway defines the persistence interface for sensor readings and
// their ingestion audit trail
type ReadingGateway interface {
	// InsertIngestionLog records the raw payload before validation and
	// returns the log id
	InsertIngestionLog(ctx context.Context, deviceID string, rawPayload []byte) (int64, error)

	// MarkIngestionStored flags an ingestion log once its reading is persisted
	MarkIngestionStored(ctx context.Context, ingestionID int64) error

	// InsertReading persists a sensor reading and returns its id
	InsertReading(ctx context.Context, reading entity.SensorReading) (int64, error)

	// FindRecentByCity returns the newest readings for a city, newest first
	FindRecentByCity(ctx context.Context, city string, limit int) ([]entity.SensorReading, error)
}
