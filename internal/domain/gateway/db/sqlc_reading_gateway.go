package db

import (
	"context"
	"database/sql"

	"aqi-api/internal/domain/entity"
)

type SQLCReadingGateway struct {
	DB *sql.DB
}

var _ ReadingGateway = (*SQLCReadingGateway)(nil)

func NewSQLCReadingGateway(db *sql.DB) *SQLCReadingGateway {
	return &SQLCReadingGateway{DB: db}
}

// InsertIngestionLog records the raw payload before validation and returns the log id
func (gateway *SQLCReadingGateway) InsertIngestionLog(ctx context.Context, deviceID string, rawPayload []byte) (int64, error) {
	query := `
		INSERT INTO ingestion_logs
			(device_id, raw_payload, received_at, validated, validation_errors, stored_in_readings)
		VALUES ($1, $2, NOW(), TRUE, NULL, FALSE)
		RETURNING id`

	var ingestionID int64
	err := gateway.DB.QueryRowContext(ctx, query, deviceID, string(rawPayload)).Scan(&ingestionID)
	if err != nil {
		return 0, err
	}

	return ingestionID, nil
}

// MarkIngestionStored flags an ingestion log once its reading is persisted
func (gateway *SQLCReadingGateway) MarkIngestionStored(ctx context.Context, ingestionID int64) error {
	query := `
		UPDATE ingestion_logs
		SET stored_in_readings = TRUE
		WHERE id = $1`

	_, err := gateway.DB.ExecContext(ctx, query, ingestionID)
	return err
}

// InsertReading persists a sensor reading and returns its id
func (gateway *SQLCReadingGateway) InsertReading(ctx context.Context, reading entity.SensorReading) (int64, error) {
	query := `
		INSERT INTO sensor_readings (
			device_id, device_type, city, timestamp,
			pm25, pm10, co2,
			temperature, humidity, voc_ppm,
			latitude, longitude,
			measurements, meta, created_at
		)
		VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			$11, $12,
			CAST($13 AS JSONB), CAST($14 AS JSONB), NOW()
		)
		RETURNING id`

	var readingID int64
	err := gateway.DB.QueryRowContext(ctx, query,
		reading.DeviceID,
		reading.DeviceType,
		nullString(reading.City),
		reading.Timestamp,
		reading.PM25,
		reading.PM10,
		reading.CO2,
		reading.Temperature,
		reading.Humidity,
		reading.VOCPPM,
		reading.Latitude,
		reading.Longitude,
		reading.Measurements,
		reading.Meta,
	).Scan(&readingID)
	if err != nil {
		return 0, err
	}

	return readingID, nil
}

// FindRecentByCity returns the newest readings for a city, newest first
func (gateway *SQLCReadingGateway) FindRecentByCity(ctx context.Context, city string, limit int) ([]entity.SensorReading, error) {
	query := `
		SELECT r.id, r.device_id, COALESCE(r.device_type, ''), COALESCE(r.city, ''), r.timestamp,
			r.pm25, r.pm10, r.co2,
			r.temperature, r.humidity, r.voc_ppm,
			r.latitude, r.longitude,
			COALESCE(r.measurements::text, '{}'), COALESCE(r.meta::text, '{}'), r.created_at
		FROM sensor_readings r
		WHERE r.city ILIKE $1
		ORDER BY r.timestamp DESC
		LIMIT $2`

	rows, err := gateway.DB.QueryContext(ctx, query, city, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]entity.SensorReading, 0)
	for rows.Next() {
		var reading entity.SensorReading
		if err := rows.Scan(
			&reading.ID,
			&reading.DeviceID,
			&reading.DeviceType,
			&reading.City,
			&reading.Timestamp,
			&reading.PM25,
			&reading.PM10,
			&reading.CO2,
			&reading.Temperature,
			&reading.Humidity,
			&reading.VOCPPM,
			&reading.Latitude,
			&reading.Longitude,
			&reading.Measurements,
			&reading.Meta,
			&reading.CreatedAt,
		); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
