package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aqi-api/internal/domain/entity"
	"aqi-api/internal/domain/gateway/db"
	"aqi-api/internal/domain/gateway/queue"
	"aqi-api/internal/domain/model"
	"aqi-api/pkg/log"
	"aqi-api/pkg/msg"
)

const (
	defaultDeviceType = "portable"

	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type ingestUseCase struct {
	queueName   string
	dbGateway   db.ReadingGateway
	queueSender queue.Sender
	now         func() time.Time
}

func NewIngestUseCase(queueName string, dbGateway db.ReadingGateway, queueSender queue.Sender) UseCase {
	return &ingestUseCase{
		queueName:   queueName,
		dbGateway:   dbGateway,
		queueSender: queueSender,
		now:         time.Now,
	}
}

// Ingest validates and persists one sensor reading together with its
// ingestion audit log, then hands the city off for a snapshot refresh.
//
// The audit log, the stored flag update and the queue hand-off are all
// best-effort. Only the reading insert itself fails the request.
func (uc *ingestUseCase) Ingest(ctx context.Context, request model.SensorReadingRequest, rawPayload []byte) (*model.SensorIngestResponse, error) {
	if request.DeviceID == "" {
		return nil, model.NewInputError("device_id is required")
	}

	ingestionID, err := uc.dbGateway.InsertIngestionLog(ctx, request.DeviceID, rawPayload)
	if err != nil {
		log.Errorw("failed to write ingestion log, storing reading anyway",
			zap.String("deviceId", request.DeviceID), zap.Error(err))
		ingestionID = 0
	}

	readingID, err := uc.dbGateway.InsertReading(ctx, uc.buildReading(request))
	if err != nil {
		return nil, model.NewInternalError(err, "database insert failed")
	}

	if ingestionID != 0 {
		if err := uc.dbGateway.MarkIngestionStored(ctx, ingestionID); err != nil {
			log.Warnw("failed to flag ingestion log as stored",
				zap.Int64("ingestionId", ingestionID), zap.Error(err))
		}
	}

	log.Info(msg.GetMessage("ingest.stored", readingID, request.DeviceID))
	uc.enqueueSnapshotRefresh(ctx, readingID, request.City)

	return &model.SensorIngestResponse{
		Status:      "ok",
		ReadingID:   readingID,
		IngestionID: ingestionID,
	}, nil
}

// History returns the newest stored readings for a city
func (uc *ingestUseCase) History(ctx context.Context, city string, limit int) ([]entity.SensorReading, error) {
	if city == "" {
		return nil, model.NewInputError("city is required")
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	readings, err := uc.dbGateway.FindRecentByCity(ctx, city, limit)
	if err != nil {
		return nil, model.NewInternalError(err, "failed to load sensor history for '%s'", city)
	}
	return readings, nil
}

// buildReading flattens the request into a storable reading, filling firmware
// aliases and defaults
func (uc *ingestUseCase) buildReading(request model.SensorReadingRequest) entity.SensorReading {
	deviceType := request.DeviceType
	if deviceType == "" {
		deviceType = defaultDeviceType
	}

	timestamp := request.Timestamp
	if timestamp == "" {
		timestamp = uc.now().UTC().Format(time.RFC3339)
	}

	return entity.SensorReading{
		DeviceID:     request.DeviceID,
		DeviceType:   deviceType,
		City:         request.City,
		Timestamp:    timestamp,
		PM25:         request.Sensors.PM25,
		PM10:         request.Sensors.PM10,
		CO2:          request.Sensors.CO2,
		Temperature:  request.Sensors.Temperature,
		Humidity:     request.Sensors.Humidity,
		VOCPPM:       firstValue(request.Sensors.VOCPPM, request.Sensors.VOC),
		Latitude:     firstValue(request.Sensors.Latitude, request.Sensors.Lat),
		Longitude:    firstValue(request.Sensors.Longitude, request.Sensors.Lon),
		Measurements: marshalOrEmpty(request.Sensors),
		Meta:         marshalMeta(request.Meta),
	}
}

// enqueueSnapshotRefresh asks the snapshot worker to refresh the reading's
// city. Readings without a city have nothing to refresh.
func (uc *ingestUseCase) enqueueSnapshotRefresh(ctx context.Context, readingID int64, city string) {
	if city == "" {
		return
	}

	message := model.SnapshotRefreshMessage{
		City:      city,
		RequestID: uuid.NewString(),
	}
	if err := uc.queueSender.SendMessage(ctx, uc.queueName, message); err != nil {
		log.Warn(msg.GetMessage("ingest.enqueue-fail", readingID, err))
	}
}

func firstValue(values ...*float64) *float64 {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func marshalOrEmpty(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func marshalMeta(meta map[string]any) string {
	if len(meta) == 0 {
		return "{}"
	}
	return marshalOrEmpty(meta)
}
