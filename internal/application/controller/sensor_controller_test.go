package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/entity"
	"aqi-api/internal/domain/model"
)

type fakeIngestUseCase struct {
	ingest  func(request model.SensorReadingRequest, raw []byte) (*model.SensorIngestResponse, error)
	history func(city string, limit int) ([]entity.SensorReading, error)
}

func (u *fakeIngestUseCase) Ingest(_ context.Context, request model.SensorReadingRequest, raw []byte) (*model.SensorIngestResponse, error) {
	return u.ingest(request, raw)
}

func (u *fakeIngestUseCase) History(_ context.Context, city string, limit int) ([]entity.SensorReading, error) {
	return u.history(city, limit)
}

func setupSensorRoutes(useCase *fakeIngestUseCase) *echo.Echo {
	e := echo.New()
	api := e.Group("/api")
	NewSensorController(api, useCase).InitSensorRoutes()
	return e
}

func TestUploadReadingReturns201(t *testing.T) {
	payload := `{"device_id": "PORTABLE-01", "city": "Delhi_India", "sensors": {"pm25": 12.5}}`
	e := setupSensorRoutes(&fakeIngestUseCase{
		ingest: func(request model.SensorReadingRequest, raw []byte) (*model.SensorIngestResponse, error) {
			assert.Equal(t, "PORTABLE-01", request.DeviceID)
			assert.Equal(t, payload, string(raw))
			return &model.SensorIngestResponse{Status: "ok", ReadingID: 42, IngestionID: 7}, nil
		},
	})

	rec := performRequest(e, http.MethodPost, "/api/sensors/readings", payload)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body model.SensorIngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ReadingID)
}

func TestUploadReadingRejectsEmptyBody(t *testing.T) {
	e := setupSensorRoutes(&fakeIngestUseCase{})

	rec := performRequest(e, http.MethodPost, "/api/sensors/readings", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No payload provided")
}

func TestUploadReadingRejectsMalformedJSON(t *testing.T) {
	e := setupSensorRoutes(&fakeIngestUseCase{})

	rec := performRequest(e, http.MethodPost, "/api/sensors/readings", `{"device_id": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON")
}

func TestUploadReadingMapsDomainErrors(t *testing.T) {
	e := setupSensorRoutes(&fakeIngestUseCase{
		ingest: func(model.SensorReadingRequest, []byte) (*model.SensorIngestResponse, error) {
			return nil, model.NewInternalError(nil, "database insert failed")
		},
	})

	rec := performRequest(e, http.MethodPost, "/api/sensors/readings", `{"device_id": "PORTABLE-01"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "database insert failed")
}

func TestSensorHistoryPassesCityAndLimit(t *testing.T) {
	e := setupSensorRoutes(&fakeIngestUseCase{
		history: func(city string, limit int) ([]entity.SensorReading, error) {
			assert.Equal(t, "Delhi_India", city)
			assert.Equal(t, 10, limit)
			return []entity.SensorReading{{ID: 1, City: city}}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/sensors/history/Delhi_India?limit=10", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var readings []entity.SensorReading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &readings))
	require.Len(t, readings, 1)
	assert.Equal(t, int64(1), readings[0].ID)
}
