package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/model"
)

type fakeCityAQIUseCase struct {
	cityAQI  func(city string) (*model.CityAQIResponse, error)
	liveAQI  func(lat, lon float64) (*model.LiveAQIResponse, error)
	snapshot func() (model.GlobalSnapshot, error)
}

func (u *fakeCityAQIUseCase) CityAQI(_ context.Context, city string) (*model.CityAQIResponse, error) {
	return u.cityAQI(city)
}

func (u *fakeCityAQIUseCase) LiveAQIByCoords(_ context.Context, lat, lon float64) (*model.LiveAQIResponse, error) {
	return u.liveAQI(lat, lon)
}

func (u *fakeCityAQIUseCase) GlobalSnapshot(context.Context) (model.GlobalSnapshot, error) {
	return u.snapshot()
}

func (u *fakeCityAQIUseCase) RefreshGlobalSnapshot(context.Context, string) error { return nil }

func (u *fakeCityAQIUseCase) RefreshCitySnapshot(context.Context, string) error { return nil }

func setupCityAQIRoutes(useCase *fakeCityAQIUseCase) *echo.Echo {
	e := echo.New()
	api := e.Group("/api")
	NewCityAQIController(api, useCase).InitCityAQIRoutes()
	return e
}

func TestCityAQIEndpoint(t *testing.T) {
	aqi := 155.0
	e := setupCityAQIRoutes(&fakeCityAQIUseCase{
		cityAQI: func(city string) (*model.CityAQIResponse, error) {
			assert.Equal(t, "delhi", city)
			return &model.CityAQIResponse{
				CityRequested: city,
				CityMatched:   "Delhi_India",
				LatestAQI:     &aqi,
				Source:        "open-meteo",
			}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/city_aqi/delhi", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body model.CityAQIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Delhi_India", body.CityMatched)
}

func TestCityAQIMissReturns404(t *testing.T) {
	e := setupCityAQIRoutes(&fakeCityAQIUseCase{
		cityAQI: func(city string) (*model.CityAQIResponse, error) {
			return nil, model.NewResolutionMiss("no coordinate entry found for '%s'", city)
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/city_aqi/Qqzz", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestLiveAQICoordsRequiresBothCoordinates(t *testing.T) {
	e := setupCityAQIRoutes(&fakeCityAQIUseCase{
		liveAQI: func(float64, float64) (*model.LiveAQIResponse, error) {
			t.Fatal("use case must not run without coordinates")
			return nil, nil
		},
	})

	for _, target := range []string{
		"/api/live_aqi_coords",
		"/api/live_aqi_coords?lat=12.5",
		"/api/live_aqi_coords?lon=77.1",
		"/api/live_aqi_coords?lat=abc&lon=77.1",
	} {
		rec := performRequest(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target: %s", target)
		assert.Contains(t, rec.Body.String(), "Latitude and longitude required")
	}
}

func TestLiveAQICoordsPassesCoordinates(t *testing.T) {
	e := setupCityAQIRoutes(&fakeCityAQIUseCase{
		liveAQI: func(lat, lon float64) (*model.LiveAQIResponse, error) {
			assert.Equal(t, 12.5, lat)
			assert.Equal(t, 77.1, lon)
			return &model.LiveAQIResponse{Status: "success"}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/live_aqi_coords?lat=12.5&lon=77.1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGlobalAQIColdSnapshotIs404(t *testing.T) {
	e := setupCityAQIRoutes(&fakeCityAQIUseCase{
		snapshot: func() (model.GlobalSnapshot, error) {
			return nil, model.NewResolutionMiss("global AQI snapshot not available yet")
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/global_aqi", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGlobalAQIServesSnapshot(t *testing.T) {
	aqi := 101.0
	e := setupCityAQIRoutes(&fakeCityAQIUseCase{
		snapshot: func() (model.GlobalSnapshot, error) {
			return model.GlobalSnapshot{"Delhi_India": {AQI: &aqi}}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/global_aqi", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body model.GlobalSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "Delhi_India")
	assert.Equal(t, 101.0, *body["Delhi_India"].AQI)
}
