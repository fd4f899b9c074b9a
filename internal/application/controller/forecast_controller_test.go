package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/model"
)

type fakeForecastUseCase struct {
	hybrid    func(city string, horizonMonths int) (*model.HybridForecastResponse, error)
	prophet   func(city string, horizonDays int) (*model.ProphetForecastResponse, error)
	history   func(city string, periods int) (*model.ForecastHistoryResponse, error)
	shortTerm func(city string, hours int) (*model.ShortTermForecastResponse, error)
	cities    func() ([]string, error)
}

func (u *fakeForecastUseCase) HybridForecast(_ context.Context, city string, horizonMonths int) (*model.HybridForecastResponse, error) {
	return u.hybrid(city, horizonMonths)
}

func (u *fakeForecastUseCase) ProphetForecast(_ context.Context, city string, horizonDays int) (*model.ProphetForecastResponse, error) {
	return u.prophet(city, horizonDays)
}

func (u *fakeForecastUseCase) ForecastHistory(_ context.Context, city string, periods int) (*model.ForecastHistoryResponse, error) {
	return u.history(city, periods)
}

func (u *fakeForecastUseCase) ShortTermForecast(_ context.Context, city string, hours int) (*model.ShortTermForecastResponse, error) {
	return u.shortTerm(city, hours)
}

func (u *fakeForecastUseCase) ListCities(context.Context) ([]string, error) {
	return u.cities()
}

func setupForecastRoutes(useCase *fakeForecastUseCase) *echo.Echo {
	e := echo.New()
	api := e.Group("/api")
	NewForecastController(api, useCase).InitForecastRoutes()
	return e
}

func performRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHybridForecastByPathRejectsNonIntegerHorizon(t *testing.T) {
	e := setupForecastRoutes(&fakeForecastUseCase{
		hybrid: func(string, int) (*model.HybridForecastResponse, error) {
			t.Fatal("use case must not run on invalid input")
			return nil, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/forecast/hybrid/Delhi?horizon=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid horizon")
}

func TestHybridForecastByPathDefaultsHorizon(t *testing.T) {
	var gotHorizon int
	e := setupForecastRoutes(&fakeForecastUseCase{
		hybrid: func(_ string, horizonMonths int) (*model.HybridForecastResponse, error) {
			gotHorizon = horizonMonths
			return &model.HybridForecastResponse{City: "Delhi", HorizonMonths: horizonMonths}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/forecast/hybrid/Delhi", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 24, gotHorizon)
}

func TestHybridForecastPostRequiresCity(t *testing.T) {
	e := setupForecastRoutes(&fakeForecastUseCase{})

	rec := performRequest(e, http.MethodPost, "/api/forecast/hybrid", `{"horizon_months": 3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShortTermAcceptsDeviceIDAsCity(t *testing.T) {
	var gotCity string
	var gotHours int
	e := setupForecastRoutes(&fakeForecastUseCase{
		shortTerm: func(city string, hours int) (*model.ShortTermForecastResponse, error) {
			gotCity = city
			gotHours = hours
			return &model.ShortTermForecastResponse{City: city, Hours: hours}, nil
		},
	})

	rec := performRequest(e, http.MethodPost, "/api/forecast/short_term", `{"device_id": "PORTABLE-01"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PORTABLE-01", gotCity)
	assert.Equal(t, 48, gotHours)
}

func TestShortTermRequiresCityOrDeviceID(t *testing.T) {
	e := setupForecastRoutes(&fakeForecastUseCase{})

	rec := performRequest(e, http.MethodPost, "/api/forecast/short_term", `{"hours": 48}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "city (or device_id) required")
}

func TestForecastHistoryResponseUsesHistoryKey(t *testing.T) {
	e := setupForecastRoutes(&fakeForecastUseCase{
		history: func(city string, periods int) (*model.ForecastHistoryResponse, error) {
			assert.Equal(t, 2, periods)
			return &model.ForecastHistoryResponse{
				City:        city,
				HorizonDays: 60,
				History:     []model.ForecastPoint{{Timestamp: "2023-11-01", AQI: 21}},
			}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/forecast/history/Tokyo?periods=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "history")
	assert.NotContains(t, body, "forecast")
}

func TestForecastErrorContract(t *testing.T) {
	e := setupForecastRoutes(&fakeForecastUseCase{
		prophet: func(string, int) (*model.ProphetForecastResponse, error) {
			return nil, model.NewUpstreamUnavailable(nil, "daily forecast unavailable: ml server down")
		},
	})

	rec := performRequest(e, http.MethodPost, "/api/forecast/prophet", `{"city": "Delhi"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "daily forecast unavailable")
}

func TestListCitiesEndpoint(t *testing.T) {
	e := setupForecastRoutes(&fakeForecastUseCase{
		cities: func() ([]string, error) {
			return []string{"Delhi_India", "Tokyo_Japan"}, nil
		},
	})

	rec := performRequest(e, http.MethodGet, "/api/cities", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var cities []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
	assert.Equal(t, []string{"Delhi_India", "Tokyo_Japan"}, cities)
}
