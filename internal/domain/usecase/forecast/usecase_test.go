package forecast

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/model"
)

type fakeForecastGateway struct {
	hybrid    func(city string, horizonMonths int) (any, int, error)
	prophet   func(city string, horizonDays int) (any, int, error)
	shortTerm func(city string, hours int) (any, int, error)
	cities    func() (any, int, error)

	hybridCalls int
}

func (g *fakeForecastGateway) HybridForecast(_ context.Context, city string, horizonMonths int) (any, int, error) {
	g.hybridCalls++
	return g.hybrid(city, horizonMonths)
}

func (g *fakeForecastGateway) ProphetForecast(_ context.Context, city string, horizonDays int) (any, int, error) {
	return g.prophet(city, horizonDays)
}

func (g *fakeForecastGateway) ShortTermForecast(_ context.Context, city string, hours int) (any, int, error) {
	return g.shortTerm(city, hours)
}

func (g *fakeForecastGateway) ListCities(_ context.Context) (any, int, error) {
	return g.cities()
}

func newTestUseCase(gateway *fakeForecastGateway) *forecastUseCase {
	return &forecastUseCase{
		apiGateway: gateway,
		now: func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		},
	}
}

func errorPayload(message string) map[string]any {
	return map[string]any{"error": message}
}

func monthlyPayload(value float64) map[string]any {
	return map[string]any{
		"forecast": []any{
			map[string]any{"date": "2024-01-01", "predicted_aqi": value},
		},
	}
}

func TestShortTermFallbackExpandsHybridForecast(t *testing.T) {
	var hybridHorizon int
	gateway := &fakeForecastGateway{
		shortTerm: func(string, int) (any, int, error) {
			return errorPayload("No short-term model for Delhi"), 404, nil
		},
		hybrid: func(_ string, horizonMonths int) (any, int, error) {
			hybridHorizon = horizonMonths
			return monthlyPayload(42.0), 200, nil
		},
	}

	response, err := newTestUseCase(gateway).ShortTermForecast(context.Background(), "Delhi", 48)

	require.NoError(t, err)
	assert.Equal(t, 1, hybridHorizon)
	assert.Equal(t, "fallback_hybrid", response.Source)
	require.Len(t, response.Forecast, 48)
	for _, point := range response.Forecast {
		assert.Equal(t, 42.0, point.AQI)
	}
	assert.Equal(t, "2024-01-01T00:00:00Z", response.Forecast[0].Timestamp)
	assert.Equal(t, "2024-01-01T01:00:00Z", response.Forecast[1].Timestamp)
	assert.Equal(t, "2024-01-02T23:00:00Z", response.Forecast[47].Timestamp)
}

func TestShortTermPrimaryTransportFailureTriggersFallback(t *testing.T) {
	gateway := &fakeForecastGateway{
		shortTerm: func(string, int) (any, int, error) {
			return nil, 0, errors.New("connection timed out")
		},
		hybrid: func(string, int) (any, int, error) {
			return monthlyPayload(17.0), 200, nil
		},
	}

	response, err := newTestUseCase(gateway).ShortTermForecast(context.Background(), "Delhi", 24)

	require.NoError(t, err)
	assert.Equal(t, "fallback_hybrid", response.Source)
	assert.Len(t, response.Forecast, 24)
}

func TestShortTermDomainErrorIsRejectedWithoutFallback(t *testing.T) {
	gateway := &fakeForecastGateway{
		shortTerm: func(string, int) (any, int, error) {
			return errorPayload("database timeout"), 500, nil
		},
		hybrid: func(string, int) (any, int, error) {
			t.Fatal("fallback must not run for a rejected reply")
			return nil, 0, nil
		},
	}

	_, err := newTestUseCase(gateway).ShortTermForecast(context.Background(), "Delhi", 48)

	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.KindUpstreamRejected, domainErr.Kind)
	assert.Contains(t, err.Error(), "database timeout")
	assert.Equal(t, http.StatusBadGateway, model.HTTPStatus(err))
	assert.Equal(t, 0, gateway.hybridCalls)
}

func TestShortTermBothPathsFailing(t *testing.T) {
	gateway := &fakeForecastGateway{
		shortTerm: func(string, int) (any, int, error) {
			return nil, 0, errors.New("primary down")
		},
		hybrid: func(string, int) (any, int, error) {
			return nil, 0, errors.New("secondary down")
		},
	}

	_, err := newTestUseCase(gateway).ShortTermForecast(context.Background(), "Delhi", 48)

	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.KindUpstreamUnavailable, domainErr.Kind)
	assert.Contains(t, err.Error(), "short-term forecast unavailable")
	assert.Equal(t, http.StatusBadGateway, model.HTTPStatus(err))
}

func TestShortTermEmptyPrimaryFallsThrough(t *testing.T) {
	gateway := &fakeForecastGateway{
		shortTerm: func(string, int) (any, int, error) {
			return map[string]any{"forecast": []any{}}, 200, nil
		},
		hybrid: func(string, int) (any, int, error) {
			return monthlyPayload(9.0), 200, nil
		},
	}

	response, err := newTestUseCase(gateway).ShortTermForecast(context.Background(), "Delhi", 12)

	require.NoError(t, err)
	assert.Equal(t, "fallback_hybrid", response.Source)
	assert.Len(t, response.Forecast, 12)
}

func TestHybridForecastNormalizesPayload(t *testing.T) {
	gateway := &fakeForecastGateway{
		hybrid: func(city string, horizonMonths int) (any, int, error) {
			assert.Equal(t, "Tokyo", city)
			assert.Equal(t, 3, horizonMonths)
			return map[string]any{"forecast": []any{
				map[string]any{"date": "2024-01-01", "predicted_aqi": 31.0},
				map[string]any{"date": "2024-02-01", "predicted_aqi": 35.5},
			}}, 200, nil
		},
	}

	response, err := newTestUseCase(gateway).HybridForecast(context.Background(), "Tokyo", 3)

	require.NoError(t, err)
	assert.Equal(t, "Tokyo", response.City)
	assert.Equal(t, 3, response.HorizonMonths)
	require.Len(t, response.Forecast, 2)
	assert.Equal(t, model.ForecastPoint{Timestamp: "2024-01-01", AQI: 31.0}, response.Forecast[0])
}

func TestHybridForecastHasNoFallback(t *testing.T) {
	gateway := &fakeForecastGateway{
		hybrid: func(string, int) (any, int, error) {
			return nil, 0, errors.New("ml server down")
		},
	}

	_, err := newTestUseCase(gateway).HybridForecast(context.Background(), "Tokyo", 3)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, model.HTTPStatus(err))
}

func TestProphetFallbackStampsDailyDates(t *testing.T) {
	gateway := &fakeForecastGateway{
		prophet: func(string, int) (any, int, error) {
			return errorPayload("short_term error: model file missing"), 200, nil
		},
		hybrid: func(string, int) (any, int, error) {
			return monthlyPayload(60.0), 200, nil
		},
	}

	response, err := newTestUseCase(gateway).ProphetForecast(context.Background(), "Delhi", 7)

	require.NoError(t, err)
	assert.Equal(t, "fallback_hybrid", response.Source)
	require.Len(t, response.Forecast, 7)
	assert.Equal(t, "2024-01-01", response.Forecast[0].Timestamp)
	assert.Equal(t, "2024-01-07", response.Forecast[6].Timestamp)
}

func TestForecastHistoryRelabelsAndDerivesHorizon(t *testing.T) {
	var requestedDays int
	gateway := &fakeForecastGateway{
		prophet: func(_ string, horizonDays int) (any, int, error) {
			requestedDays = horizonDays
			return map[string]any{"forecast": []any{
				map[string]any{"ds": "2023-11-01", "yhat": 21.0},
				map[string]any{"ds": "2023-11-02", "yhat": 22.0},
			}}, 200, nil
		},
	}

	response, err := newTestUseCase(gateway).ForecastHistory(context.Background(), "Tokyo", 2)

	require.NoError(t, err)
	assert.Equal(t, 60, requestedDays)
	assert.Equal(t, 60, response.HorizonDays)
	require.Len(t, response.History, 2)
	assert.Equal(t, "2023-11-01", response.History[0].Timestamp)
}

func TestListCitiesShapes(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		expected []string
	}{
		{
			name:     "bare list",
			payload:  []any{"Delhi_India", "Tokyo_Japan"},
			expected: []string{"Delhi_India", "Tokyo_Japan"},
		},
		{
			name:     "cities object",
			payload:  map[string]any{"cities": []any{"Delhi_India"}},
			expected: []string{"Delhi_India"},
		},
		{
			name:     "keyed object sorted",
			payload:  map[string]any{"Tokyo_Japan": 1, "Delhi_India": 2},
			expected: []string{"Delhi_India", "Tokyo_Japan"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &fakeForecastGateway{
				cities: func() (any, int, error) { return tc.payload, 200, nil },
			}

			cities, err := newTestUseCase(gateway).ListCities(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.expected, cities)
		})
	}
}

func TestListCitiesUpstreamError(t *testing.T) {
	gateway := &fakeForecastGateway{
		cities: func() (any, int, error) {
			return errorPayload("model registry offline"), 503, nil
		},
	}

	_, err := newTestUseCase(gateway).ListCities(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, model.HTTPStatus(err))
	assert.Contains(t, err.Error(), "model registry offline")
}
