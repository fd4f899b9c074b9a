package forecast

import (
	"context"
	"sort"
	"time"

	"aqi-api/internal/domain/gateway/api"
	"aqi-api/internal/domain/model"
)

const (
	sourcePrimary        = "ml_server"
	sourceFallbackHybrid = "fallback_hybrid"

	// hoursPerCoarseUnit converts an hourly horizon to months, assuming
	// thirty-day months like the rest of the resampling policy does
	hoursPerCoarseUnit = 24 * 30
)

type forecastUseCase struct {
	apiGateway api.ForecastGateway
	now        func() time.Time
}

func NewForecastUseCase(apiGateway api.ForecastGateway) UseCase {
	return &forecastUseCase{
		apiGateway: apiGateway,
		now:        time.Now,
	}
}

// HybridForecast returns the canonical monthly forecast for a city
func (uc *forecastUseCase) HybridForecast(ctx context.Context, city string, horizonMonths int) (*model.HybridForecastResponse, error) {
	payload, status, err := uc.apiGateway.HybridForecast(ctx, city, horizonMonths)

	outcome, message := classifyReply(payload, status, err)
	switch outcome {
	case replyUnavailable:
		return nil, model.NewUpstreamUnavailable(err, "hybrid forecast unavailable: %s", message)
	case replyRejected:
		return nil, model.NewUpstreamRejected("%s", message)
	}

	return &model.HybridForecastResponse{
		City:          city,
		HorizonMonths: horizonMonths,
		Forecast:      normalizeSeries(payload),
	}, nil
}

// ProphetForecast returns the canonical daily forecast for a city,
// degrading to an expanded hybrid forecast when the daily model is unavailable
func (uc *forecastUseCase) ProphetForecast(ctx context.Context, city string, horizonDays int) (*model.ProphetForecastResponse, error) {
	start := uc.now()

	chain := &fallbackChain{
		label:            "daily",
		amount:           horizonDays,
		periodsPerCoarse: pointsPerCoarseUnit,
		primary: func(ctx context.Context, amount int) (any, int, error) {
			return uc.apiGateway.ProphetForecast(ctx, city, amount)
		},
		secondary: func(ctx context.Context, amount int) (any, int, error) {
			return uc.apiGateway.HybridForecast(ctx, city, amount)
		},
		stampFallbackPoint: func(index int) string {
			return start.AddDate(0, 0, index).Format("2006-01-02")
		},
	}

	result, err := chain.run(ctx)
	if err != nil {
		return nil, err
	}

	return &model.ProphetForecastResponse{
		City:        city,
		HorizonDays: horizonDays,
		Source:      result.source,
		Forecast:    result.points,
	}, nil
}

// ForecastHistory returns the daily series relabeled as history. There is no
// fallback here: the history view is only meaningful from the daily model.
func (uc *forecastUseCase) ForecastHistory(ctx context.Context, city string, periods int) (*model.ForecastHistoryResponse, error) {
	horizonDays := periods * pointsPerCoarseUnit

	payload, status, err := uc.apiGateway.ProphetForecast(ctx, city, horizonDays)

	outcome, message := classifyReply(payload, status, err)
	switch outcome {
	case replyUnavailable:
		return nil, model.NewUpstreamUnavailable(err, "forecast history unavailable: %s", message)
	case replyRejected:
		return nil, model.NewUpstreamRejected("%s", message)
	}

	return &model.ForecastHistoryResponse{
		City:        city,
		HorizonDays: horizonDays,
		History:     normalizeSeries(payload),
	}, nil
}

// ShortTermForecast returns the canonical hourly forecast for a city,
// degrading to an expanded hybrid forecast when the hourly model is unavailable
func (uc *forecastUseCase) ShortTermForecast(ctx context.Context, city string, hours int) (*model.ShortTermForecastResponse, error) {
	start := uc.now().Truncate(time.Hour)

	chain := &fallbackChain{
		label:            "short-term",
		amount:           hours,
		periodsPerCoarse: hoursPerCoarseUnit,
		primary: func(ctx context.Context, amount int) (any, int, error) {
			return uc.apiGateway.ShortTermForecast(ctx, city, amount)
		},
		secondary: func(ctx context.Context, amount int) (any, int, error) {
			return uc.apiGateway.HybridForecast(ctx, city, amount)
		},
		stampFallbackPoint: func(index int) string {
			return start.Add(time.Duration(index) * time.Hour).Format(time.RFC3339)
		},
	}

	result, err := chain.run(ctx)
	if err != nil {
		return nil, err
	}

	return &model.ShortTermForecastResponse{
		City:     city,
		Hours:    hours,
		Source:   result.source,
		Forecast: result.points,
	}, nil
}

// ListCities returns the cities the ML server has models for. The server
// answers either a bare list, an object with a cities list, or an object
// keyed by city name.
func (uc *forecastUseCase) ListCities(ctx context.Context) ([]string, error) {
	payload, status, err := uc.apiGateway.ListCities(ctx)
	if err != nil {
		return nil, model.NewUpstreamUnavailable(err, "ml server unavailable: %v", err)
	}

	if status != 200 {
		message := upstreamMessage(payload)
		if message == "" {
			return nil, model.NewUpstreamRejected("ml server status %d", status)
		}
		return nil, model.NewUpstreamRejected("%s", message)
	}

	switch cities := payload.(type) {
	case []any:
		return stringList(cities), nil
	case map[string]any:
		if list, ok := cities["cities"].([]any); ok {
			return stringList(list), nil
		}
		names := make([]string, 0, len(cities))
		for name := range cities {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	default:
		return nil, model.NewUpstreamRejected("ml server returned unexpected city list shape")
	}
}

func stringList(values []any) []string {
	list := make([]string, 0, len(values))
	for _, value := range values {
		if name, ok := value.(string); ok {
			list = append(list, name)
		}
	}
	return list
}
