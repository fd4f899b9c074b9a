package cityaqi

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"aqi-api/internal/domain/entity"
	"aqi-api/internal/domain/gateway/api"
	"aqi-api/internal/domain/gateway/cache"
	"aqi-api/internal/domain/model"
	"aqi-api/pkg/log"
	"aqi-api/pkg/msg"
)

const (
	sourceOpenMeteo = "open-meteo"
	dataSourceLabel = "Open-Meteo Air Quality API"

	// candidateSampleSize bounds the hint list on a failed resolution
	candidateSampleSize = 8
)

type cityAQIUseCase struct {
	table         entity.CoordinateTable
	apiGateway    api.AirQualityGateway
	snapshots     cache.SnapshotGateway
	snapshotLimit int
	snapshotTTL   time.Duration
}

func NewCityAQIUseCase(table entity.CoordinateTable, apiGateway api.AirQualityGateway, snapshots cache.SnapshotGateway, snapshotLimit int, snapshotTTL time.Duration) UseCase {
	return &cityAQIUseCase{
		table:         table,
		apiGateway:    apiGateway,
		snapshots:     snapshots,
		snapshotLimit: snapshotLimit,
		snapshotTTL:   snapshotTTL,
	}
}

// CityAQI resolves a city name against the coordinate table and returns
// the latest provider readings for the matched coordinate
func (uc *cityAQIUseCase) CityAQI(ctx context.Context, city string) (*model.CityAQIResponse, error) {
	matched, entry, err := uc.resolveWithCoordinates(city)
	if err != nil {
		return nil, err
	}

	reading, err := uc.apiGateway.LatestByCoordinates(ctx, *entry.Lat, *entry.Lon)
	if err != nil {
		log.Warnw("live AQI provider request failed", zap.String("city", matched), zap.Error(err))
		return nil, model.NewUpstreamUnavailable(err, "failed to fetch live AQI from provider")
	}

	return &model.CityAQIResponse{
		CityRequested: city,
		CityMatched:   matched,
		Lat:           *entry.Lat,
		Lon:           *entry.Lon,
		LatestAQI:     reading.Hourly.LatestUSAQI(),
		Pollutants: model.Pollutants{
			PM25: reading.Hourly.LatestPM25(),
			PM10: reading.Hourly.LatestPM10(),
		},
		Source: sourceOpenMeteo,
	}, nil
}

// LiveAQIByCoords returns the latest readings for an arbitrary coordinate
func (uc *cityAQIUseCase) LiveAQIByCoords(ctx context.Context, lat, lon float64) (*model.LiveAQIResponse, error) {
	reading, err := uc.apiGateway.LatestByCoordinates(ctx, lat, lon)
	if err != nil {
		return nil, model.NewUpstreamUnavailable(err, "failed to fetch from external API")
	}

	hourly := reading.Hourly
	if len(hourly.Time) == 0 {
		return nil, model.NewResolutionMiss("no AQI data available for this location")
	}

	return &model.LiveAQIResponse{
		Status:     "success",
		Location:   model.Location{Lat: lat, Lon: lon},
		DataSource: dataSourceLabel,
		LatestAQI:  hourly.LatestUSAQI(),
		Pollutants: model.FullPollutants{
			PM10:            hourly.LatestPM10(),
			PM25:            hourly.LatestPM25(),
			Ozone:           hourly.LatestOzone(),
			NitrogenDioxide: hourly.LatestNitrogenDioxide(),
			SulphurDioxide:  hourly.LatestSulphurDioxide(),
			CarbonMonoxide:  hourly.LatestCarbonMonoxide(),
		},
	}, nil
}

// GlobalSnapshot returns the cached per-city snapshot built by the scheduler
func (uc *cityAQIUseCase) GlobalSnapshot(ctx context.Context) (model.GlobalSnapshot, error) {
	snapshot, err := uc.snapshots.GetGlobalSnapshot(ctx)
	if err != nil {
		if errors.Is(err, cache.ErrSnapshotNotFound) {
			return nil, model.NewResolutionMiss("global AQI snapshot not available yet")
		}
		return nil, model.NewInternalError(err, "failed to read global AQI snapshot")
	}
	return snapshot, nil
}

// RefreshGlobalSnapshot rebuilds the snapshot for every city in the table and
// stores it in the cache. Cities whose provider call fails keep a slot with
// nil readings so the snapshot stays complete.
func (uc *cityAQIUseCase) RefreshGlobalSnapshot(ctx context.Context, requestID string) error {
	if len(uc.table) == 0 {
		return model.NewInternalError(nil, "city coordinate table not available")
	}

	keys := make([]string, 0, len(uc.table))
	for key := range uc.table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if uc.snapshotLimit > 0 && len(keys) > uc.snapshotLimit {
		keys = keys[:uc.snapshotLimit]
	}

	snapshot := make(model.GlobalSnapshot, len(keys))
	failed := 0
	for _, city := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := uc.table[city]
		if entry.Lat == nil || entry.Lon == nil {
			snapshot[city] = model.CitySnapshotEntry{}
			failed++
			continue
		}

		reading, err := uc.apiGateway.LatestByCoordinates(ctx, *entry.Lat, *entry.Lon)
		if err != nil {
			log.Warnw("snapshot refresh skipped city after provider failure",
				zap.String("requestId", requestID), zap.String("city", city), zap.Error(err))
			snapshot[city] = model.CitySnapshotEntry{}
			failed++
			continue
		}

		snapshot[city] = model.CitySnapshotEntry{
			AQI:  reading.Hourly.LatestUSAQI(),
			PM25: reading.Hourly.LatestPM25(),
			PM10: reading.Hourly.LatestPM10(),
		}
	}

	if err := uc.snapshots.SaveGlobalSnapshot(ctx, snapshot, uc.snapshotTTL); err != nil {
		return model.NewInternalError(err, "failed to store global AQI snapshot")
	}

	log.Info(msg.GetMessage("snapshot.refresh-done", len(snapshot), requestID), zap.Int("failed", failed))
	return nil
}

// RefreshCitySnapshot updates a single city's slot in the cached snapshot
func (uc *cityAQIUseCase) RefreshCitySnapshot(ctx context.Context, city string) error {
	matched, entry, err := uc.resolveWithCoordinates(city)
	if err != nil {
		return err
	}

	reading, err := uc.apiGateway.LatestByCoordinates(ctx, *entry.Lat, *entry.Lon)
	if err != nil {
		return model.NewUpstreamUnavailable(err, "failed to fetch live AQI for '%s'", matched)
	}

	snapshot, err := uc.snapshots.GetGlobalSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, cache.ErrSnapshotNotFound) {
			return model.NewInternalError(err, "failed to read global AQI snapshot")
		}
		snapshot = make(model.GlobalSnapshot, 1)
	}

	snapshot[matched] = model.CitySnapshotEntry{
		AQI:  reading.Hourly.LatestUSAQI(),
		PM25: reading.Hourly.LatestPM25(),
		PM10: reading.Hourly.LatestPM10(),
	}

	if err := uc.snapshots.SaveGlobalSnapshot(ctx, snapshot, uc.snapshotTTL); err != nil {
		return model.NewInternalError(err, "failed to store global AQI snapshot")
	}

	log.Infow("city snapshot refreshed", zap.String("city", matched))
	return nil
}

// resolveWithCoordinates resolves a city and guarantees the matched entry
// carries usable coordinates
func (uc *cityAQIUseCase) resolveWithCoordinates(city string) (string, entity.CityCoordinateEntry, error) {
	if len(uc.table) == 0 {
		return "", entity.CityCoordinateEntry{}, model.NewInternalError(nil, "city coordinate table not available")
	}

	result := Resolve(city, uc.table)
	if result == nil {
		return "", entity.CityCoordinateEntry{}, model.NewResolutionMiss(
			"no coordinate entry found for '%s', closest candidates: %s", city, strings.Join(uc.sampleCities(), ", "))
	}

	if result.Entry.Lat == nil || result.Entry.Lon == nil {
		return "", entity.CityCoordinateEntry{}, model.NewInternalError(nil, "no lat/lon for matched city '%s'", result.MatchedKey)
	}

	return result.MatchedKey, result.Entry, nil
}

// sampleCities returns the first few table keys in sorted order as a hint
// for failed resolutions
func (uc *cityAQIUseCase) sampleCities() []string {
	keys := make([]string, 0, len(uc.table))
	for key := range uc.table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > candidateSampleSize {
		keys = keys[:candidateSampleSize]
	}
	return keys
}
