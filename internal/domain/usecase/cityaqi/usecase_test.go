package cityaqi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/entity"
	"aqi-api/internal/domain/gateway/cache"
	"aqi-api/internal/domain/model"
	"aqi-api/internal/domain/model/external"
)

type fakeAirQualityGateway struct {
	latest func(lat, lon float64) (*external.AirQualityResponse, error)
	calls  int
}

func (g *fakeAirQualityGateway) LatestByCoordinates(_ context.Context, lat, lon float64) (*external.AirQualityResponse, error) {
	g.calls++
	return g.latest(lat, lon)
}

type fakeSnapshotGateway struct {
	snapshot model.GlobalSnapshot
	saveErr  error
	savedTTL time.Duration
}

func (g *fakeSnapshotGateway) GetGlobalSnapshot(context.Context) (model.GlobalSnapshot, error) {
	if g.snapshot == nil {
		return nil, cache.ErrSnapshotNotFound
	}
	return g.snapshot, nil
}

func (g *fakeSnapshotGateway) SaveGlobalSnapshot(_ context.Context, snapshot model.GlobalSnapshot, ttl time.Duration) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.snapshot = snapshot
	g.savedTTL = ttl
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func hourlyReading(aqi, pm25, pm10 float64) *external.AirQualityResponse {
	return &external.AirQualityResponse{
		Hourly: external.AirQualityHourly{
			Time:  []string{"2024-01-01T00:00", "2024-01-01T01:00"},
			USAQI: []*float64{floatPtr(10), floatPtr(aqi)},
			PM25:  []*float64{floatPtr(1), floatPtr(pm25)},
			PM10:  []*float64{floatPtr(2), floatPtr(pm10)},
		},
	}
}

func testTable() entity.CoordinateTable {
	return entity.CoordinateTable{
		"Delhi_India": coordinate(28.61, 77.2),
		"Tokyo_Japan": coordinate(35.67, 139.65),
	}
}

func newCityAQITest(table entity.CoordinateTable, gateway *fakeAirQualityGateway, snapshots *fakeSnapshotGateway) UseCase {
	return NewCityAQIUseCase(table, gateway, snapshots, 300, time.Hour)
}

func TestCityAQIResolvesAndReturnsLatestReadings(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(lat, lon float64) (*external.AirQualityResponse, error) {
			assert.Equal(t, 28.61, lat)
			assert.Equal(t, 77.2, lon)
			return hourlyReading(155, 78.5, 120), nil
		},
	}

	response, err := newCityAQITest(testTable(), gateway, &fakeSnapshotGateway{}).CityAQI(context.Background(), "delhi")

	require.NoError(t, err)
	assert.Equal(t, "delhi", response.CityRequested)
	assert.Equal(t, "Delhi_India", response.CityMatched)
	assert.Equal(t, 28.61, response.Lat)
	assert.Equal(t, 77.2, response.Lon)
	require.NotNil(t, response.LatestAQI)
	assert.Equal(t, 155.0, *response.LatestAQI)
	require.NotNil(t, response.Pollutants.PM25)
	assert.Equal(t, 78.5, *response.Pollutants.PM25)
	assert.Equal(t, "open-meteo", response.Source)
}

func TestCityAQINoMatchIs404(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(float64, float64) (*external.AirQualityResponse, error) {
			t.Fatal("provider must not be called without a resolved city")
			return nil, nil
		},
	}

	_, err := newCityAQITest(testTable(), gateway, &fakeSnapshotGateway{}).CityAQI(context.Background(), "Qqzz")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, model.HTTPStatus(err))
	assert.Contains(t, err.Error(), "closest candidates")
}

func TestCityAQIEmptyTableIs500(t *testing.T) {
	gateway := &fakeAirQualityGateway{}

	_, err := newCityAQITest(entity.CoordinateTable{}, gateway, &fakeSnapshotGateway{}).CityAQI(context.Background(), "Delhi")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, model.HTTPStatus(err))
}

func TestCityAQIProviderFailureIs502(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(float64, float64) (*external.AirQualityResponse, error) {
			return nil, errors.New("provider timeout")
		},
	}

	_, err := newCityAQITest(testTable(), gateway, &fakeSnapshotGateway{}).CityAQI(context.Background(), "Delhi")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, model.HTTPStatus(err))
}

func TestLiveAQIByCoordsReturnsFullPollutants(t *testing.T) {
	reading := hourlyReading(90, 30, 60)
	reading.Hourly.Ozone = []*float64{floatPtr(40)}
	reading.Hourly.CarbonMonoxide = []*float64{floatPtr(0.4)}
	gateway := &fakeAirQualityGateway{
		latest: func(float64, float64) (*external.AirQualityResponse, error) {
			return reading, nil
		},
	}

	response, err := newCityAQITest(testTable(), gateway, &fakeSnapshotGateway{}).LiveAQIByCoords(context.Background(), 12.5, 77.1)

	require.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, model.Location{Lat: 12.5, Lon: 77.1}, response.Location)
	assert.Equal(t, "Open-Meteo Air Quality API", response.DataSource)
	require.NotNil(t, response.LatestAQI)
	assert.Equal(t, 90.0, *response.LatestAQI)
	require.NotNil(t, response.Pollutants.Ozone)
	assert.Equal(t, 40.0, *response.Pollutants.Ozone)
	assert.Nil(t, response.Pollutants.NitrogenDioxide)
}

func TestLiveAQIByCoordsNoDataIs404(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(float64, float64) (*external.AirQualityResponse, error) {
			return &external.AirQualityResponse{}, nil
		},
	}

	_, err := newCityAQITest(testTable(), gateway, &fakeSnapshotGateway{}).LiveAQIByCoords(context.Background(), 0, 0)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, model.HTTPStatus(err))
}

func TestGlobalSnapshotColdCacheIs404(t *testing.T) {
	useCase := newCityAQITest(testTable(), &fakeAirQualityGateway{}, &fakeSnapshotGateway{})

	_, err := useCase.GlobalSnapshot(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, model.HTTPStatus(err))
}

func TestGlobalSnapshotServedFromCache(t *testing.T) {
	snapshots := &fakeSnapshotGateway{
		snapshot: model.GlobalSnapshot{
			"Delhi_India": {AQI: floatPtr(155)},
		},
	}

	snapshot, err := newCityAQITest(testTable(), &fakeAirQualityGateway{}, snapshots).GlobalSnapshot(context.Background())

	require.NoError(t, err)
	require.Contains(t, snapshot, "Delhi_India")
	assert.Equal(t, 155.0, *snapshot["Delhi_India"].AQI)
}

func TestRefreshGlobalSnapshotStoresEveryCity(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(lat, _ float64) (*external.AirQualityResponse, error) {
			if lat == 35.67 {
				return nil, errors.New("provider failure")
			}
			return hourlyReading(101, 55, 80), nil
		},
	}
	snapshots := &fakeSnapshotGateway{}

	err := newCityAQITest(testTable(), gateway, snapshots).RefreshGlobalSnapshot(context.Background(), "req-1")

	require.NoError(t, err)
	require.Len(t, snapshots.snapshot, 2)
	require.NotNil(t, snapshots.snapshot["Delhi_India"].AQI)
	assert.Equal(t, 101.0, *snapshots.snapshot["Delhi_India"].AQI)
	// failed cities keep a slot with nil readings
	assert.Nil(t, snapshots.snapshot["Tokyo_Japan"].AQI)
	assert.Equal(t, time.Hour, snapshots.savedTTL)
}

func TestRefreshGlobalSnapshotHonorsLimit(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(float64, float64) (*external.AirQualityResponse, error) {
			return hourlyReading(50, 20, 30), nil
		},
	}
	snapshots := &fakeSnapshotGateway{}
	useCase := NewCityAQIUseCase(testTable(), gateway, snapshots, 1, time.Hour)

	err := useCase.RefreshGlobalSnapshot(context.Background(), "req-2")

	require.NoError(t, err)
	assert.Len(t, snapshots.snapshot, 1)
	assert.Equal(t, 1, gateway.calls)
}

func TestRefreshCitySnapshotUpdatesSingleSlot(t *testing.T) {
	gateway := &fakeAirQualityGateway{
		latest: func(float64, float64) (*external.AirQualityResponse, error) {
			return hourlyReading(88, 33, 44), nil
		},
	}
	snapshots := &fakeSnapshotGateway{
		snapshot: model.GlobalSnapshot{
			"Tokyo_Japan": {AQI: floatPtr(70)},
		},
	}

	err := newCityAQITest(testTable(), gateway, snapshots).RefreshCitySnapshot(context.Background(), "Delhi_India")

	require.NoError(t, err)
	require.Len(t, snapshots.snapshot, 2)
	assert.Equal(t, 88.0, *snapshots.snapshot["Delhi_India"].AQI)
	assert.Equal(t, 70.0, *snapshots.snapshot["Tokyo_Japan"].AQI)
}
