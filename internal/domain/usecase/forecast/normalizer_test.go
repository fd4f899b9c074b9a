package forecast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqi-api/internal/domain/model"
)

func decodePayload(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestNormalizeSeriesShapeInvariance(t *testing.T) {
	payloads := []string{
		`{"forecast": [{"timestamp": "2024-01-01", "aqi": 55.0}]}`,
		`{"data": [{"timestamp": "2024-01-01", "aqi": 55.0}]}`,
		`{"history": [{"timestamp": "2024-01-01", "aqi": 55.0}]}`,
		`[{"timestamp": "2024-01-01", "aqi": 55.0}]`,
	}

	for _, raw := range payloads {
		points := normalizeSeries(decodePayload(t, raw))
		assert.Equal(t, []model.ForecastPoint{{Timestamp: "2024-01-01", AQI: 55.0}}, points, "payload: %s", raw)
	}
}

func TestNormalizeSeriesFieldPriority(t *testing.T) {
	payload := decodePayload(t, `{"forecast": [
		{"ds": "2024-02-01", "yhat": 12.5},
		{"date": "2024-02-02", "predicted_aqi": 30},
		{"timestamp": "2024-02-03", "date": "ignored", "aqi": 41.0, "yhat": 99.0}
	]}`)

	points := normalizeSeries(payload)

	require.Len(t, points, 3)
	assert.Equal(t, model.ForecastPoint{Timestamp: "2024-02-01", AQI: 12.5}, points[0])
	assert.Equal(t, model.ForecastPoint{Timestamp: "2024-02-02", AQI: 30.0}, points[1])
	assert.Equal(t, model.ForecastPoint{Timestamp: "2024-02-03", AQI: 41.0}, points[2])
}

func TestNormalizeSeriesDropsIncompleteElements(t *testing.T) {
	payload := decodePayload(t, `{"forecast": [
		{"timestamp": "2024-01-01", "aqi": 10.0},
		{"timestamp": "2024-01-02"},
		{"aqi": 20.0},
		{"timestamp": "2024-01-03", "aqi": "not a number"},
		"not an object",
		{"timestamp": "2024-01-04", "aqi": 40.0}
	]}`)

	points := normalizeSeries(payload)

	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-01", points[0].Timestamp)
	assert.Equal(t, "2024-01-04", points[1].Timestamp)
}

func TestNormalizeSeriesAcceptsNumericStrings(t *testing.T) {
	payload := decodePayload(t, `{"forecast": [{"timestamp": "2024-01-01", "aqi": " 73.5 "}]}`)

	points := normalizeSeries(payload)

	require.Len(t, points, 1)
	assert.Equal(t, 73.5, points[0].AQI)
}

func TestNormalizeSeriesPreservesOrder(t *testing.T) {
	payload := decodePayload(t, `{"forecast": [
		{"timestamp": "2024-03-03", "aqi": 3},
		{"timestamp": "2024-03-01", "aqi": 1},
		{"timestamp": "2024-03-02", "aqi": 2}
	]}`)

	points := normalizeSeries(payload)

	require.Len(t, points, 3)
	assert.Equal(t, "2024-03-03", points[0].Timestamp)
	assert.Equal(t, "2024-03-01", points[1].Timestamp)
	assert.Equal(t, "2024-03-02", points[2].Timestamp)
}

func TestNormalizeSeriesCanonicalRoundTrip(t *testing.T) {
	canonical := `{"forecast": [
		{"timestamp": "2024-01-01T00:00:00Z", "aqi": 10.5},
		{"timestamp": "2024-01-01T01:00:00Z", "aqi": 11.0}
	]}`

	points := normalizeSeries(decodePayload(t, canonical))

	assert.Equal(t, []model.ForecastPoint{
		{Timestamp: "2024-01-01T00:00:00Z", AQI: 10.5},
		{Timestamp: "2024-01-01T01:00:00Z", AQI: 11.0},
	}, points)
}

func TestNormalizeSeriesUnknownShapes(t *testing.T) {
	assert.Empty(t, normalizeSeries(nil))
	assert.Empty(t, normalizeSeries("plain string"))
	assert.Empty(t, normalizeSeries(decodePayload(t, `{"message": "no list here"}`)))
}
