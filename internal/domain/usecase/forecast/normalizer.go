package forecast

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aqi-api/internal/domain/model"
	"aqi-api/pkg/log"
	"aqi-api/pkg/util/numberutils"
)

// Upstream payloads carry their point list and per-point fields under
// varying names depending on which model and server version answered.
// First present field wins, in the order below.
var (
	listFields      = []string{"forecast", "data", "history"}
	timestampFields = []string{"timestamp", "date", "ds"}
	valueFields     = []string{"aqi", "predicted_aqi", "yhat", "value"}
)

// normalizeSeries converts a decoded upstream payload of any supported shape
// into the canonical point series. Elements without a recognizable timestamp
// or a finite numeric value are dropped, never defaulted. Point order is
// preserved as received.
func normalizeSeries(raw any) []model.ForecastPoint {
	elements := extractPointList(raw)

	points := make([]model.ForecastPoint, 0, len(elements))
	for _, element := range elements {
		fields, ok := element.(map[string]any)
		if !ok {
			continue
		}

		timestamp, ok := extractTimestamp(fields)
		if !ok {
			continue
		}

		value, ok := extractValue(fields)
		if !ok {
			continue
		}

		if !isValidTimestamp(timestamp) {
			log.Debugf("forecast point timestamp %q is not ISO-8601, passing through", timestamp)
		}

		points = append(points, model.ForecastPoint{Timestamp: timestamp, AQI: value})
	}

	return points
}

// extractPointList finds the underlying list of points in the payload. A
// payload that is already a list is used as-is.
func extractPointList(raw any) []any {
	switch payload := raw.(type) {
	case map[string]any:
		for _, field := range listFields {
			if list, ok := payload[field].([]any); ok {
				return list
			}
		}
		return nil
	case []any:
		return payload
	default:
		return nil
	}
}

func extractTimestamp(fields map[string]any) (string, bool) {
	for _, field := range timestampFields {
		value, present := fields[field]
		if !present || value == nil {
			continue
		}
		return stringifyTimestamp(value), true
	}
	return "", false
}

// stringifyTimestamp preserves string timestamps verbatim and renders
// non-string ones the way their JSON representation reads.
func stringifyTimestamp(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func extractValue(fields map[string]any) (float64, bool) {
	for _, field := range valueFields {
		value, present := fields[field]
		if !present || value == nil {
			continue
		}
		return coerceFinite(value)
	}
	return 0, false
}

// coerceFinite converts a decoded JSON value to a finite float64. Numeric
// strings are accepted; NaN and infinities are rejected.
func coerceFinite(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, numberutils.IsFinite(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		return parsed, err == nil && numberutils.IsFinite(parsed)
	case string:
		parsed, err := numberutils.ToFloat64WithError(strings.TrimSpace(v))
		return parsed, err == nil && numberutils.IsFinite(parsed)
	default:
		return 0, false
	}
}

// isValidTimestamp checks whether a timestamp string parses as ISO-8601,
// accepting a trailing Z as UTC. The check is informational only; the
// original string is kept either way.
func isValidTimestamp(timestamp string) bool {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
	candidate := timestamp
	if strings.HasSuffix(candidate, "Z") && !strings.Contains(candidate, "T") {
		candidate = strings.TrimSuffix(candidate, "Z")
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, candidate); err == nil {
			return true
		}
	}
	return false
}
