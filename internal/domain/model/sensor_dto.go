package model

// SensorValues carries the measured fields of one reading. Aliases used by
// older device firmware (voc, lat, lon) are accepted on ingest.
type SensorValues struct {
	PM25        *float64 `json:"pm25"`
	PM10        *float64 `json:"pm10"`
	CO2         *float64 `json:"co2"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	VOCPPM      *float64 `json:"voc_ppm"`
	VOC         *float64 `json:"voc"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// SensorReadingRequest is the body of POST /sensors/readings.
type SensorReadingRequest struct {
	DeviceID   string         `json:"device_id"`
	DeviceType string         `json:"device_type"`
	City       string         `json:"city"`
	Timestamp  string         `json:"timestamp"`
	Sensors    SensorValues   `json:"sensors"`
	Meta       map[string]any `json:"meta"`
}

// SensorIngestResponse reports the identifiers assigned to a stored reading.
type SensorIngestResponse struct {
	Status      string `json:"status"`
	ReadingID   int64  `json:"reading_id"`
	IngestionID int64  `json:"ingestion_id,omitempty"`
}

// SnapshotRefreshMessage is the queue message produced after a reading is
// stored, asking the worker to refresh that city's cached AQI entry.
type SnapshotRefreshMessage struct {
	City      string `json:"city"`
	RequestID string `json:"requestId"`
}
