package entity

type SensorReading struct {
	ID          int64    `json:"id"`
	DeviceID    string   `json:"deviceId"`
	DeviceType  string   `json:"deviceType"`
	City        string   `json:"city"`
	Timestamp   string   `json:"timestamp"`
	PM25        *float64 `json:"pm25"`
	PM10        *float64 `json:"pm10"`
	CO2         *float64 `json:"co2"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	VOCPPM      *float64 `json:"vocPpm"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Measurements string  `json:"measurements"`
	Meta         string  `json:"meta"`
	CreatedAt    string  `json:"createdDate"`
}
