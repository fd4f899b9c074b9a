package model

// ForecastPoint is the canonical shape every forecast endpoint answers with,
// regardless of which upstream field names the raw payload used.
type ForecastPoint struct {
	Timestamp string  `json:"timestamp"`
	AQI       float64 `json:"aqi"`
}

// HybridForecastRequest is the body of POST /forecast/hybrid
type HybridForecastRequest struct {
	City          string `json:"city"`
	HorizonMonths int    `json:"horizon_months"`
}

// HybridForecastResponse is the canonical monthly forecast answer
type HybridForecastResponse struct {
	City          string          `json:"city"`
	HorizonMonths int             `json:"horizon_months"`
	Forecast      []ForecastPoint `json:"forecast"`
}

// ProphetForecastRequest is the body of POST /forecast/prophet
type ProphetForecastRequest struct {
	City        string `json:"city"`
	HorizonDays int    `json:"horizon_days"`
}

// ProphetForecastResponse is the canonical daily forecast answer
type ProphetForecastResponse struct {
	City        string          `json:"city"`
	HorizonDays int             `json:"horizon_days"`
	Source      string          `json:"source,omitempty"`
	Forecast    []ForecastPoint `json:"forecast"`
}

// ForecastHistoryResponse answers GET /forecast/history with the series
// relabeled under the history key
type ForecastHistoryResponse struct {
	City        string          `json:"city"`
	HorizonDays int             `json:"horizon_days"`
	History     []ForecastPoint `json:"history"`
}

// ShortTermForecastRequest is the body of POST /forecast/short_term.
// DeviceID is accepted as an alias for City for portable sensor clients.
type ShortTermForecastRequest struct {
	City     string `json:"city"`
	DeviceID string `json:"device_id"`
	Hours    int    `json:"hours"`
}

// ShortTermForecastResponse is the canonical hourly forecast answer with
// its provenance tag
type ShortTermForecastResponse struct {
	City     string          `json:"city"`
	Hours    int             `json:"hours"`
	Source   string          `json:"source,omitempty"`
	Forecast []ForecastPoint `json:"forecast"`
}
