package model

// Pollutants carries the latest reading for the two particulate families
// reported on city lookups.
type Pollutants struct {
	PM25 *float64 `json:"pm2_5"`
	PM10 *float64 `json:"pm10"`
}

// CityAQIResponse answers GET /city_aqi/:city with the resolved entry and
// the latest provider data.
type CityAQIResponse struct {
	CityRequested string     `json:"city_requested"`
	CityMatched   string     `json:"city_matched"`
	Lat           float64    `json:"lat"`
	Lon           float64    `json:"lon"`
	LatestAQI     *float64   `json:"latest_aqi"`
	Pollutants    Pollutants `json:"pollutants"`
	Source        string     `json:"source"`
}

// Location is a coordinate pair echoed back on coordinate lookups.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FullPollutants carries the complete pollutant set the provider reports hourly.
type FullPollutants struct {
	PM10            *float64 `json:"pm10"`
	PM25            *float64 `json:"pm2_5"`
	Ozone           *float64 `json:"ozone"`
	NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  *float64 `json:"sulphur_dioxide"`
	CarbonMonoxide  *float64 `json:"carbon_monoxide"`
}

// LiveAQIResponse answers GET /live_aqi_coords.
type LiveAQIResponse struct {
	Status     string         `json:"status"`
	Location   Location       `json:"location"`
	DataSource string         `json:"data_source"`
	LatestAQI  *float64       `json:"latest_aqi"`
	Pollutants FullPollutants `json:"pollutants"`
}

// CitySnapshotEntry is one city's slot in the cached global AQI snapshot.
type CitySnapshotEntry struct {
	AQI  *float64 `json:"aqi"`
	PM25 *float64 `json:"pm25"`
	PM10 *float64 `json:"pm10"`
}

// GlobalSnapshot maps canonical city names to their latest cached readings.
type GlobalSnapshot map[string]CitySnapshotEntry
