package external

// AirQualityResponse represents the response from the Open-Meteo air-quality API
type AirQualityResponse struct {
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Hourly    AirQualityHourly `json:"hourly"`
}

// AirQualityHourly holds the hourly series; nil entries mark hours the
// provider has no data for
type AirQualityHourly struct {
	Time            []string   `json:"time"`
	USAQI           []*float64 `json:"us_aqi"`
	PM25            []*float64 `json:"pm2_5"`
	PM10            []*float64 `json:"pm10"`
	Ozone           []*float64 `json:"ozone"`
	NitrogenDioxide []*float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  []*float64 `json:"sulphur_dioxide"`
	CarbonMonoxide  []*float64 `json:"carbon_monoxide"`
}

// LatestUSAQI returns the last reported AQI value, or nil when the series is empty
func (h AirQualityHourly) LatestUSAQI() *float64 {
	return lastValue(h.USAQI)
}

// LatestPM25 returns the last reported PM2.5 value, or nil when the series is empty
func (h AirQualityHourly) LatestPM25() *float64 {
	return lastValue(h.PM25)
}

// LatestPM10 returns the last reported PM10 value, or nil when the series is empty
func (h AirQualityHourly) LatestPM10() *float64 {
	return lastValue(h.PM10)
}

func (h AirQualityHourly) LatestOzone() *float64 {
	return lastValue(h.Ozone)
}

func (h AirQualityHourly) LatestNitrogenDioxide() *float64 {
	return lastValue(h.NitrogenDioxide)
}

func (h AirQualityHourly) LatestSulphurDioxide() *float64 {
	return lastValue(h.SulphurDioxide)
}

func (h AirQualityHourly) LatestCarbonMonoxide() *float64 {
	return lastValue(h.CarbonMonoxide)
}

func lastValue(series []*float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	return series[len(series)-1]
}

// APIErrorResponse represents error responses from the Open-Meteo API
type APIErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
