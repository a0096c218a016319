package weather

// Payload is a raw forecast as delivered by a provider. Its shape follows the
// Open-Meteo forecast response so it can be decoded directly.
type Payload struct {
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	Timezone         string       `json:"timezone"`
	UTCOffsetSeconds int          `json:"utc_offset_seconds"`
	Hourly           HourlySeries `json:"hourly"`
	Daily            *DailySeries `json:"daily,omitempty"`
}

// HourlySeries holds the parallel hourly arrays. Numeric series are pointer
// slices so JSON nulls are kept distinguishable from zero.
type HourlySeries struct {
	Time             []string   `json:"time"`
	Temperature      []*float64 `json:"temperature_2m"`
	Precipitation    []*float64 `json:"precipitation"`
	Snowfall         []*float64 `json:"snowfall"`
	WindSpeed        []*float64 `json:"wind_speed_10m"`
	WindGusts        []*float64 `json:"wind_gusts_10m"`
	WindDirection    []*float64 `json:"wind_direction_10m"`
	CloudCover       []*float64 `json:"cloud_cover"`
	SunshineDuration []*float64 `json:"sunshine_duration,omitempty"`
}

// DailySeries holds the per-date sunrise and sunset timestamps.
type DailySeries struct {
	Time    []string `json:"time"`
	Sunrise []string `json:"sunrise"`
	Sunset  []string `json:"sunset"`
}
