package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partlyCloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionOvercast     Condition = "overcast"
	ConditionLightRain    Condition = "lightRain"
	ConditionRain         Condition = "rain"
	ConditionHeavyRain    Condition = "heavyRain"
)

// Location represents the single place the forecast is fetched for.
// Lat/Lon are optional until resolved by geocoding.
type Location struct {
	Name    string   `json:"name"`
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"latitude,omitempty"`
	Lon     *float64 `json:"longitude,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// HourlyRecord is one normalized forecast hour. It is created once per input
// index and never mutated afterwards.
type HourlyRecord struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
	// Date is the local calendar date at midnight UTC.
	Date time.Time `json:"-"`
	Hour int       `json:"hour"`

	Temperature     float64  `json:"temperature"`
	Precipitation   float64  `json:"precipitation"`
	Snowfall        float64  `json:"snowfall"`
	WindSpeed       float64  `json:"windSpeed"`
	WindGusts       float64  `json:"windGusts"`
	WindDirection   float64  `json:"windDirection"`
	CloudCover      float64  `json:"cloudCover"`
	SunshineSeconds *float64 `json:"sunshineDuration,omitempty"`
}

// DayBucket holds the records of one local calendar day in chronological order.
type DayBucket struct {
	Date  time.Time
	Hours []HourlyRecord
}

// ViewMode tells whether a day is rendered hour by hour or as a summary.
type ViewMode string

const (
	ModeDetailed ViewMode = "detailed"
	ModeSummary  ViewMode = "summary"
)

// ViewGroup is the emitted per-day unit. Exactly one of Hours and Summary is
// set, depending on Mode.
type ViewGroup struct {
	ID      string         `json:"id"`
	Date    time.Time      `json:"date"`
	Mode    ViewMode       `json:"mode"`
	Hours   []HourlyRecord `json:"hours,omitempty"`
	Summary *DaySummary    `json:"summary,omitempty"`
}

// IsDetailed reports whether the group carries hourly records.
func (g ViewGroup) IsDetailed() bool {
	return g.Mode == ModeDetailed
}

// DaySummary is the aggregate of a non-detailed day.
type DaySummary struct {
	MaxTemp            float64              `json:"maxTemp"`
	MinTemp            float64              `json:"minTemp"`
	AvgCloudCover      int                  `json:"avgCloudCover"`
	SunshineHours      float64              `json:"sunshineHours"`
	TotalPrecipitation float64              `json:"totalPrecipitation"`
	TotalSnowfall      float64              `json:"totalSnowfall"`
	DominantCondition  Condition            `json:"dominantCondition"`
	Precipitation      PrecipitationDisplay `json:"precipitation"`
}

// PrecipitationKind is what a day's precipitation is shown as.
type PrecipitationKind string

const (
	PrecipitationNone PrecipitationKind = "none"
	PrecipitationRain PrecipitationKind = "rain"
	PrecipitationSnow PrecipitationKind = "snow"
)

// PrecipitationDisplay is the outcome of the display precipitation rule.
type PrecipitationDisplay struct {
	Kind   PrecipitationKind `json:"kind"`
	Amount float64           `json:"amount"`
	Unit   string            `json:"unit"`
}

// ForecastView is the stored result of one pipeline run.
type ForecastView struct {
	ID            string      `json:"id"`
	Location      Location    `json:"location"`
	Provider      string      `json:"provider"`
	FetchedAt     time.Time   `json:"fetchedAt"` // always UTC
	ReferenceDate time.Time   `json:"referenceDate"`
	Timezone      string      `json:"timezone"`
	UTCOffset     int         `json:"utcOffsetSeconds"`
	Groups        []ViewGroup `json:"groups"`
}

// Group returns the view group for the given calendar date.
func (v ForecastView) Group(date time.Time) (ViewGroup, bool) {
	key := dateKey(date)
	for _, g := range v.Groups {
		if g.ID == key {
			return g, true
		}
	}
	return ViewGroup{}, false
}
