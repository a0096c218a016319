package weather

import (
	"context"
	"time"
)

// Provider abstracts a forecast data source (e.g. Open-Meteo, WeatherAPI).
// Implementations translate their response into the Open-Meteo shaped Payload.
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location, days int) (Payload, error)
}

// Store is the contract the in-memory view store must satisfy.
type Store interface {
	SaveView(loc Location, view ForecastView)
	GetLatest(loc Location) (ForecastView, error)
	GetRange(loc Location, from, to time.Time) ([]ForecastView, error)
}
