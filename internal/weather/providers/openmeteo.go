package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-forecast-view/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultOpenMeteoURL is the ECMWF endpoint of Open-Meteo.
const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/ecmwf"

var openMeteoHourly = []string{
	"temperature_2m",
	"precipitation",
	"snowfall",
	"wind_speed_10m",
	"wind_gusts_10m",
	"wind_direction_10m",
	"cloud_cover",
	"sunshine_duration",
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// The response is already in the Payload shape and is decoded as is.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func NewOpenMeteoProvider(client *http.Client, baseURL string, logger *slog.Logger) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	logger = logger.With("provider", "openmeteo")

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff(),
		},
		circuit: newBreaker("openmeteo", logger),
		logger:  logger,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) (weather.Payload, error) {
	if loc.Lat == nil || loc.Lon == nil {
		return weather.Payload{}, fmt.Errorf("openmeteo: %w", errNoCoordinates)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(*loc.Lat, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(*loc.Lon, 'f', 4, 64))
		values.Set("hourly", strings.Join(openMeteoHourly, ","))
		values.Set("daily", "sunrise,sunset")
		values.Set("forecast_days", strconv.Itoa(days))
		values.Set("wind_speed_unit", "kmh")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, p.logger, buildRequest)
	if err != nil {
		return weather.Payload{}, err
	}
	defer resp.Body.Close()

	var payload weather.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Payload{}, fmt.Errorf("openmeteo: decode response: %w", err)
	}

	p.logger.Debug("forecast fetched", "hours", len(payload.Hourly.Time), "timezone", payload.Timezone)
	return payload, nil
}
