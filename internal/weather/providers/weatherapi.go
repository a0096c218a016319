package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-forecast-view/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultWeatherAPIURL is the WeatherAPI.com forecast endpoint.
const DefaultWeatherAPIURL = "https://api.weatherapi.com/v1/forecast.json"

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
// WeatherAPI has no sunshine duration, so its payloads carry no sunshine series.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, logger *slog.Logger) *WeatherAPIProvider {
	logger = logger.With("provider", "weatherapi")

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: DefaultWeatherAPIURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff(),
		},
		circuit: newBreaker("weatherapi", logger),
		logger:  logger,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIResponse struct {
	Location struct {
		TzID           string  `json:"tz_id"`
		Lat            float64 `json:"lat"`
		Lon            float64 `json:"lon"`
		LocalTime      string  `json:"localtime"`
		LocalTimeEpoch int64   `json:"localtime_epoch"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date  string `json:"date"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				Time       string  `json:"time"`
				TempC      float64 `json:"temp_c"`
				WindKph    float64 `json:"wind_kph"`
				GustKph    float64 `json:"gust_kph"`
				WindDegree float64 `json:"wind_degree"`
				PrecipMm   float64 `json:"precip_mm"`
				SnowCm     float64 `json:"snow_cm"`
				Cloud      float64 `json:"cloud"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) (weather.Payload, error) {
	if p.apiKey == "" {
		return weather.Payload{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI uses "q" for location; it accepts "city,country" or "lat,lon".
		if loc.Lat != nil && loc.Lon != nil {
			values.Set("q", fmt.Sprintf("%f,%f", *loc.Lat, *loc.Lon))
		} else {
			q := loc.City
			if loc.Country != "" {
				q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
			}
			values.Set("q", q)
		}
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, p.logger, buildRequest)
	if err != nil {
		return weather.Payload{}, err
	}
	defer resp.Body.Close()

	var raw weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Payload{}, fmt.Errorf("weatherapi: decode response: %w", err)
	}

	payload := raw.toPayload()
	p.logger.Debug("forecast fetched", "hours", len(payload.Hourly.Time), "timezone", payload.Timezone)
	return payload, nil
}

// toPayload flattens the per-day response into parallel hourly arrays. Days
// whose astro times cannot be read (polar day/night) are left out of the
// daily series and get the default sun window downstream.
func (r weatherAPIResponse) toPayload() weather.Payload {
	p := weather.Payload{
		Latitude:         r.Location.Lat,
		Longitude:        r.Location.Lon,
		Timezone:         r.Location.TzID,
		UTCOffsetSeconds: utcOffset(r.Location.LocalTime, r.Location.LocalTimeEpoch),
		Daily:            &weather.DailySeries{},
	}
	h := &p.Hourly

	for _, day := range r.Forecast.ForecastDay {
		for _, hr := range day.Hour {
			h.Time = append(h.Time, strings.Replace(hr.Time, " ", "T", 1))
			h.Temperature = append(h.Temperature, ptr(hr.TempC))
			h.Precipitation = append(h.Precipitation, ptr(hr.PrecipMm))
			h.Snowfall = append(h.Snowfall, ptr(hr.SnowCm))
			h.WindSpeed = append(h.WindSpeed, ptr(hr.WindKph))
			h.WindGusts = append(h.WindGusts, ptr(hr.GustKph))
			h.WindDirection = append(h.WindDirection, ptr(hr.WindDegree))
			h.CloudCover = append(h.CloudCover, ptr(hr.Cloud))
		}

		rise, errRise := astroTime(day.Date, day.Astro.Sunrise)
		set, errSet := astroTime(day.Date, day.Astro.Sunset)
		if errRise != nil || errSet != nil {
			continue
		}
		p.Daily.Time = append(p.Daily.Time, day.Date)
		p.Daily.Sunrise = append(p.Daily.Sunrise, rise)
		p.Daily.Sunset = append(p.Daily.Sunset, set)
	}

	return p
}

// utcOffset derives the location's offset from its wall clock and the epoch
// of the same instant, rounded to the quarter hour. Unreadable input yields 0.
func utcOffset(localTime string, epoch int64) int {
	if localTime == "" || epoch == 0 {
		return 0
	}
	wall, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(localTime))
	if err != nil {
		return 0
	}
	const quarter = 15 * 60
	diff := wall.Unix() - epoch
	return int(math.Round(float64(diff)/quarter)) * quarter
}

// astroTime joins a date and a "06:47 AM" clock into "2006-01-02T15:04".
func astroTime(date, clock string) (string, error) {
	t, err := time.Parse("03:04 PM", strings.TrimSpace(clock))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sT%02d:%02d", date, t.Hour(), t.Minute()), nil
}
