package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

var validate = validator.New()

// AppConfig holds all runtime configuration.
type AppConfig struct {
	Location weather.Location

	// ForecastDays is the total forecast horizon requested from providers.
	ForecastDays int `validate:"min=1,max=16"`

	// RefreshInterval controls how often the forecast is fetched.
	RefreshInterval time.Duration `validate:"gt=0"`
	RefreshTimeout  time.Duration `validate:"gt=0"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	Port            string        `validate:"required,numeric"`

	// Providers in fallback order.
	Providers      []string `validate:"min=1,dive,oneof=openmeteo weatherapi"`
	OpenMeteoURL   string   `validate:"required,url"`
	WeatherAPIKey  string
	GeocoderAPIKey string

	// In-memory store retention.
	StoreMaxHistory int           `validate:"min=0"` // max number of views kept (0 = unlimited)
	StoreMaxAge     time.Duration `validate:"min=0"` // max age of views (0 = unlimited)

	Log LogConfig

	Rain    RainConfig
	Summary SummaryConfig
	Detail  DetailConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	Format string `validate:"oneof=text json"`
}

// RainConfig holds the hourly precipitation intensity thresholds in mm.
type RainConfig struct {
	Light    float64 `validate:"gt=0"`
	Moderate float64 `validate:"gtefield=Light"`
	Heavy    float64 `validate:"gtefield=Moderate"`
}

// SummaryConfig tunes the daily summaries.
type SummaryConfig struct {
	SunshineBias    float64 `validate:"gt=0"`
	CloudWeight     float64 `validate:"min=0,max=1"`
	FreezingAsSnow  bool
	FreezingMaxTemp float64
}

// DetailConfig selects the detailed-day policy.
type DetailConfig struct {
	Mode     string `validate:"oneof=sampled all"`
	Cadences []int  `validate:"min=1,dive,min=1,max=24"`
}

// Load reads configuration from .env, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// An empty LOCATION_LATITUDE/LOCATION_LONGITUDE clears the default
	// coordinates and switches to geocoding.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	_ = v.BindEnv("http.port", "HTTP_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("location.name", "Braunschweig, DE")
	v.SetDefault("location.city", "Braunschweig")
	v.SetDefault("location.country", "DE")
	v.SetDefault("location.latitude", "52.283")
	v.SetDefault("location.longitude", "10.569")
	v.SetDefault("forecast.days", 8)
	v.SetDefault("refresh.interval", "30m")
	v.SetDefault("refresh.timeout", "30s")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.port", "8080")
	v.SetDefault("providers", "openmeteo")
	v.SetDefault("openmeteo.url", "https://api.open-meteo.com/v1/ecmwf")
	v.SetDefault("store.max_history", 48)
	v.SetDefault("store.max_age", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("rain.light", 0.5)
	v.SetDefault("rain.moderate", 2.5)
	v.SetDefault("rain.heavy", 7.5)
	v.SetDefault("summary.sunshine_bias", 0.75)
	v.SetDefault("summary.cloud_weight", 0.3)
	v.SetDefault("summary.freezing_as_snow", true)
	v.SetDefault("summary.freezing_max_temp", 1.0)
	v.SetDefault("detail.mode", "sampled")
	v.SetDefault("detail.cadences", "3,6")
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		ForecastDays:    v.GetInt("forecast.days"),
		RefreshInterval: v.GetDuration("refresh.interval"),
		RefreshTimeout:  v.GetDuration("refresh.timeout"),
		HTTPTimeout:     v.GetDuration("http.timeout"),
		Port:            v.GetString("http.port"),
		Providers:       listValue(v, "providers"),
		OpenMeteoURL:    v.GetString("openmeteo.url"),
		WeatherAPIKey:   v.GetString("weatherapi.key"),
		GeocoderAPIKey:  v.GetString("geocoder.key"),
		StoreMaxHistory: v.GetInt("store.max_history"),
		StoreMaxAge:     v.GetDuration("store.max_age"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Rain: RainConfig{
			Light:    v.GetFloat64("rain.light"),
			Moderate: v.GetFloat64("rain.moderate"),
			Heavy:    v.GetFloat64("rain.heavy"),
		},
		Summary: SummaryConfig{
			SunshineBias:    v.GetFloat64("summary.sunshine_bias"),
			CloudWeight:     v.GetFloat64("summary.cloud_weight"),
			FreezingAsSnow:  v.GetBool("summary.freezing_as_snow"),
			FreezingMaxTemp: v.GetFloat64("summary.freezing_max_temp"),
		},
		Detail: DetailConfig{
			Mode: strings.ToLower(v.GetString("detail.mode")),
		},
	}

	loc, err := loadLocation(v)
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	for _, c := range listValue(v, "detail.cadences") {
		n, err := strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("invalid detail.cadences entry %q: %w", c, err)
		}
		cfg.Detail.Cadences = append(cfg.Detail.Cadences, n)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Pipeline().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadLocation reads the single forecast location. Empty coordinates are
// left unset so they can be geocoded from city and country.
func loadLocation(v *viper.Viper) (weather.Location, error) {
	loc := weather.Location{
		Name:    v.GetString("location.name"),
		City:    v.GetString("location.city"),
		Country: v.GetString("location.country"),
	}
	lat, err := optionalFloat(v.GetString("location.latitude"))
	if err != nil {
		return loc, fmt.Errorf("invalid location.latitude: %w", err)
	}
	lon, err := optionalFloat(v.GetString("location.longitude"))
	if err != nil {
		return loc, fmt.Errorf("invalid location.longitude: %w", err)
	}
	if (lat == nil) != (lon == nil) {
		return loc, fmt.Errorf("location.latitude and location.longitude must be set together")
	}
	if lat != nil && (*lat < -90 || *lat > 90 || *lon < -180 || *lon > 180) {
		return loc, fmt.Errorf("location coordinates out of range: %f,%f", *lat, *lon)
	}
	if lat == nil && loc.City == "" {
		return loc, fmt.Errorf("either coordinates or location.city must be configured")
	}
	loc.Lat, loc.Lon = lat, lon
	return loc, nil
}

// Pipeline builds the forecast pipeline from the tuning values.
func (c *AppConfig) Pipeline() weather.Pipeline {
	return weather.Pipeline{
		Summarizer: weather.Summarizer{
			Thresholds: weather.Thresholds{
				Light:    c.Rain.Light,
				Moderate: c.Rain.Moderate,
				Heavy:    c.Rain.Heavy,
			},
			SunshineBias: c.Summary.SunshineBias,
			CloudWeight:  c.Summary.CloudWeight,
			Freezing: weather.FreezingRule{
				Enabled: c.Summary.FreezingAsSnow,
				MaxTemp: c.Summary.FreezingMaxTemp,
			},
		},
		Detail: weather.DetailPolicy{
			Mode:     weather.DetailMode(c.Detail.Mode),
			Cadences: c.Detail.Cadences,
		},
	}
}

// NewLogger creates a new slog.Logger based on the configuration.
func (c *AppConfig) NewLogger() *slog.Logger {
	return newLogger(c.Log, os.Stdout)
}

func newLogger(lc LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch lc.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", "weather-forecast-view")
}

// listValue reads a list setting given either as a YAML sequence or as a
// comma separated string (environment variables).
func listValue(v *viper.Viper, key string) []string {
	return splitList(strings.Join(v.GetStringSlice(key), ","))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
