package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-forecast-view/internal/config"
	"github.com/i474232898/weather-forecast-view/internal/store"
	"github.com/i474232898/weather-forecast-view/internal/weather"
	"github.com/i474232898/weather-forecast-view/internal/weather/providers"
)

var rootCmd = &cobra.Command{
	Use:   "weather-forecast-view",
	Short: "Weather forecast view service",
	Long: `weather-forecast-view fetches an hourly forecast for one location and
turns it into day groups: detailed hours for the next days, summaries after.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and assembles the forecast service shared by
// all subcommands.
func setup() (*config.AppConfig, *weather.Service, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	loc, err := providers.ResolveLocation(cfg.Location, cfg.GeocoderAPIKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve location: %w", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var provs []weather.Provider
	for _, name := range cfg.Providers {
		switch name {
		case "openmeteo":
			provs = append(provs, providers.NewOpenMeteoProvider(httpClient, cfg.OpenMeteoURL, logger))
		case "weatherapi":
			provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, logger))
		}
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	service := weather.NewService(memStore, provs, cfg.Pipeline(), loc, cfg.ForecastDays, logger)

	return cfg, service, logger, nil
}
