package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

var (
	showInput string
	showDate  string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the forecast view as JSON",
	Long: `Fetch a forecast from the configured providers, or read a saved
Open-Meteo style payload with --input, and print the resulting view.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showInput, "input", "i", "", "payload JSON file to process instead of fetching")
	showCmd.Flags().StringVarP(&showDate, "date", "d", "", "reference date (YYYY-MM-DD), defaults to today at the location")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, service, _, err := setup()
	if err != nil {
		return err
	}

	var ref time.Time
	if showDate != "" {
		ref, err = time.Parse("2006-01-02", showDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", showDate, err)
		}
	}

	var view weather.ForecastView
	switch {
	case showInput != "":
		payload, err := readPayload(showInput)
		if err != nil {
			return err
		}
		view, err = build(service, payload, "file", ref)
		if err != nil {
			return err
		}
	case showDate != "":
		return fmt.Errorf("--date requires --input")
	default:
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RefreshTimeout)
		defer cancel()
		view, err = service.Refresh(ctx)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func build(service *weather.Service, payload weather.Payload, source string, ref time.Time) (weather.ForecastView, error) {
	if ref.IsZero() {
		return service.Build(payload, source)
	}
	return service.BuildAt(payload, source, ref)
}

func readPayload(path string) (weather.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return weather.Payload{}, err
	}
	defer f.Close()

	var payload weather.Payload
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return weather.Payload{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return payload, nil
}
