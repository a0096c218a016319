package weather

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedInput is returned when a payload cannot be turned into records:
// mismatched array lengths, missing required values or unparsable timestamps.
var ErrMalformedInput = errors.New("malformed forecast input")

var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Normalize converts the parallel hourly arrays into records, one per index,
// in input order. Timestamps are already local to the forecast location and
// are taken as wall clock without any conversion.
func Normalize(h HourlySeries) ([]HourlyRecord, error) {
	n := len(h.Time)
	if n == 0 {
		return nil, fmt.Errorf("%w: hourly.time is empty", ErrMalformedInput)
	}

	required := []struct {
		name   string
		values []*float64
	}{
		{"temperature_2m", h.Temperature},
		{"precipitation", h.Precipitation},
		{"snowfall", h.Snowfall},
		{"wind_speed_10m", h.WindSpeed},
		{"wind_gusts_10m", h.WindGusts},
		{"wind_direction_10m", h.WindDirection},
		{"cloud_cover", h.CloudCover},
	}
	for _, s := range required {
		if len(s.values) != n {
			return nil, fmt.Errorf("%w: hourly.%s has %d values, hourly.time has %d",
				ErrMalformedInput, s.name, len(s.values), n)
		}
	}
	hasSunshine := h.SunshineDuration != nil
	if hasSunshine && len(h.SunshineDuration) != n {
		return nil, fmt.Errorf("%w: hourly.sunshine_duration has %d values, hourly.time has %d",
			ErrMalformedInput, len(h.SunshineDuration), n)
	}

	records := make([]HourlyRecord, 0, n)
	for i, raw := range h.Time {
		ts, err := parseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: hourly.time[%d]: %v", ErrMalformedInput, i, err)
		}

		for _, s := range required {
			if s.values[i] == nil {
				return nil, fmt.Errorf("%w: hourly.%s[%d] is null", ErrMalformedInput, s.name, i)
			}
		}

		rec := HourlyRecord{
			ID:            fmt.Sprintf("%s-%d", raw, i),
			Time:          ts,
			Date:          dateOf(ts),
			Hour:          ts.Hour(),
			Temperature:   *h.Temperature[i],
			Precipitation: *h.Precipitation[i],
			Snowfall:      *h.Snowfall[i],
			WindSpeed:     *h.WindSpeed[i],
			WindGusts:     *h.WindGusts[i],
			WindDirection: *h.WindDirection[i],
			CloudCover:    *h.CloudCover[i],
		}
		if hasSunshine && h.SunshineDuration[i] != nil {
			s := *h.SunshineDuration[i]
			rec.SunshineSeconds = &s
		}

		records = append(records, rec)
	}

	return records, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// dateOf truncates a wall-clock time to its calendar date at midnight UTC.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// daysBetween returns the whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}
