package weather

import (
	"fmt"
	"time"
)

// SunWindow is the local sunrise and sunset of one date.
type SunWindow struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// DefaultSunWindow is 06:00-18:00 of the given date.
func DefaultSunWindow(date time.Time) SunWindow {
	d := dateOf(date)
	return SunWindow{
		Sunrise: d.Add(6 * time.Hour),
		Sunset:  d.Add(18 * time.Hour),
	}
}

// SunriseHour and SunsetHour are the local hours of day of the window edges.
func (w SunWindow) SunriseHour() int { return w.Sunrise.Hour() }
func (w SunWindow) SunsetHour() int  { return w.Sunset.Hour() }

// Hours is the length of the daylight window in whole hours.
func (w SunWindow) Hours() int {
	return w.SunsetHour() - w.SunriseHour()
}

// Contains reports whether the given hour of day is in [sunrise, sunset).
func (w SunWindow) Contains(hour int) bool {
	return hour >= w.SunriseHour() && hour < w.SunsetHour()
}

// SunWindows looks up sun windows by calendar date.
type SunWindows map[string]SunWindow

// For returns the window of the date, or the default window when the source
// had no entry for it.
func (s SunWindows) For(date time.Time) SunWindow {
	if w, ok := s[dateKey(date)]; ok {
		return w
	}
	return DefaultSunWindow(date)
}

// BuildSunWindows indexes the daily sunrise/sunset arrays. A nil series
// yields an empty lookup.
func BuildSunWindows(d *DailySeries) (SunWindows, error) {
	windows := make(SunWindows)
	if d == nil {
		return windows, nil
	}
	if len(d.Sunrise) != len(d.Time) || len(d.Sunset) != len(d.Time) {
		return nil, fmt.Errorf("%w: daily arrays differ in length (time=%d sunrise=%d sunset=%d)",
			ErrMalformedInput, len(d.Time), len(d.Sunrise), len(d.Sunset))
	}

	for i, day := range d.Time {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("%w: daily.time[%d]: %v", ErrMalformedInput, i, err)
		}
		rise, err := parseTimestamp(d.Sunrise[i])
		if err != nil {
			return nil, fmt.Errorf("%w: daily.sunrise[%d]: %v", ErrMalformedInput, i, err)
		}
		set, err := parseTimestamp(d.Sunset[i])
		if err != nil {
			return nil, fmt.Errorf("%w: daily.sunset[%d]: %v", ErrMalformedInput, i, err)
		}
		windows[dateKey(date)] = SunWindow{Sunrise: rise, Sunset: set}
	}

	return windows, nil
}
