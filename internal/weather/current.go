package weather

import (
	"math"
	"time"
)

// WindClass is a wind speed band in km/h.
type WindClass string

const (
	WindCalm     WindClass = "calm"
	WindLight    WindClass = "light"
	WindModerate WindClass = "moderate"
	WindStrong   WindClass = "strong"
	WindStorm    WindClass = "storm"
)

// ClassifyWind returns the band of a wind speed in km/h.
func ClassifyWind(kmh float64) WindClass {
	switch {
	case kmh < 5:
		return WindCalm
	case kmh < 20:
		return WindLight
	case kmh < 40:
		return WindModerate
	case kmh < 60:
		return WindStrong
	default:
		return WindStorm
	}
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Compass returns the 8-point compass direction the wind blows from.
func Compass(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Floor(math.Mod(d+22.5, 360) / 45))
	return compassPoints[idx]
}

func (r HourlyRecord) WindClass() WindClass { return ClassifyWind(r.WindSpeed) }
func (r HourlyRecord) GustClass() WindClass { return ClassifyWind(r.WindGusts) }
func (r HourlyRecord) WindCompass() string  { return Compass(r.WindDirection) }

// CurrentRecord finds the record for "now": the first hour on now's date
// whose hour is not before now's hour, searched across detailed groups.
// now must already be in the forecast's local time.
func CurrentRecord(groups []ViewGroup, now time.Time) (HourlyRecord, bool) {
	today := dateOf(now)
	for _, g := range groups {
		if !g.IsDetailed() || !g.Date.Equal(today) {
			continue
		}
		for _, h := range g.Hours {
			if h.Hour >= now.Hour() {
				return h, true
			}
		}
	}
	return HourlyRecord{}, false
}

// CurrentConditions is the headline for the current hour.
type CurrentConditions struct {
	Record    HourlyRecord `json:"record"`
	Condition Condition    `json:"condition"`
	Wind      WindClass    `json:"wind"`
	Direction string       `json:"direction"`
}

// Current builds the headline conditions, classifying the hour with its
// sunshine signal when present.
func Current(th Thresholds, groups []ViewGroup, now time.Time) (CurrentConditions, bool) {
	rec, ok := CurrentRecord(groups, now)
	if !ok {
		return CurrentConditions{}, false
	}
	return CurrentConditions{
		Record:    rec,
		Condition: th.Classify(rec.CloudCover, rec.Precipitation, rec.SunshineSeconds),
		Wind:      rec.WindClass(),
		Direction: rec.WindCompass(),
	}, true
}
