package weather

import (
	"fmt"
	"time"
)

func fp(v float64) *float64 { return &v }

var testDay = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

// rec builds a record on testDay.
func rec(hour int, cloud, precip float64) HourlyRecord {
	ts := testDay.Add(time.Duration(hour) * time.Hour)
	return HourlyRecord{
		ID:            fmt.Sprintf("%s-%d", ts.Format("2006-01-02T15:04"), hour),
		Time:          ts,
		Date:          testDay,
		Hour:          hour,
		Temperature:   10,
		Precipitation: precip,
		CloudCover:    cloud,
	}
}

// series builds hours consecutive hourly values starting at start, with the
// same cloud cover and precipitation every hour and no sunshine series.
func series(start time.Time, hours int, cloud, precip float64) HourlySeries {
	var h HourlySeries
	for i := 0; i < hours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		h.Time = append(h.Time, ts.Format("2006-01-02T15:04"))
		h.Temperature = append(h.Temperature, fp(float64(i%24)))
		h.Precipitation = append(h.Precipitation, fp(precip))
		h.Snowfall = append(h.Snowfall, fp(0))
		h.WindSpeed = append(h.WindSpeed, fp(12))
		h.WindGusts = append(h.WindGusts, fp(25))
		h.WindDirection = append(h.WindDirection, fp(270))
		h.CloudCover = append(h.CloudCover, fp(cloud))
	}
	return h
}
