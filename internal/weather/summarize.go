package weather

import "math"

const (
	// A day with no more precipitation and snowfall than this may have its
	// condition upgraded from measured sunshine.
	dryDayLimit = 0.5

	sunnyDayHours  = 5.0
	brightDayHours = 2.0

	// Minimum amount that is worth showing as rain or snow.
	visiblePrecipitation = 0.1
)

// FreezingRule treats a freezing day's precipitation as snow for display,
// converting 1 mm of precipitation to 1 cm of snow.
type FreezingRule struct {
	Enabled bool
	MaxTemp float64
}

// Summarizer derives a DaySummary from one day of hourly records.
type Summarizer struct {
	Thresholds Thresholds
	// SunshineBias scales modeled sunshine, which the forecast source
	// systematically overestimates.
	SunshineBias float64
	// CloudWeight is the share of raw cloud cover in the blended average; the
	// rest comes from the sunshine-derived estimate.
	CloudWeight float64
	Freezing    FreezingRule
}

// DefaultSummarizer returns a Summarizer with the standard tuning.
func DefaultSummarizer() Summarizer {
	return Summarizer{
		Thresholds:   DefaultThresholds(),
		SunshineBias: 0.75,
		CloudWeight:  0.3,
		Freezing:     FreezingRule{Enabled: true, MaxTemp: 1},
	}
}

// Summarize aggregates a bucket. Temperatures and totals use every hour;
// sunshine and cloud cover only use hours inside the sun window.
func (s Summarizer) Summarize(bucket DayBucket, sun SunWindow) DaySummary {
	all := collectStats(bucket.Hours)

	daylight := make([]HourlyRecord, 0, len(bucket.Hours))
	for _, h := range bucket.Hours {
		if sun.Contains(h.Hour) {
			daylight = append(daylight, h)
		}
	}
	day := collectStats(daylight)
	cloudBase := day
	if day.n == 0 {
		cloudBase = all
	}

	summary := DaySummary{
		MaxTemp:            all.maxTemp,
		MinTemp:            all.minTemp,
		TotalPrecipitation: all.sumPrecip,
		TotalSnowfall:      all.sumSnow,
		DominantCondition:  DominantCondition(s.Thresholds, bucket.Hours),
	}

	if all.sunSamples == 0 {
		// No sunshine signal at all: fall back to plain cloud cover.
		summary.AvgCloudCover = int(math.Round(cloudBase.avgCloud()))
	} else {
		summary.SunshineHours = day.sunSeconds / 3600 * s.SunshineBias
		summary.AvgCloudCover = s.blendCloudCover(cloudBase.avgCloud(), summary.SunshineHours, sun.Hours())
		summary.DominantCondition = upgradeBySunshine(summary)
	}

	summary.Precipitation = s.precipitationDisplay(summary)
	return summary
}

func (s Summarizer) blendCloudCover(rawAvg, sunshineHours float64, windowHours int) int {
	estimate := 100.0
	if windowHours > 0 {
		estimate = 100 - sunshineHours/float64(windowHours)*100
		estimate = math.Max(0, math.Min(100, estimate))
	}
	blended := s.CloudWeight*rawAvg + (1-s.CloudWeight)*estimate
	return int(math.Round(blended))
}

// upgradeBySunshine moves a dry day's cloud-derived condition toward clearer
// categories when the sunshine measurement disagrees with it.
func upgradeBySunshine(d DaySummary) Condition {
	c := d.DominantCondition
	if d.TotalPrecipitation > dryDayLimit || d.TotalSnowfall > dryDayLimit {
		return c
	}
	switch {
	case d.SunshineHours >= sunnyDayHours && (c == ConditionOvercast || c == ConditionCloudy):
		return ConditionPartlyCloudy
	case d.SunshineHours >= brightDayHours && c == ConditionOvercast:
		return ConditionCloudy
	}
	return c
}

func (s Summarizer) precipitationDisplay(d DaySummary) PrecipitationDisplay {
	freezing := s.Freezing.Enabled && d.MaxTemp < s.Freezing.MaxTemp
	switch {
	case d.TotalSnowfall >= visiblePrecipitation:
		return PrecipitationDisplay{Kind: PrecipitationSnow, Amount: d.TotalSnowfall, Unit: "cm"}
	case freezing && d.TotalPrecipitation >= visiblePrecipitation:
		return PrecipitationDisplay{Kind: PrecipitationSnow, Amount: d.TotalPrecipitation, Unit: "cm"}
	case d.TotalPrecipitation >= visiblePrecipitation:
		return PrecipitationDisplay{Kind: PrecipitationRain, Amount: d.TotalPrecipitation, Unit: "mm"}
	default:
		return PrecipitationDisplay{Kind: PrecipitationNone, Amount: 0, Unit: "mm"}
	}
}
