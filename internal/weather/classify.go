package weather

// Thresholds are the hourly precipitation intensities (mm/h) that separate
// light, moderate and heavy rain.
type Thresholds struct {
	Light    float64
	Moderate float64
	Heavy    float64
}

// DefaultThresholds returns the standard rain intensity boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Light:    0.5,
		Moderate: 2.5,
		Heavy:    7.5,
	}
}

// Intensity is a precipitation band.
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHeavy    Intensity = "heavy"
)

// Intensity returns the band the given hourly precipitation falls in.
func (t Thresholds) Intensity(precip float64) Intensity {
	switch {
	case precip >= t.Heavy:
		return IntensityHeavy
	case precip >= t.Moderate:
		return IntensityModerate
	case precip >= t.Light:
		return IntensityLight
	default:
		return IntensityNone
	}
}

// Classify maps one hour's signals to a condition. Precipitation always wins
// over sky state. When sunshine (seconds within the hour) is given it decides
// the sky state; otherwise cloud cover does.
func (t Thresholds) Classify(cloudCover, precip float64, sunshine *float64) Condition {
	switch t.Intensity(precip) {
	case IntensityHeavy:
		return ConditionHeavyRain
	case IntensityModerate:
		return ConditionRain
	case IntensityLight:
		return ConditionLightRain
	}

	if sunshine != nil {
		pct := *sunshine / 3600 * 100
		switch {
		case pct >= 70:
			return ConditionClear
		case pct >= 40:
			return ConditionPartlyCloudy
		case pct >= 15:
			return ConditionCloudy
		default:
			return ConditionOvercast
		}
	}

	switch {
	case cloudCover < 20:
		return ConditionClear
	case cloudCover < 50:
		return ConditionPartlyCloudy
	case cloudCover < 80:
		return ConditionCloudy
	default:
		return ConditionOvercast
	}
}
