package weather

import "math"

// conditionTally counts condition votes while remembering the order in which
// each condition was first seen.
type conditionTally struct {
	order  []Condition
	counts map[Condition]int
}

func newConditionTally() *conditionTally {
	return &conditionTally{counts: make(map[Condition]int)}
}

func (t *conditionTally) add(c Condition) {
	if _, seen := t.counts[c]; !seen {
		t.order = append(t.order, c)
	}
	t.counts[c]++
}

// winner returns the most frequent condition. Ties go to the condition seen
// first. An empty tally yields fallback.
func (t *conditionTally) winner(fallback Condition) Condition {
	best := fallback
	bestCount := 0
	for _, c := range t.order {
		if n := t.counts[c]; n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}

// DominantCondition classifies every hour on cloud cover and precipitation
// only and returns the majority label. An empty slice yields cloudy.
func DominantCondition(th Thresholds, hours []HourlyRecord) Condition {
	tally := newConditionTally()
	for _, h := range hours {
		tally.add(th.Classify(h.CloudCover, h.Precipitation, nil))
	}
	return tally.winner(ConditionCloudy)
}

// hourStats accumulates the plain aggregates of a set of hours.
type hourStats struct {
	n          int
	maxTemp    float64
	minTemp    float64
	sumPrecip  float64
	sumSnow    float64
	sumCloud   float64
	sunSeconds float64
	sunSamples int
}

func collectStats(hours []HourlyRecord) hourStats {
	s := hourStats{
		maxTemp: math.Inf(-1),
		minTemp: math.Inf(1),
	}
	for _, h := range hours {
		s.n++
		s.maxTemp = math.Max(s.maxTemp, h.Temperature)
		s.minTemp = math.Min(s.minTemp, h.Temperature)
		s.sumPrecip += h.Precipitation
		s.sumSnow += h.Snowfall
		s.sumCloud += h.CloudCover
		if h.SunshineSeconds != nil {
			s.sunSeconds += *h.SunshineSeconds
			s.sunSamples++
		}
	}
	if s.n == 0 {
		s.maxTemp, s.minTemp = 0, 0
	}
	return s
}

func (s hourStats) avgCloud() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sumCloud / float64(s.n)
}
