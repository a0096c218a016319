package weather

import (
	"fmt"
	"sort"
	"time"
)

// DetailMode selects how detailed days are rendered.
type DetailMode string

const (
	// DetailSampled keeps only hours on the per-day cadence.
	DetailSampled DetailMode = "sampled"
	// DetailAll passes every hour of a detailed day through.
	DetailAll DetailMode = "all"
)

// DetailPolicy decides which days are detailed and at what cadence. Day
// offset i from the reference date is detailed when i < len(Cadences), and is
// sampled every Cadences[i] hours in sampled mode.
type DetailPolicy struct {
	Mode     DetailMode
	Cadences []int
}

// DefaultDetailPolicy details today every 3 hours and tomorrow every 6 hours.
func DefaultDetailPolicy() DetailPolicy {
	return DetailPolicy{Mode: DetailSampled, Cadences: []int{3, 6}}
}

// Detailed reports whether the day at the given offset is shown hour by hour.
func (p DetailPolicy) Detailed(offset int) bool {
	return offset >= 0 && offset < len(p.Cadences)
}

// Cadence returns the sampling cadence for a detailed offset. In all mode
// every hour is kept.
func (p DetailPolicy) Cadence(offset int) int {
	if p.Mode == DetailAll || !p.Detailed(offset) {
		return 1
	}
	return p.Cadences[offset]
}

// Pipeline turns one raw payload into the ordered day view.
type Pipeline struct {
	Summarizer Summarizer
	Detail     DetailPolicy
}

// DefaultPipeline returns a pipeline with the standard tuning.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Summarizer: DefaultSummarizer(),
		Detail:     DefaultDetailPolicy(),
	}
}

// Process runs normalize, group and sample-or-summarize over the payload and
// returns one group per calendar day, ascending. referenceDate is "today" in
// the forecast's local time; only its date part is used.
func (p Pipeline) Process(payload Payload, referenceDate time.Time) ([]ViewGroup, error) {
	records, err := Normalize(payload.Hourly)
	if err != nil {
		return nil, err
	}
	windows, err := BuildSunWindows(payload.Daily)
	if err != nil {
		return nil, err
	}

	buckets := GroupByDay(records)
	groups := make([]ViewGroup, 0, len(buckets))

	for _, b := range buckets {
		offset := daysBetween(referenceDate, b.Date)
		g := ViewGroup{
			ID:   dateKey(b.Date),
			Date: b.Date,
		}
		if p.Detail.Detailed(offset) {
			g.Mode = ModeDetailed
			g.Hours = Sample(b, p.Detail.Cadence(offset))
		} else {
			g.Mode = ModeSummary
			summary := p.Summarizer.Summarize(b, windows.For(b.Date))
			g.Summary = &summary
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})

	return groups, nil
}

// Validate checks the pipeline tuning for values that would make the output
// meaningless.
func (p Pipeline) Validate() error {
	th := p.Summarizer.Thresholds
	if !(th.Light > 0 && th.Light <= th.Moderate && th.Moderate <= th.Heavy) {
		return fmt.Errorf("rain thresholds must satisfy 0 < light <= moderate <= heavy, got %v/%v/%v",
			th.Light, th.Moderate, th.Heavy)
	}
	if p.Summarizer.CloudWeight < 0 || p.Summarizer.CloudWeight > 1 {
		return fmt.Errorf("cloud weight must be within [0,1], got %v", p.Summarizer.CloudWeight)
	}
	if p.Summarizer.SunshineBias <= 0 {
		return fmt.Errorf("sunshine bias must be positive, got %v", p.Summarizer.SunshineBias)
	}
	if p.Detail.Mode != DetailSampled && p.Detail.Mode != DetailAll {
		return fmt.Errorf("unknown detail mode %q", p.Detail.Mode)
	}
	if len(p.Detail.Cadences) == 0 {
		return fmt.Errorf("detail cadences must name at least one day")
	}
	for i, c := range p.Detail.Cadences {
		if c <= 0 {
			return fmt.Errorf("detail cadence for day %d must be positive, got %d", i, c)
		}
	}
	return nil
}
