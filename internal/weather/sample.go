package weather

import "sort"

const hoursPerDay = 24

// Sample keeps the records whose hour is a multiple of cadence, ordered by
// hour. If nothing matches, or cadence is outside 1..24, the whole bucket is
// returned so a detailed day is never empty.
func Sample(bucket DayBucket, cadence int) []HourlyRecord {
	if cadence <= 0 || cadence > hoursPerDay {
		return bucket.Hours
	}

	var out []HourlyRecord
	for _, r := range bucket.Hours {
		if r.Hour%cadence == 0 {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return bucket.Hours
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hour < out[j].Hour
	})
	return out
}
