package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullDay() DayBucket {
	b := DayBucket{Date: testDay}
	for h := 0; h < 24; h++ {
		b.Hours = append(b.Hours, rec(h, 10, 0))
	}
	return b
}

func hoursOf(records []HourlyRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.Hour)
	}
	return out
}

func TestSampleCadence(t *testing.T) {
	b := fullDay()

	assert.Equal(t, []int{0, 3, 6, 9, 12, 15, 18, 21}, hoursOf(Sample(b, 3)))
	assert.Equal(t, []int{0, 6, 12, 18}, hoursOf(Sample(b, 6)))
	assert.Len(t, Sample(b, 1), 24)
}

func TestSampleFallsBackToWholeBucket(t *testing.T) {
	b := DayBucket{Date: testDay, Hours: []HourlyRecord{rec(1, 10, 0), rec(2, 10, 0), rec(5, 10, 0)}}

	// No hour is a multiple of 3, so the bucket comes back whole.
	assert.Equal(t, []int{1, 2, 5}, hoursOf(Sample(b, 3)))
	assert.Equal(t, []int{1, 2, 5}, hoursOf(Sample(b, 0)))
	assert.Len(t, Sample(fullDay(), 25), 24)
	assert.Equal(t, []int{0}, hoursOf(Sample(fullDay(), 24)))
}

func TestSampleOrdersByHour(t *testing.T) {
	b := DayBucket{Date: testDay, Hours: []HourlyRecord{rec(12, 10, 0), rec(3, 10, 0), rec(6, 10, 0), rec(7, 10, 0)}}

	assert.Equal(t, []int{3, 6, 12}, hoursOf(Sample(b, 3)))
}
