package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDayPartitions(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records, err := Normalize(series(start, 72, 30, 0))
	require.NoError(t, err)

	buckets := GroupByDay(records)
	require.Len(t, buckets, 3)

	seen := make(map[string]bool)
	total := 0
	for i, b := range buckets {
		assert.Equal(t, start.AddDate(0, 0, i), b.Date)
		assert.Len(t, b.Hours, 24)
		for j, r := range b.Hours {
			assert.Equal(t, b.Date, r.Date)
			assert.Equal(t, j, r.Hour)
			assert.False(t, seen[r.ID], "record %s in more than one bucket", r.ID)
			seen[r.ID] = true
			total++
		}
	}
	assert.Equal(t, len(records), total)
}

func TestGroupByDayPartialDays(t *testing.T) {
	start := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	records, err := Normalize(series(start, 6, 30, 0))
	require.NoError(t, err)

	buckets := GroupByDay(records)
	require.Len(t, buckets, 2)
	assert.Len(t, buckets[0].Hours, 4)
	assert.Len(t, buckets[1].Hours, 2)
	assert.Equal(t, 0, buckets[1].Hours[0].Hour)
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}
