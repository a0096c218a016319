package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	start := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	h := series(start, 4, 40, 0.2)

	records, err := Normalize(h)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "2024-03-10T22:00-0", records[0].ID)
	assert.Equal(t, 22, records[0].Hour)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, 0, records[2].Hour)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), records[2].Date)
	assert.Equal(t, 40.0, records[3].CloudCover)
	assert.Equal(t, 0.2, records[3].Precipitation)
	assert.Nil(t, records[0].SunshineSeconds)

	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].Time.Before(records[i].Time))
	}
}

func TestNormalizeSunshine(t *testing.T) {
	h := series(testDay, 3, 10, 0)
	h.SunshineDuration = []*float64{fp(0), nil, fp(1800)}

	records, err := Normalize(h)
	require.NoError(t, err)

	require.NotNil(t, records[0].SunshineSeconds)
	assert.Nil(t, records[1].SunshineSeconds)
	assert.Equal(t, 1800.0, *records[2].SunshineSeconds)
}

func TestNormalizeSecondsLayout(t *testing.T) {
	h := series(testDay, 1, 10, 0)
	h.Time[0] = "2024-03-10T05:00:00"

	records, err := Normalize(h)
	require.NoError(t, err)
	assert.Equal(t, 5, records[0].Hour)
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *HourlySeries)
	}{
		{"temperature shorter than time", func(h *HourlySeries) { h.Temperature = h.Temperature[:2] }},
		{"cloud cover longer than time", func(h *HourlySeries) { h.CloudCover = append(h.CloudCover, fp(1)) }},
		{"sunshine length mismatch", func(h *HourlySeries) { h.SunshineDuration = []*float64{fp(0)} }},
		{"null required value", func(h *HourlySeries) { h.WindSpeed[1] = nil }},
		{"bad timestamp", func(h *HourlySeries) { h.Time[2] = "10.03.2024 02:00" }},
		{"empty time", func(h *HourlySeries) { *h = HourlySeries{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := series(testDay, 3, 10, 0)
			tt.mutate(&h)

			records, err := Normalize(h)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Nil(t, records)
		})
	}
}
