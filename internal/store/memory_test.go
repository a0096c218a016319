package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

var (
	braunschweig = weather.Location{City: "Braunschweig", Country: "DE"}
	base         = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
)

func viewAt(id string, fetched time.Time) weather.ForecastView {
	return weather.ForecastView{ID: id, FetchedAt: fetched}
}

func TestMemoryStoreLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)

	_, err := s.GetLatest(braunschweig)
	assert.ErrorIs(t, err, ErrNotFound)

	s.SaveView(braunschweig, viewAt("a", base))
	s.SaveView(braunschweig, viewAt("b", base.Add(time.Minute)))

	v, err := s.GetLatest(braunschweig)
	require.NoError(t, err)
	assert.Equal(t, "b", v.ID)

	_, err = s.GetLatest(weather.Location{City: "Hannover", Country: "DE"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMaxHistory(t *testing.T) {
	s := NewMemoryStore(2, 0)
	for i, id := range []string{"a", "b", "c"} {
		s.SaveView(braunschweig, viewAt(id, base.Add(time.Duration(i)*time.Minute)))
	}

	views, err := s.GetRange(braunschweig, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "b", views[0].ID)
	assert.Equal(t, "c", views[1].ID)
}

func TestMemoryStoreMaxAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return base }

	s.SaveView(braunschweig, viewAt("old", base.Add(-2*time.Hour)))
	s.SaveView(braunschweig, viewAt("fresh", base.Add(-time.Minute)))
	s.SaveView(braunschweig, viewAt("new", base))

	views, err := s.GetRange(braunschweig, base.Add(-24*time.Hour), base)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "fresh", views[0].ID)
}

func TestMemoryStoreKeepsNewestStaleView(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return base }

	s.SaveView(braunschweig, viewAt("stale-1", base.Add(-3*time.Hour)))
	s.SaveView(braunschweig, viewAt("stale-2", base.Add(-2*time.Hour)))

	v, err := s.GetLatest(braunschweig)
	require.NoError(t, err)
	assert.Equal(t, "stale-2", v.ID)

	views, err := s.GetRange(braunschweig, base.Add(-24*time.Hour), base)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestMemoryStoreRangeIsInclusive(t *testing.T) {
	s := NewMemoryStore(0, 0)
	s.SaveView(braunschweig, viewAt("a", base))
	s.SaveView(braunschweig, viewAt("b", base.Add(time.Hour)))
	s.SaveView(braunschweig, viewAt("c", base.Add(2*time.Hour)))

	views, err := s.GetRange(braunschweig, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = s.GetRange(braunschweig, base.Add(3*time.Hour), base.Add(4*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCountAndAgeTogether(t *testing.T) {
	s := NewMemoryStore(3, time.Hour)
	s.now = func() time.Time { return base }

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		s.SaveView(braunschweig, viewAt(id, base.Add(time.Duration(i-3)*time.Hour)))
	}

	// Count keeps c, d, e; age then drops c (2h old).
	views, err := s.GetRange(braunschweig, base.Add(-24*time.Hour), base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "d", views[0].ID)
	assert.Equal(t, "e", views[1].ID)
}
