package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

// ErrNotFound means no forecast view matched the lookup.
var ErrNotFound = errors.New("no forecast view for location")

// ViewHistory is the list of views built for one location, oldest first.
type ViewHistory struct {
	Views []weather.ForecastView
}

// MemoryStore keeps the views built by the running process. Older views are
// dropped by count and by age; the view saved last always survives.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*ViewHistory

	maxHistory int           // 0 keeps every view
	maxAge     time.Duration // 0 disables age trimming

	now func() time.Time
}

// NewMemoryStore returns an empty store. Non-positive limits disable the
// corresponding trimming.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*ViewHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveView records view as the newest view of loc.
func (s *MemoryStore) SaveView(loc weather.Location, view weather.ForecastView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.data[loc.Key()]
	if h == nil {
		h = &ViewHistory{}
		s.data[loc.Key()] = h
	}
	h.Views = s.trim(append(h.Views, view))
}

// trim applies the retention limits to views, never removing the last one.
func (s *MemoryStore) trim(views []weather.ForecastView) []weather.ForecastView {
	if s.maxHistory > 0 && len(views) > s.maxHistory {
		views = views[len(views)-s.maxHistory:]
	}
	if s.maxAge <= 0 {
		return views
	}

	cutoff := s.now().Add(-s.maxAge)
	first := 0
	for first < len(views)-1 && views[first].FetchedAt.Before(cutoff) {
		first++
	}
	return views[first:]
}

// GetLatest returns the view saved last for loc.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.ForecastView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.data[loc.Key()]
	if h == nil || len(h.Views) == 0 {
		return weather.ForecastView{}, ErrNotFound
	}
	return h.Views[len(h.Views)-1], nil
}

// GetRange returns the views of loc with FetchedAt in [from, to].
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.ForecastView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.data[loc.Key()]
	if h == nil {
		return nil, ErrNotFound
	}

	var out []weather.ForecastView
	for _, v := range h.Views {
		if v.FetchedAt.Before(from) || v.FetchedAt.After(to) {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}
