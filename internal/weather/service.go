package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoProviders is returned when a refresh is requested without any
	// configured provider.
	ErrNoProviders = errors.New("no forecast providers configured")
	// ErrNoCurrentHour is returned when the latest view has no hour for now.
	ErrNoCurrentHour = errors.New("no forecast hour for the current time")
)

// Service fetches forecasts from providers, runs the pipeline and keeps the
// last good view in the store.
type Service struct {
	store     Store
	providers []Provider
	pipeline  Pipeline
	location  Location
	days      int
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new Service. Providers are tried in order; the first
// one that yields a valid view wins.
func NewService(store Store, providers []Provider, pipeline Pipeline, loc Location, days int, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		providers: providers,
		pipeline:  pipeline,
		location:  loc,
		days:      days,
		logger:    logger.With("component", "forecast-service"),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Location returns the configured forecast location.
func (s *Service) Location() Location {
	return s.location
}

// Refresh fetches a new payload and replaces the stored view. When every
// provider fails the previous view stays in place and the joined errors are
// returned.
func (s *Service) Refresh(ctx context.Context) (ForecastView, error) {
	if len(s.providers) == 0 {
		return ForecastView{}, ErrNoProviders
	}

	var errs []error
	for _, p := range s.providers {
		payload, err := p.FetchForecast(ctx, s.location, s.days)
		if err != nil {
			s.logger.Warn("provider fetch failed", "provider", p.Name(), "location", s.location.Key(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		view, err := s.Build(payload, p.Name())
		if err != nil {
			s.logger.Error("provider returned unusable forecast", "provider", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		s.store.SaveView(s.location, view)
		s.logger.Info("forecast refreshed",
			"provider", p.Name(),
			"view_id", view.ID,
			"reference_date", view.ReferenceDate.Format("2006-01-02"),
			"days", len(view.Groups),
		)
		return view, nil
	}

	s.logger.Error("no provider produced a forecast; keeping last good view", "location", s.location.Key())
	return ForecastView{}, errors.Join(errs...)
}

// Build runs the pipeline over one payload. The reference date is today in
// the payload's timezone.
func (s *Service) Build(payload Payload, provider string) (ForecastView, error) {
	localNow := s.now().In(zoneFor(payload.Timezone, payload.UTCOffsetSeconds))
	return s.BuildAt(payload, provider, dateOf(localNow))
}

// BuildAt runs the pipeline with an explicit reference date.
func (s *Service) BuildAt(payload Payload, provider string, referenceDate time.Time) (ForecastView, error) {
	ref := dateOf(referenceDate)

	groups, err := s.pipeline.Process(payload, ref)
	if err != nil {
		return ForecastView{}, err
	}

	return ForecastView{
		ID:            s.newID(),
		Location:      s.location,
		Provider:      provider,
		FetchedAt:     s.now().UTC(),
		ReferenceDate: ref,
		Timezone:      payload.Timezone,
		UTCOffset:     payload.UTCOffsetSeconds,
		Groups:        groups,
	}, nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (ForecastView, error) {
	return s.store.GetLatest(s.location)
}

// History delegates to the underlying store.
func (s *Service) History(from, to time.Time) ([]ForecastView, error) {
	return s.store.GetRange(s.location, from, to)
}

// Current returns the headline conditions for the current hour of the
// latest view.
func (s *Service) Current() (CurrentConditions, error) {
	view, err := s.store.GetLatest(s.location)
	if err != nil {
		return CurrentConditions{}, err
	}

	localNow := s.now().In(zoneFor(view.Timezone, view.UTCOffset))

	cur, ok := Current(s.pipeline.Summarizer.Thresholds, view.Groups, localNow)
	if !ok {
		return CurrentConditions{}, ErrNoCurrentHour
	}
	return cur, nil
}

// zoneFor resolves an IANA zone name, falling back to a fixed offset when
// the name is unknown to the host.
func zoneFor(name string, offsetSeconds int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone(name, offsetSeconds)
}
