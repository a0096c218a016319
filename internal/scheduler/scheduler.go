package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

const defaultInterval = 30 * time.Minute

// Refresher is the part of the forecast service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) (weather.ForecastView, error)
}

// Scheduler periodically refreshes the forecast view.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. Each run is bounded by timeout.
func New(interval, timeout time.Duration, service Refresher, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
// The first refresh runs immediately; a run still in flight is never started
// a second time.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = defaultInterval
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval", interval)
	return nil
}

func (s *Scheduler) run() {
	s.logger.Debug("running forecast refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	view, err := s.service.Refresh(ctx)
	if err != nil {
		s.logger.Error("forecast refresh failed", "error", err)
		return
	}
	s.logger.Debug("completed forecast refresh job", "view_id", view.ID)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
