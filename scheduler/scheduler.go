// Package scheduler implements background job scheduling
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper is the cache sweep operation the scheduler drives.
type Sweeper interface {
	ClearExpired() int
}

// Scheduler runs the periodic cache sweep while the store is active. It is
// started and stopped deterministically with the application lifecycle: no
// background work before Start or after Stop.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
}

// NewScheduler creates a sweep scheduler with the given interval
func NewScheduler(sweeper Sweeper, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		removed := s.sweeper.ClearExpired()
		slog.Debug("scheduled cache sweep completed", "removed", removed)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("cache sweep scheduler started", "interval", interval)
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	slog.Info("cache sweep scheduler stopped")
}
