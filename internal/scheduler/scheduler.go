package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Sweeper is anything that can drop expired entries and report how many it dropped.
type Sweeper interface {
	Sweep() int
}

// Scheduler periodically evicts idle page sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler. A non-positive interval falls back to 5 minutes.
func New(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.runSweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("session sweeper started", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) runSweep() {
	removed := s.sweeper.Sweep()
	if removed > 0 {
		s.logger.Info("swept idle sessions", zap.Int("removed", removed))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
