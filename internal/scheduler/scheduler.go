// Package scheduler runs periodic background jobs.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		logger:    logger,
	}
}

// Every registers job to run at the given interval, starting immediately
// once the scheduler is started
func (s *Scheduler) Every(name string, interval time.Duration, job func() error) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, name)
	}

	_, err := s.scheduler.Every(interval).Tag(name).Do(func() {
		start := time.Now()
		if err := job(); err != nil {
			s.logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Debug("Scheduled job completed",
			zap.String("job", name),
			zap.Duration("took", time.Since(start)),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

// Start begins running all scheduled tasks without blocking
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
