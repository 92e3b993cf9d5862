package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of work invoked on every tick.
type Job func(ctx context.Context) error

// Scheduler invokes a job at a fixed interval until its context is cancelled.
type Scheduler struct {
	interval time.Duration
	logger   *zap.Logger
}

// New creates a scheduler ticking at the given interval.
func New(interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		logger:   logger,
	}
}

// Run blocks, invoking job once per interval. The first invocation happens
// after one full interval, matching an hourly cron-style trigger. A failing
// job is logged and never stops the ticker; the next tick retries naturally.
func (s *Scheduler) Run(ctx context.Context, name string, job Job) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler started",
		zap.String("job", name),
		zap.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped", zap.String("job", name))
			return
		case <-ticker.C:
			if err := job(ctx); err != nil {
				s.logger.Error("Scheduled job failed",
					zap.String("job", name),
					zap.Error(err),
				)
			}
		}
	}
}
