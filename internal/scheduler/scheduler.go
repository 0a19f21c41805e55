package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"SimMarket/internal/usecase"
	applogger "SimMarket/pkg/logger"
)

// Scheduler owns the engine's periodic jobs: generation ticks, rollup
// samples, and the daily series reset. Timer handles live on the object, not
// in package globals, and Stop releases all of them.
type Scheduler struct {
	cron    *cron.Cron
	sweeper *usecase.Sweeper
	logger  *applogger.Logger
	ctx     context.Context
}

// New creates a Scheduler with seconds-granularity cron parsing.
func New(ctx context.Context, sweeper *usecase.Sweeper, logger *applogger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		logger:  logger,
		ctx:     ctx,
	}
}

// RegisterAll registers the tick, rollup, and reset jobs.
func (s *Scheduler) RegisterAll(tickCron, rollupCron, resetCron string) error {
	if _, err := s.cron.AddFunc(tickCron, func() {
		s.sweeper.TickSweep(s.ctx)
	}); err != nil {
		return fmt.Errorf("register tick sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(rollupCron, func() {
		s.sweeper.RollupSweep(s.ctx)
	}); err != nil {
		return fmt.Errorf("register rollup sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(resetCron, func() {
		s.sweeper.DailyReset(s.ctx)
	}); err != nil {
		return fmt.Errorf("register daily reset: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for any running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
