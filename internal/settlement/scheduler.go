package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// TickLock guards a settlement tick so that only one settler instance runs a
// pass at a time.
type TickLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Scheduler drives the settler on a fixed interval. It must be started
// explicitly and runs until Stop is called.
type Scheduler struct {
	settler  *Settler
	lock     TickLock
	interval time.Duration
	logger   zerolog.Logger

	cron *cron.Cron
}

func NewScheduler(settler *Settler, lock TickLock, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		settler:  settler,
		lock:     lock,
		interval: interval,
		logger:   logger,
	}
}

// Start registers the periodic tick and begins scheduling. It returns
// immediately; ticks run on the cron's goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := c.AddFunc(spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule settlement tick: %w", err)
	}

	s.cron = c
	c.Start()
	s.logger.Info().Dur("interval", s.interval).Msg("Settlement scheduler started")
	return nil
}

// Stop halts scheduling and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Settlement scheduler stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to acquire settlement lock")
		return
	}
	if !acquired {
		s.logger.Debug().Msg("Settlement tick skipped, lock held elsewhere")
		return
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Failed to release settlement lock")
		}
	}()

	if err := s.settler.RunTick(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Settlement tick failed")
	}
}
