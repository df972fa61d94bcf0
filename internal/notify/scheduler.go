package notify

import (
	"context"
	"time"

	"github.com/medstock/medstock/pkg/logger"
)

// Scheduler drives the scan/dispatch cycle at a fixed rate for the lifetime
// of the process. Cycles never overlap: the next tick's scan starts only
// after the previous dispatch has finished and the interval has elapsed,
// but tick times are spaced from the schedule, not from cycle completion.
type Scheduler struct {
	cfg        Config
	scanner    *Scanner
	dispatcher *Dispatcher

	now  func() time.Time
	tick func(d time.Duration) <-chan time.Time
}

// NewScheduler creates a new expiry notification scheduler
func NewScheduler(cfg Config, scanner *Scanner, dispatcher *Dispatcher) *Scheduler {
	return &Scheduler{
		cfg:        cfg,
		scanner:    scanner,
		dispatcher: dispatcher,
		now:        time.Now,
		tick: func(d time.Duration) <-chan time.Time {
			return time.NewTicker(d).C
		},
	}
}

// Run executes the scheduler loop until ctx is cancelled. When the feature
// is disabled it logs once and returns; the subsystem never runs again for
// this process lifetime. The first cycle fires immediately.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		logger.Logger.Info().Msg("Expiry notification disabled, scheduler will not run")
		return
	}

	interval := s.cfg.interval()
	logger.Logger.Info().
		Dur("interval", interval).
		Int("horizon_days", s.cfg.horizonDays()).
		Int("phones", len(s.cfg.Phones)).
		Msg("Expiry notification scheduler started")

	ticks := s.tick(interval)
	for {
		s.runCycle(ctx)

		select {
		case <-ctx.Done():
			logger.Logger.Info().Msg("Expiry notification scheduler stopped")
			return
		case <-ticks:
		}
	}
}

// runCycle performs one scan and dispatch. A failing cycle is logged and the
// loop continues unconditionally.
func (s *Scheduler) runCycle(ctx context.Context) {
	now := s.now()

	expired, soon, err := s.scanner.Scan(ctx, now, s.cfg.horizonDays())
	if err != nil {
		scanFailures.Inc()
		logger.Error(ctx).Err(err).Msg("Expiry scan failed, will retry next tick")
		return
	}

	s.dispatcher.Dispatch(ctx, expired, BandExpired)
	s.dispatcher.Dispatch(ctx, soon, BandSoon)
	scanCycles.Inc()
}
