package widget

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// retry backoff bounds; doubling between them.
const (
	initialBackoff = time.Minute
	maxBackoff     = 10 * time.Minute
)

// Scheduler runs the worker on a fixed cadence, clamped to a floor
// that mirrors the host platform's background-work constraints. Retry
// backoff lives here, not in the worker.
type Scheduler struct {
	worker   *Worker
	interval time.Duration
	log      zerolog.Logger
}

// ClampInterval enforces the cadence floor on a configured interval.
func ClampInterval(interval, floor time.Duration) time.Duration {
	if floor <= 0 {
		floor = 15 * time.Minute
	}
	if interval < floor {
		return floor
	}
	return interval
}

// NewScheduler creates a scheduler with the given interval and floor.
func NewScheduler(w *Worker, interval, floor time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		worker:   w,
		interval: ClampInterval(interval, floor),
		log:      log,
	}
}

// Interval returns the effective (clamped) cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run executes the worker immediately and then on the configured
// cadence until ctx is cancelled. Retryable outcomes shorten the next
// wait with doubling backoff, capped below the regular interval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info().Dur("interval", s.interval).Msg("widget refresh scheduler started")

	backoff := initialBackoff
	for {
		outcome := s.worker.Run(ctx)

		wait := s.interval
		if outcome == OutcomeRetry {
			wait = backoff
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			if wait > s.interval {
				wait = s.interval
			}
			s.log.Info().Dur("retry_in", wait).Msg("widget refresh will retry")
		} else {
			backoff = initialBackoff
		}

		select {
		case <-ctx.Done():
			s.log.Info().Msg("widget refresh scheduler stopped")
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
