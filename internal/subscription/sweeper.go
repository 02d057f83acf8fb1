// AngelaMos | 2026
// sweeper.go

package subscription

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically evaluates due trial-end checks. It replaces
// per-subscription in-memory timers: the schedule lives in the
// next_check_at column, so restarts and multiple instances are safe.
type Sweeper struct {
	service   *Service
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	done      chan struct{}
}

func NewSweeper(
	service *Service,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		service:   service,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Wait blocks until the loop has exited.
func (s *Sweeper) Wait() {
	<-s.done
}

func (s *Sweeper) sweep(ctx context.Context) {
	promoted, err := s.service.SweepTrialEnds(ctx, s.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("trial sweep failed", "error", err)
		return
	}

	if promoted > 0 {
		s.logger.Info("trial sweep complete", "promoted", promoted)
	}
}
