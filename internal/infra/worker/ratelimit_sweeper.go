// Package worker holds background loops that run beside the HTTP server.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is a store that can drop expired entries.
type Sweeper interface {
	Sweep(now time.Time) int
}

// RateLimitSweeper evicts closed windows so the in-memory limiter does not
// grow with every address it has ever seen.
type RateLimitSweeper struct {
	store        Sweeper
	tickInterval time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewRateLimitSweeper(store Sweeper, interval time.Duration, logger *zap.Logger) *RateLimitSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimitSweeper{
		store:        store,
		tickInterval: interval,
		now:          time.Now,
		logger:       logger,
	}
}

// Start sweeps every tick until ctx is done.
func (w *RateLimitSweeper) Start(ctx context.Context) {
	w.logger.Info("rate limit sweeper started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("rate limit sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *RateLimitSweeper) sweep() {
	if n := w.store.Sweep(w.now()); n > 0 {
		w.logger.Debug("expired rate limit windows removed", zap.Int("count", n))
	}
}
