package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tgiagency/quote-funnel/internal/infra/ratelimit"
)

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) Sweep(time.Time) int {
	c.calls.Add(1)
	return 1
}

func TestSweeperTicksUntilCancelled(t *testing.T) {
	s := &countingSweeper{}
	w := NewRateLimitSweeper(s, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperEvictsExpiredWindows(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	start := time.Unix(0, 0)
	_, _ = store.Hit(context.Background(), "ratelimit:a", time.Minute, start)

	w := NewRateLimitSweeper(store, time.Hour, nil)
	w.now = func() time.Time { return start.Add(2 * time.Minute) }
	w.sweep()

	assert.Equal(t, 0, store.Len())
}
