package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

var ErrClosed = errors.New("notify: closed")

type Notifier interface {
	QuoteNotifier
	ContactNotifier
}

// Async runs the wrapped notifier in the background so the visitor's
// response does not wait on SMTP or a slow webhook. Each delivery gets its own
// timeout and outlives the request context. Close waits for deliveries in
// flight.
type Async struct {
	next    Notifier
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsync(next Notifier, timeout time.Duration, logger *zap.Logger) *Async {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Async{next: next, timeout: timeout, logger: logger}
}

func (a *Async) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	return a.dispatch(ctx, zap.String("quote_id", q.ID), func(ctx context.Context) error {
		return a.next.NotifyQuote(ctx, q)
	})
}

func (a *Async) NotifyContact(ctx context.Context, m *entity.ContactMessage) error {
	return a.dispatch(ctx, zap.String("contact_id", m.ID), func(ctx context.Context) error {
		return a.next.NotifyContact(ctx, m)
	})
}

func (a *Async) dispatch(ctx context.Context, id zap.Field, fn func(context.Context) error) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.wg.Add(1)
	a.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("notification panicked", id, zap.Any("panic", r))
			}
		}()

		dctx, cancel := context.WithTimeout(bg, a.timeout)
		defer cancel()
		if err := fn(dctx); err != nil {
			a.logger.Warn("background notification failed", id, zap.Error(err))
		}
	}()
	return nil
}

// Close stops accepting work and waits for pending deliveries or ctx.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
