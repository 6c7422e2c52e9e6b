// Package ratelimit throttles form submissions per client with fixed windows.
package ratelimit

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// Key prefixes keep the quote and contact counters apart in a shared store.
const (
	PrefixQuote   = "ratelimit:"
	PrefixContact = "ratelimit:contact:"
)

// Decision is the outcome for one request.
type Decision struct {
	Allowed    bool
	Count      int
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds the wait up to whole seconds for the Retry-After
// header.
func (d Decision) RetryAfterSeconds() int {
	s := int(math.Ceil(d.RetryAfter.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

type Limiter struct {
	store  entity.RateLimitStore
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Limiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

func NewLimiter(store entity.RateLimitStore, limit int, window time.Duration, prefix string, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a hit for client. The first hit of a window counts as 1 and
// requests pass while the count stays at or under the limit. If the store
// fails the request is let through.
func (l *Limiter) Allow(ctx context.Context, client string) Decision {
	now := l.now()
	rec, err := l.store.Hit(ctx, l.prefix+client, l.window, now)
	if err != nil {
		l.logger.Error("rate limit store failed, allowing request",
			zap.String("client", client),
			zap.Error(err),
		)
		return Decision{Allowed: true}
	}

	if rec.Count <= l.limit {
		return Decision{Allowed: true, Count: rec.Count}
	}
	return Decision{
		Allowed:    false,
		Count:      rec.Count,
		RetryAfter: rec.ExpiresAt.Sub(now),
	}
}

// ClientKey identifies the caller: the first X-Forwarded-For entry, then
// X-Real-IP, then "unknown".
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return "unknown"
}
