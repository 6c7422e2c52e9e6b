package entity

import (
	"context"
	"time"
)

// RateLimitRecord counts requests from one client key inside a fixed window.
type RateLimitRecord struct {
	Count     int
	ExpiresAt time.Time
}

// Expired reports whether the window has closed at now.
func (r RateLimitRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// RateLimitStore records a hit for key and returns the record after the hit.
// A missing or expired record starts a fresh window of the given length with
// a count of 1.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration, now time.Time) (RateLimitRecord, error)
}
