package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// RedisStore shares windows between gateway instances. The counter is a plain
// INCR key whose TTL is set by the hit that created it.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration, now time.Time) (entity.RateLimitRecord, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		ttl = p.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return entity.RateLimitRecord{}, fmt.Errorf("ratelimit: redis hit %s: %w", key, err)
	}

	count := incr.Val()
	remaining := ttl.Val()
	// A fresh key, or one left without a TTL, starts a new window.
	if count == 1 || remaining < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return entity.RateLimitRecord{}, fmt.Errorf("ratelimit: redis expire %s: %w", key, err)
		}
		remaining = window
	}

	return entity.RateLimitRecord{
		Count:     int(count),
		ExpiresAt: now.Add(remaining),
	}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
