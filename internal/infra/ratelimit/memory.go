package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// MemoryStore keeps windows in process. Each instance of the gateway counts
// on its own.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*entity.RateLimitRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*entity.RateLimitRecord)}
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration, now time.Time) (entity.RateLimitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok || rec.Expired(now) {
		rec = &entity.RateLimitRecord{Count: 1, ExpiresAt: now.Add(window)}
		s.records[key] = rec
		return *rec, nil
	}

	rec.Count++
	return *rec, nil
}

// Sweep drops expired records and returns how many went.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
