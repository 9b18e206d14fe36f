// Package dedupe suppresses repeated webhook deliveries by message id.
package dedupe

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store records message ids. FirstSeen reports true only for the first
// call with a given key inside the TTL window.
type Store interface {
	FirstSeen(ctx context.Context, key string) (bool, error)
}

const keyPrefix = "waha:msg:"

type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) FirstSeen(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, keyPrefix+key, "1", s.ttl).Result()
}

// MemoryStore is the single-process fallback used when no Redis address
// is configured.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemoryStore) FirstSeen(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, expires := range s.seen {
		if !now.Before(expires) {
			delete(s.seen, k)
		}
	}

	if _, dup := s.seen[key]; dup {
		return false, nil
	}
	s.seen[key] = now.Add(s.ttl)
	return true, nil
}
