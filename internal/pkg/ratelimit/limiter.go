package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key (client IP, sender phone).
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	r       rate.Limit // tokens per second
	b       int        // burst
	now     func() time.Time
}

func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		entries: make(map[string]*entry),
		r:       r,
		b:       b,
		now:     time.Now,
	}
}

// GetLimiter returns the bucket for key, creating it on first use.
func (k *KeyedLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, exists := k.entries[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(k.r, k.b)}
		k.entries[key] = e
	}
	e.lastSeen = k.now()
	return e.limiter
}

// Allow consumes one token from key's bucket.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.GetLimiter(key).Allow()
}

// Prune drops buckets idle for longer than idle and returns how many were removed.
func (k *KeyedLimiter) Prune(idle time.Duration) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := k.now().Add(-idle)
	removed := 0
	for key, e := range k.entries {
		if e.lastSeen.Before(cutoff) {
			delete(k.entries, key)
			removed++
		}
	}
	return removed
}

// Len is the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
