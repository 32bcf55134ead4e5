package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks hits per key over a sliding window and answers whether
// another hit is allowed. Keys are typically "guild:user" pairs.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	hits   map[string][]time.Time
}

func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		window: window,
		limit:  limit,
		hits:   map[string][]time.Time{},
	}
}

// Allow records a hit for the key and reports whether it fits the limit.
// A denied hit is not recorded, so a user who backs off recovers after one
// window rather than extending their own penalty.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.prune(key, now)
	if len(recent) >= l.limit {
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Count returns the number of hits still inside the window.
func (l *Limiter) Count(key string, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(key, now))
}

func (l *Limiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.hits[key]
	idx := 0
	for _, hit := range recent {
		if hit.After(cutoff) {
			break
		}
		idx++
	}
	recent = recent[idx:]
	if len(recent) == 0 {
		delete(l.hits, key)
		return nil
	}
	l.hits[key] = recent
	return recent
}
