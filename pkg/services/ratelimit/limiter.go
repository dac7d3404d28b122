package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultPerMinute = 6
	DefaultBurst     = 3
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry holds one token bucket per user
type Registry struct {
	mu       sync.RWMutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
}

// NewRegistry allows perMinute events per user per minute with the given burst
func NewRegistry(perMinute, burst int) *Registry {
	if perMinute <= 0 {
		perMinute = DefaultPerMinute
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Registry{
		limiters: make(map[string]*entry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

// Allow reports whether userID may act now, consuming a token if so
func (r *Registry) Allow(userID string) bool {
	return r.AllowAt(userID, time.Now())
}

// AllowAt is Allow at an explicit time
func (r *Registry) AllowAt(userID string, now time.Time) bool {
	e := r.getOrCreate(userID, now)

	r.mu.Lock()
	e.lastSeen = now
	r.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

func (r *Registry) getOrCreate(userID string, now time.Time) *entry {
	r.mu.RLock()
	e, exists := r.limiters[userID]
	r.mu.RUnlock()

	if exists {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if e, exists := r.limiters[userID]; exists {
		return e
	}

	e = &entry{
		limiter:  rate.NewLimiter(r.limit, r.burst),
		lastSeen: now,
	}
	r.limiters[userID] = e
	return e
}

// Sweep drops limiters idle for longer than idle and returns how many went
func (r *Registry) Sweep(now time.Time, idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for userID, e := range r.limiters {
		if now.Sub(e.lastSeen) > idle {
			delete(r.limiters, userID)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked users
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.limiters)
}
