// Package ratelimit provides a per-host rate limiter for outbound image
// downloads, so a post with many images on one host does not hammer it.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter manages one token bucket per remote host.
type HostLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a new per-host limiter.
// rps: requests per second allowed per host.
// burst: tokens available immediately per host.
func New(rps float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until a request to the given host is allowed or the context
// is canceled.
func (hl *HostLimiter) Wait(ctx context.Context, host string) error {
	return hl.limiter(host).Wait(ctx)
}

// limiter returns the limiter for a host, creating one if needed.
func (hl *HostLimiter) limiter(host string) *rate.Limiter {
	// Fast path: read lock
	hl.mu.RLock()
	limiter, exists := hl.limiters[host]
	hl.mu.RUnlock()

	if exists {
		return limiter
	}

	// Slow path: write lock to create
	hl.mu.Lock()
	defer hl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = hl.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(hl.limit, hl.burst)
	hl.limiters[host] = limiter
	return limiter
}
