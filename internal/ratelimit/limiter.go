// Package ratelimit implements sliding-window admission control keyed by
// client address: at most Max posts per rolling Window per address.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	window time.Duration
	max    int

	mu sync.Mutex
	// Addresses that stop posting are never evicted; memory grows with the
	// number of distinct addresses ever seen. Known limitation.
	seen map[string][]time.Time
}

func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window: window,
		max:    max,
		seen:   make(map[string][]time.Time),
	}
}

func (l *Limiter) Window() time.Duration {
	return l.window
}

func (l *Limiter) Max() int {
	return l.max
}

// Allow reports whether a post from addr may proceed at instant now.
// Timestamps older than the window are pruned, then the check and the
// append happen under the same lock so concurrent requests from one
// address cannot slip past the count. Rejected attempts are not recorded.
func (l *Limiter) Allow(addr string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps := l.seen[addr]
	kept := stamps[:0]
	for _, t := range stamps {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.seen[addr] = kept
		return false
	}

	l.seen[addr] = append(kept, now)
	return true
}
