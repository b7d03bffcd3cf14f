package scrollsync

import (
	"sync"
	"time"
)

// Throttle admits at most one call per interval. The first call of a window
// passes and later calls inside the window are dropped, not delayed.
type Throttle struct {
	clock    Clock
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottle creates a Throttle. A non-positive interval admits every call.
func NewThrottle(interval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = SystemClock()
	}
	return &Throttle{clock: clock, interval: interval}
}

// Allow reports whether a call arriving now may proceed.
func (t *Throttle) Allow() bool {
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
