package editor_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"mdsync/internal/editor"
	"mdsync/internal/scrollsync"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testContext() context.Context {
	return context.Background()
}

// manualClock only moves when told to. Scheduled functions run at once, so
// the sync guard never outlives the call that took it.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type doneTimer struct{}

func (doneTimer) Stop() bool { return false }

func (c *manualClock) AfterFunc(_ time.Duration, f func()) scrollsync.Timer {
	f()
	return doneTimer{}
}

func testOptions(clock *manualClock) editor.Options {
	opts := editor.DefaultOptions()
	opts.Throttle = 0
	opts.Clock = clock
	return opts
}
