package scrollsync

import (
	"strings"
	"sync"
	"testing"
	"time"

	"mdsync/internal/markdown"
	"mdsync/internal/preview"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs the timers that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type fakeEditor struct {
	text   string
	cursor int
}

func (e *fakeEditor) Text() string { return e.text }
func (e *fakeEditor) Cursor() int  { return e.cursor }

type scrollCall struct {
	top      float64
	behavior preview.Behavior
}

type fakeViewport struct {
	tree    preview.Tree
	mu      sync.Mutex
	scrolls []scrollCall
}

func (v *fakeViewport) Tree() preview.Tree { return v.tree }

func (v *fakeViewport) ScrollTo(top float64, behavior preview.Behavior) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolls = append(v.scrolls, scrollCall{top: top, behavior: behavior})
}

func (v *fakeViewport) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.scrolls)
}

func renderedViewport(t *testing.T, source string) *fakeViewport {
	t.Helper()
	out, err := markdown.NewRenderer().Render(source)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	tree, err := preview.ParseHTML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	return &fakeViewport{tree: tree}
}
