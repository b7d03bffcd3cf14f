// Package scrollsync drives the preview scroll position from the source
// editor's cursor.
//
// A sync is triggered by editor events. Triggers are throttled, and a guard
// keeps a second sync from starting until a cool-down has passed after the
// previous one, so a scroll and a keyup fired together produce one scroll.
package scrollsync

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"mdsync/internal/contextutil"
	"mdsync/internal/markdown"
	"mdsync/internal/preview"
)

const (
	DefaultThrottle = 100 * time.Millisecond
	DefaultCooldown = 100 * time.Millisecond
	DefaultMargin   = 50.0
)

// Editor is the read-only view of the source editor.
type Editor interface {
	// Text returns the full current source.
	Text() string
	// Cursor returns the cursor position as a rune offset into Text.
	Cursor() int
}

// EventKind names the editor event that triggered a sync.
type EventKind string

const (
	EventScroll EventKind = "scroll"
	EventClick  EventKind = "click"
	EventKeyUp  EventKind = "keyup"
)

// Valid reports whether k is a known trigger.
func (k EventKind) Valid() bool {
	switch k {
	case EventScroll, EventClick, EventKeyUp:
		return true
	}
	return false
}

// Event is a trigger delivered to the synchronizer.
type Event struct {
	Kind EventKind
}

// Outcome describes what a Handle call did.
type Outcome string

const (
	Scrolled    Outcome = "scrolled"
	Throttled   Outcome = "throttled"
	Busy        Outcome = "busy"
	NoReference Outcome = "no-reference"
	NoKeyPoint  Outcome = "no-key-point"
	NoMatch     Outcome = "no-match"
)

// Result reports the outcome of one trigger. Line, KeyPoint and Top are set
// as far as the sync progressed.
type Result struct {
	Outcome  Outcome
	Line     int
	KeyPoint *markdown.KeyPoint
	Top      float64
	Behavior preview.Behavior
}

// Synchronizer scrolls a viewport to the preview element of the key point
// nearest to the editor cursor. It is safe for concurrent use.
type Synchronizer struct {
	editor   Editor
	viewport preview.Viewport
	locator  *preview.Locator
	clock    Clock
	throttle *Throttle

	throttleInterval time.Duration
	cooldown         time.Duration
	margin           float64
	behavior         preview.Behavior

	syncing atomic.Bool
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithThrottle sets the minimum interval between handled triggers.
func WithThrottle(d time.Duration) Option {
	return func(s *Synchronizer) {
		s.throttleInterval = d
	}
}

// WithCooldown sets how long the guard stays held after each sync.
func WithCooldown(d time.Duration) Option {
	return func(s *Synchronizer) {
		s.cooldown = d
	}
}

// WithMargin sets the space left above the target element.
func WithMargin(margin float64) Option {
	return func(s *Synchronizer) {
		s.margin = margin
	}
}

// WithBehavior sets the scroll animation.
func WithBehavior(b preview.Behavior) Option {
	return func(s *Synchronizer) {
		s.behavior = b
	}
}

// WithLocator replaces the default locator.
func WithLocator(l *preview.Locator) Option {
	return func(s *Synchronizer) {
		s.locator = l
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Synchronizer) {
		s.clock = c
	}
}

// New creates a Synchronizer between editor and viewport.
func New(editor Editor, viewport preview.Viewport, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		editor:           editor,
		viewport:         viewport,
		locator:          preview.NewLocator(),
		clock:            SystemClock(),
		throttleInterval: DefaultThrottle,
		cooldown:         DefaultCooldown,
		margin:           DefaultMargin,
		behavior:         preview.Smooth,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.throttle = NewThrottle(s.throttleInterval, s.clock)
	return s
}

// Handle processes one trigger event.
func (s *Synchronizer) Handle(ctx context.Context, ev Event) Result {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.throttle.Allow() {
		return Result{Outcome: Throttled}
	}
	if !s.syncing.CompareAndSwap(false, true) {
		logger.DebugContext(ctx, "sync already in progress", "event", ev.Kind)
		return Result{Outcome: Busy}
	}
	defer s.clock.AfterFunc(s.cooldown, func() {
		s.syncing.Store(false)
	})

	res := s.sync(ctx)
	if res.Outcome != Scrolled {
		logger.DebugContext(ctx, "sync skipped", "event", ev.Kind, "outcome", res.Outcome, "line", res.Line)
	}
	return res
}

// Syncing reports whether the guard is currently held.
func (s *Synchronizer) Syncing() bool {
	return s.syncing.Load()
}

func (s *Synchronizer) sync(ctx context.Context) Result {
	if s.editor == nil || s.viewport == nil {
		return Result{Outcome: NoReference}
	}
	tree := s.viewport.Tree()
	if tree == nil {
		return Result{Outcome: NoReference}
	}
	if _, ok := tree.Content(); !ok {
		return Result{Outcome: NoReference}
	}

	text := s.editor.Text()
	line := markdown.LineAt(text, s.editor.Cursor())

	kp, ok := markdown.NearestKeyPoint(markdown.ExtractKeyPoints(text), line)
	if !ok {
		return Result{Outcome: NoKeyPoint, Line: line}
	}

	m, ok := s.locator.LocateOne(ctx, kp, tree)
	if !ok {
		return Result{Outcome: NoMatch, Line: line, KeyPoint: &kp}
	}

	top := math.Max(0, tree.OffsetTop(m.Element)-s.margin)
	s.viewport.ScrollTo(top, s.behavior)
	return Result{
		Outcome:  Scrolled,
		Line:     line,
		KeyPoint: &kp,
		Top:      top,
		Behavior: s.behavior,
	}
}
