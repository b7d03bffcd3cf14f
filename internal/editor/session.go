package editor

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mdsync/internal/contextutil"
	"mdsync/internal/markdown"
	"mdsync/internal/preview"
	"mdsync/internal/scrollsync"
)

// OpenSessionRequest starts a session from a stored document or from source.
type OpenSessionRequest struct {
	DocumentID string
	Source     string
	Cursor     int
}

// SessionInfo identifies an open session.
type SessionInfo struct {
	ID         string
	DocumentID string
}

// EventRequest is an editor event. Source and Offsets replace the session
// state when set.
type EventRequest struct {
	Kind    string
	Cursor  int
	Source  *string
	Offsets []float64
}

// Scroll is the scroll instruction for the preview pane.
type Scroll struct {
	Top      float64
	Behavior preview.Behavior
}

// EventResponse reports what the synchronizer did with an event.
type EventResponse struct {
	Outcome  scrollsync.Outcome
	Line     int
	KeyPoint *markdown.KeyPoint
	Scroll   *Scroll
}

// Session is the server side mirror of one editor pane and its preview.
// It is both the Editor and the Viewport of its synchronizer.
type Session struct {
	id         string
	documentID string
	renderer   *markdown.Renderer
	layout     preview.LayoutConfig
	sync       *scrollsync.Synchronizer

	// handleMu serializes events
	handleMu sync.Mutex

	mu       sync.Mutex
	source   string
	cursor   int
	offsets  []float64
	tree     *preview.HTMLTree
	stale    bool
	scroll   *Scroll
	lastSeen time.Time
}

var (
	_ scrollsync.Editor = (*Session)(nil)
	_ preview.Viewport  = (*Session)(nil)
)

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Text returns the current source.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Cursor returns the current cursor offset.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Tree renders the current source, reusing the previous tree while neither
// source nor offsets changed. It returns nil if rendering fails.
func (s *Session) Tree() preview.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tree == nil || s.stale {
		tree, err := s.render()
		if err != nil {
			slog.Default().Warn("failed to render session preview", "session_id", s.id, "error", err)
			s.tree = nil
			return nil
		}
		s.tree = tree
		s.stale = false
	}
	return s.tree
}

func (s *Session) render() (*preview.HTMLTree, error) {
	out, err := s.renderer.Render(s.source)
	if err != nil {
		return nil, err
	}
	return preview.ParseHTML(strings.NewReader(out),
		preview.WithLayout(s.layout),
		preview.WithMeasuredOffsets(s.offsets),
	)
}

// ScrollTo records the scroll instruction for the client.
func (s *Session) ScrollTo(top float64, behavior preview.Behavior) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = &Scroll{Top: top, Behavior: behavior}
}

func (s *Session) apply(req EventRequest, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Source != nil && *req.Source != s.source {
		s.source = *req.Source
		s.stale = true
	}
	if req.Offsets != nil && !slices.Equal(req.Offsets, s.offsets) {
		s.offsets = slices.Clone(req.Offsets)
		s.stale = true
	}
	s.cursor = req.Cursor
	s.scroll = nil
	s.lastSeen = now
}

func (s *Session) takeScroll() *Scroll {
	s.mu.Lock()
	defer s.mu.Unlock()
	scroll := s.scroll
	s.scroll = nil
	return scroll
}

func (s *Session) handle(ctx context.Context, kind scrollsync.EventKind, req EventRequest, now time.Time) EventResponse {
	s.handleMu.Lock()
	defer s.handleMu.Unlock()

	s.apply(req, now)
	res := s.sync.Handle(ctx, scrollsync.Event{Kind: kind})

	resp := EventResponse{
		Outcome:  res.Outcome,
		Line:     res.Line,
		KeyPoint: res.KeyPoint,
	}
	if res.Outcome == scrollsync.Scrolled {
		resp.Scroll = s.takeScroll()
	}
	return resp
}

func (s *Session) idleSince(before time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(before)
}

// sessionStore holds the open sessions.
type sessionStore struct {
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func newSessionStore(now func() time.Time) *sessionStore {
	return &sessionStore{now: now, sessions: make(map[string]*Session)}
}

func (st *sessionStore) add(sess *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.id] = sess
}

func (st *sessionStore) get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

func (st *sessionStore) evictIdle(before time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, sess := range st.sessions {
		if sess.idleSince(before) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// OpenSession starts a session over a stored document or the given source.
func (s *EditorService) OpenSession(ctx context.Context, req OpenSessionRequest) (SessionInfo, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Cursor < 0 {
		return SessionInfo{}, &ValidationError{Field: "cursor", Message: "must not be negative"}
	}

	source := req.Source
	if req.DocumentID != "" {
		doc, err := s.GetDocument(ctx, req.DocumentID)
		if err != nil {
			return SessionInfo{}, err
		}
		source = doc.Content
	}

	sess := &Session{
		id:         uuid.New().String(),
		documentID: req.DocumentID,
		renderer:   s.renderer,
		layout:     s.opts.Layout,
		source:     source,
		cursor:     req.Cursor,
		lastSeen:   s.sessions.now(),
	}
	sess.sync = s.synchronizer(sess)
	s.sessions.add(sess)

	logger.InfoContext(ctx, "session opened", "session_id", sess.id, "document_id", req.DocumentID)
	return SessionInfo{ID: sess.id, DocumentID: req.DocumentID}, nil
}

// Event delivers an editor event to a session and reports the sync outcome.
func (s *EditorService) Event(ctx context.Context, sessionID string, req EventRequest) (EventResponse, error) {
	kind := scrollsync.EventKind(req.Kind)
	if !kind.Valid() {
		return EventResponse{}, &ValidationError{Field: "kind", Message: "must be one of scroll, click, keyup"}
	}
	if req.Cursor < 0 {
		return EventResponse{}, &ValidationError{Field: "cursor", Message: "must not be negative"}
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return EventResponse{}, ErrSessionNotFound
	}
	return sess.handle(ctx, kind, req, s.sessions.now()), nil
}

// CloseSession ends a session.
func (s *EditorService) CloseSession(ctx context.Context, sessionID string) error {
	if !s.sessions.remove(sessionID) {
		return ErrSessionNotFound
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "session closed", "session_id", sessionID)
	return nil
}

// EvictIdle removes sessions without events for longer than the idle timeout.
func (s *EditorService) EvictIdle(ctx context.Context) int {
	if s.opts.IdleTimeout <= 0 {
		return 0
	}
	n := s.sessions.evictIdle(s.sessions.now().Add(-s.opts.IdleTimeout))
	if n > 0 {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "evicted idle sessions", "count", n)
	}
	return n
}

// RunJanitor evicts idle sessions every interval until ctx is cancelled.
func (s *EditorService) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle(ctx)
		}
	}
}
