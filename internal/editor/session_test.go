package editor_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"mdsync/internal/editor"
	"mdsync/internal/markdown"
	"mdsync/internal/preview"
	"mdsync/internal/scrollsync"
	"mdsync/internal/storage"
	"mdsync/internal/storage/mocks"
)

func strPtr(s string) *string { return &s }

func TestEditorService_SessionEvents(t *testing.T) {
	ctx := testContext()
	svc := editor.NewService(nil, nil, nil, testOptions(newManualClock()))

	info, err := svc.OpenSession(ctx, editor.OpenSessionRequest{Source: sample})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if info.ID == "" {
		t.Fatal("OpenSession() returned empty id")
	}

	// cursor at the end of the quote line
	resp, err := svc.Event(ctx, info.ID, editor.EventRequest{Kind: "keyup", Cursor: len(sample)})
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if resp.Outcome != scrollsync.Scrolled || resp.Line != 4 {
		t.Fatalf("Event() = %+v, want scrolled at line 4", resp)
	}
	if resp.KeyPoint == nil || resp.KeyPoint.Type != markdown.Blockquote {
		t.Errorf("KeyPoint = %+v, want blockquote", resp.KeyPoint)
	}
	if resp.Scroll == nil || math.Abs(resp.Scroll.Top-(67.2+25.6+16-50)) > 1e-9 || resp.Scroll.Behavior != preview.Smooth {
		t.Errorf("Scroll = %+v", resp.Scroll)
	}

	// measured offsets from the browser take over
	resp, err = svc.Event(ctx, info.ID, editor.EventRequest{Kind: "scroll", Cursor: len(sample), Offsets: []float64{0, 120, 400}})
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if resp.Scroll == nil || resp.Scroll.Top != 350 {
		t.Errorf("Scroll = %+v, want top 350", resp.Scroll)
	}

	// edited source, cursor on the heading
	resp, err = svc.Event(ctx, info.ID, editor.EventRequest{Kind: "click", Cursor: 0, Source: strPtr("# Title\n\nchanged")})
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if resp.Outcome != scrollsync.Scrolled || resp.Scroll == nil || resp.Scroll.Top != 0 {
		t.Errorf("Event() = %+v, want scroll to 0", resp)
	}

	// no key point precedes the cursor
	resp, err = svc.Event(ctx, info.ID, editor.EventRequest{Kind: "click", Cursor: 0, Source: strPtr("\n\nlate")})
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if resp.Outcome != scrollsync.NoKeyPoint || resp.Scroll != nil {
		t.Errorf("Event() = %+v, want no-key-point without scroll", resp)
	}

	if err := svc.CloseSession(ctx, info.ID); err != nil {
		t.Fatalf("CloseSession() error = %v", err)
	}
	if _, err := svc.Event(ctx, info.ID, editor.EventRequest{Kind: "click"}); !errors.Is(err, editor.ErrSessionNotFound) {
		t.Errorf("Event() after close error = %v, want ErrSessionNotFound", err)
	}
	if err := svc.CloseSession(ctx, info.ID); !errors.Is(err, editor.ErrSessionNotFound) {
		t.Errorf("CloseSession() twice error = %v, want ErrSessionNotFound", err)
	}
}

func TestEditorService_EventThrottled(t *testing.T) {
	ctx := testContext()
	clock := newManualClock()
	opts := testOptions(clock)
	opts.Throttle = 100 * time.Millisecond
	svc := editor.NewService(nil, nil, nil, opts)

	info, err := svc.OpenSession(ctx, editor.OpenSessionRequest{Source: sample})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}

	first, _ := svc.Event(ctx, info.ID, editor.EventRequest{Kind: "scroll", Cursor: 0})
	second, _ := svc.Event(ctx, info.ID, editor.EventRequest{Kind: "keyup", Cursor: len(sample)})
	if first.Outcome != scrollsync.Scrolled {
		t.Errorf("first Outcome = %q, want scrolled", first.Outcome)
	}
	if second.Outcome != scrollsync.Throttled || second.Scroll != nil {
		t.Errorf("second = %+v, want throttled without scroll", second)
	}

	// the throttled event still moved the cursor
	clock.Advance(100 * time.Millisecond)
	third, _ := svc.Event(ctx, info.ID, editor.EventRequest{Kind: "scroll", Cursor: len(sample)})
	if third.Outcome != scrollsync.Scrolled || third.Line != 4 {
		t.Errorf("third = %+v, want scrolled at line 4", third)
	}
}

func TestEditorService_EventValidation(t *testing.T) {
	ctx := testContext()
	svc := editor.NewService(nil, nil, nil, testOptions(newManualClock()))
	info, err := svc.OpenSession(ctx, editor.OpenSessionRequest{Source: sample})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		req       editor.EventRequest
		wantField string
		wantErr   error
	}{
		{"unknown kind", info.ID, editor.EventRequest{Kind: "mousemove"}, "kind", editor.ErrInvalidInput},
		{"negative cursor", info.ID, editor.EventRequest{Kind: "click", Cursor: -1}, "cursor", editor.ErrInvalidInput},
		{"unknown session", "nope", editor.EventRequest{Kind: "click"}, "", editor.ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Event(ctx, tt.sessionID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Event() error = %v, want %v", err, tt.wantErr)
			}
			var vErr *editor.ValidationError
			if tt.wantField != "" && (!errors.As(err, &vErr) || vErr.Field != tt.wantField) {
				t.Errorf("Event() error = %v, want field %s", err, tt.wantField)
			}
		})
	}
}

func TestEditorService_OpenSessionFromDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := testContext()
	docs := mocks.NewMockDocumentStore(ctrl)
	svc := editor.NewService(docs, nil, nil, testOptions(newManualClock()))

	docs.EXPECT().Get(gomock.Any(), "doc-1").Return(&storage.Document{ID: "doc-1", Content: sample}, nil)
	docs.EXPECT().Get(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	info, err := svc.OpenSession(ctx, editor.OpenSessionRequest{DocumentID: "doc-1"})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if info.DocumentID != "doc-1" {
		t.Errorf("DocumentID = %q, want doc-1", info.DocumentID)
	}
	resp, err := svc.Event(ctx, info.ID, editor.EventRequest{Kind: "click", Cursor: 9})
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if resp.Outcome != scrollsync.Scrolled || resp.Line != 2 {
		t.Errorf("Event() = %+v, want scrolled at line 2", resp)
	}

	if _, err := svc.OpenSession(ctx, editor.OpenSessionRequest{DocumentID: "missing"}); !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("OpenSession() error = %v, want ErrNotFound", err)
	}
}

func TestEditorService_EvictIdle(t *testing.T) {
	ctx := testContext()
	clock := newManualClock()
	opts := testOptions(clock)
	opts.IdleTimeout = 10 * time.Minute
	svc := editor.NewService(nil, nil, nil, opts)

	idle, _ := svc.OpenSession(ctx, editor.OpenSessionRequest{Source: sample})
	clock.Advance(6 * time.Minute)
	active, _ := svc.OpenSession(ctx, editor.OpenSessionRequest{Source: sample})
	clock.Advance(5 * time.Minute)

	if n := svc.EvictIdle(ctx); n != 1 {
		t.Fatalf("EvictIdle() = %d, want 1", n)
	}
	if _, err := svc.Event(ctx, idle.ID, editor.EventRequest{Kind: "click"}); !errors.Is(err, editor.ErrSessionNotFound) {
		t.Errorf("idle session should be evicted, got %v", err)
	}

	// an event keeps a session alive
	clock.Advance(9 * time.Minute)
	if _, err := svc.Event(ctx, active.ID, editor.EventRequest{Kind: "click"}); err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	clock.Advance(9 * time.Minute)
	if n := svc.EvictIdle(ctx); n != 0 {
		t.Errorf("EvictIdle() = %d, want 0", n)
	}
}
