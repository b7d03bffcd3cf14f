// Package editor is the service layer of the markdown editor: preview
// rendering and locating, scroll-sync sessions, documents, pasted images and
// workspace import.
package editor

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks -mock_names=Service=MockService mdsync/internal/editor Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mdsync/internal/contextutil"
	"mdsync/internal/markdown"
	"mdsync/internal/preview"
	"mdsync/internal/scrollsync"
	"mdsync/internal/storage"
	"mdsync/internal/workspace"
)

// Service is the editor functionality exposed to the HTTP layer.
type Service interface {
	// Render converts markdown source to preview HTML.
	Render(ctx context.Context, source string) (string, error)
	// KeyPoints extracts the key points of markdown source.
	KeyPoints(ctx context.Context, source string) []markdown.KeyPoint
	// Locate finds the preview element of each key point.
	Locate(ctx context.Context, req LocateRequest) ([]LocatedElement, error)

	// OpenSession starts a scroll-sync session.
	OpenSession(ctx context.Context, req OpenSessionRequest) (SessionInfo, error)
	// Event delivers an editor event to a session.
	Event(ctx context.Context, sessionID string, req EventRequest) (EventResponse, error)
	// CloseSession ends a session.
	CloseSession(ctx context.Context, sessionID string) error

	ListDocuments(ctx context.Context) ([]*storage.Document, error)
	GetDocument(ctx context.Context, id string) (*storage.Document, error)
	CreateDocument(ctx context.Context, req SaveDocumentRequest) (*storage.Document, error)
	UpdateDocument(ctx context.Context, id string, req SaveDocumentRequest) (*storage.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	// PasteImage stores an image and inserts a reference to it at the cursor.
	PasteImage(ctx context.Context, documentID string, req PasteImageRequest) (PasteImageResponse, error)
	GetImage(ctx context.Context, id string) (*storage.Image, error)

	// ImportWorkspace loads changed markdown files from the workspace.
	ImportWorkspace(ctx context.Context) (ImportStats, error)
}

// WorkspaceScanner lists the markdown files of a workspace.
type WorkspaceScanner interface {
	Scan(ctx context.Context) ([]workspace.ScannedFile, error)
}

// Options tunes the scroll synchronization and preview of the service.
type Options struct {
	Throttle  time.Duration
	Cooldown  time.Duration
	Margin    float64
	Behavior  preview.Behavior
	Threshold float64
	CodeMode  preview.CodeMode
	Layout    preview.LayoutConfig

	HighlightStyle string
	ImageBase      string
	IdleTimeout    time.Duration

	// Clock drives throttle and cool-down windows. Defaults to the system clock.
	Clock scrollsync.Clock
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Throttle:    scrollsync.DefaultThrottle,
		Cooldown:    scrollsync.DefaultCooldown,
		Margin:      scrollsync.DefaultMargin,
		Behavior:    preview.Smooth,
		Threshold:   0.7,
		CodeMode:    preview.CodeText,
		Layout:      preview.DefaultLayout(),
		ImageBase:   "/api/images",
		IdleTimeout: 30 * time.Minute,
	}
}

// LocateRequest is the input of a stateless locate call. HTML defaults to
// the rendering of Source and KeyPoints to the key points of Source.
type LocateRequest struct {
	Source    string
	HTML      string
	KeyPoints []markdown.KeyPoint
	Offsets   []float64
}

// LocatedElement is a key point matched to a preview element.
type LocatedElement struct {
	KeyPoint  markdown.KeyPoint
	Element   preview.ElementInfo
	OffsetTop float64
	Score     float64
}

// EditorService implements Service.
type EditorService struct {
	documents storage.DocumentStore
	images    storage.ImageStore
	scanner   WorkspaceScanner
	opts      Options
	renderer  *markdown.Renderer
	locator   *preview.Locator
	sessions  *sessionStore
	logger    *slog.Logger
}

var _ Service = (*EditorService)(nil)

// NewService creates an EditorService. scanner may be nil when no workspace
// is configured.
func NewService(documents storage.DocumentStore, images storage.ImageStore, scanner WorkspaceScanner, opts Options) *EditorService {
	if opts.Clock == nil {
		opts.Clock = scrollsync.SystemClock()
	}
	if opts.ImageBase == "" {
		opts.ImageBase = "/api/images"
	}
	opts.ImageBase = strings.TrimSuffix(opts.ImageBase, "/")

	return &EditorService{
		documents: documents,
		images:    images,
		scanner:   scanner,
		opts:      opts,
		renderer: markdown.NewRenderer(
			markdown.WithImageBase(opts.ImageBase),
			markdown.WithHighlightStyle(opts.HighlightStyle),
		),
		locator: preview.NewLocator(
			preview.WithThreshold(opts.Threshold),
			preview.WithCodeMode(opts.CodeMode),
		),
		sessions: newSessionStore(opts.Clock.Now),
		logger:   slog.Default(),
	}
}

// Render converts markdown source to preview HTML.
func (s *EditorService) Render(ctx context.Context, source string) (string, error) {
	out, err := s.renderer.Render(source)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render preview", "error", err)
		return "", WrapError(err, "failed to render preview")
	}
	return out, nil
}

// KeyPoints extracts the key points of source.
func (s *EditorService) KeyPoints(_ context.Context, source string) []markdown.KeyPoint {
	return markdown.ExtractKeyPoints(source)
}

// Locate matches key points against rendered preview HTML.
func (s *EditorService) Locate(ctx context.Context, req LocateRequest) ([]LocatedElement, error) {
	html := req.HTML
	if html == "" {
		var err error
		if html, err = s.Render(ctx, req.Source); err != nil {
			return nil, err
		}
	}
	points := req.KeyPoints
	if points == nil {
		points = markdown.ExtractKeyPoints(req.Source)
	}
	for _, kp := range points {
		if kp.LineIndex < 0 {
			return nil, &ValidationError{Field: "keyPoints", Message: "lineIndex must not be negative"}
		}
	}

	tree, err := preview.ParseHTML(strings.NewReader(html),
		preview.WithLayout(s.opts.Layout),
		preview.WithMeasuredOffsets(req.Offsets),
	)
	if err != nil {
		return nil, WrapError(err, "failed to parse preview")
	}

	matches := s.locator.Locate(ctx, points, tree)
	located := make([]LocatedElement, 0, len(matches))
	for _, m := range matches {
		located = append(located, LocatedElement{
			KeyPoint:  m.KeyPoint,
			Element:   tree.Describe(m.Element),
			OffsetTop: tree.OffsetTop(m.Element),
			Score:     m.Score,
		})
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "located key points",
		"key_points", len(points), "matched", len(located))
	return located, nil
}

// synchronizer builds the scroll synchronizer of a session.
func (s *EditorService) synchronizer(sess *Session) *scrollsync.Synchronizer {
	return scrollsync.New(sess, sess,
		scrollsync.WithClock(s.opts.Clock),
		scrollsync.WithThrottle(s.opts.Throttle),
		scrollsync.WithCooldown(s.opts.Cooldown),
		scrollsync.WithMargin(s.opts.Margin),
		scrollsync.WithBehavior(s.opts.Behavior),
		scrollsync.WithLocator(s.locator),
	)
}
