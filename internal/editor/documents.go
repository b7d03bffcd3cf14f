package editor

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"mdsync/internal/contextutil"
	"mdsync/internal/markdown"
	"mdsync/internal/storage"
)

// MaxImageSize is the largest accepted pasted image.
const MaxImageSize = 10 << 20

// SaveDocumentRequest creates or replaces a document. An empty title is
// derived from the content.
type SaveDocumentRequest struct {
	Title   string
	Content string
}

// PasteImageRequest carries an image pasted at a cursor offset.
type PasteImageRequest struct {
	Cursor int
	MIME   string
	Data   []byte
}

// PasteImageResponse is the document state after a paste.
type PasteImageResponse struct {
	ID      string
	URL     string
	Content string
	Cursor  int
}

func contentHash(content string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
}

// ListDocuments returns all stored documents.
func (s *EditorService) ListDocuments(ctx context.Context) ([]*storage.Document, error) {
	docs, err := s.documents.List(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list documents", "error", err)
		return nil, WrapError(err, "failed to list documents")
	}
	return docs, nil
}

// GetDocument returns a document by id.
func (s *EditorService) GetDocument(ctx context.Context, id string) (*storage.Document, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	doc, err := s.documents.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get document", "id", id, "error", err)
		return nil, WrapError(err, "failed to get document")
	}
	return doc, nil
}

// CreateDocument stores a new document.
func (s *EditorService) CreateDocument(ctx context.Context, req SaveDocumentRequest) (*storage.Document, error) {
	doc := &storage.Document{
		Title:   titleOf(req, ""),
		Content: req.Content,
		Hash:    contentHash(req.Content),
	}
	if err := s.documents.Upsert(ctx, doc); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to create document", "error", err)
		return nil, WrapError(err, "failed to create document")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "document created", "id", doc.ID, "title", doc.Title)
	return doc, nil
}

// UpdateDocument replaces the content of a document.
func (s *EditorService) UpdateDocument(ctx context.Context, id string, req SaveDocumentRequest) (*storage.Document, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Title = titleOf(req, doc.RelPath)
	doc.Content = req.Content
	doc.Hash = contentHash(req.Content)

	if err := s.documents.Upsert(ctx, doc); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to update document", "id", id, "error", err)
		return nil, WrapError(err, "failed to update document")
	}
	return doc, nil
}

// DeleteDocument removes a document and its pasted images.
func (s *EditorService) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	err := s.documents.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete document", "id", id, "error", err)
		return WrapError(err, "failed to delete document")
	}
	return nil
}

func titleOf(req SaveDocumentRequest, relPath string) string {
	if t := strings.TrimSpace(req.Title); t != "" {
		return t
	}
	name := ""
	if relPath != "" {
		name = path.Base(relPath)
	}
	return markdown.Title(req.Content, name)
}

// PasteImage stores a pasted image and inserts a markdown image reference at
// the cursor, on its own line. The document is saved with the new content.
func (s *EditorService) PasteImage(ctx context.Context, documentID string, req PasteImageRequest) (PasteImageResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case !strings.HasPrefix(req.MIME, "image/"):
		return PasteImageResponse{}, &ValidationError{Field: "mime", Message: "must be an image type"}
	case len(req.Data) == 0:
		return PasteImageResponse{}, &ValidationError{Field: "data", Message: "cannot be empty"}
	case len(req.Data) > MaxImageSize:
		return PasteImageResponse{}, &ValidationError{Field: "data", Message: fmt.Sprintf("exceeds %d bytes", MaxImageSize)}
	case req.Cursor < 0:
		return PasteImageResponse{}, &ValidationError{Field: "cursor", Message: "must not be negative"}
	}

	doc, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return PasteImageResponse{}, err
	}

	id := fmt.Sprintf("img-%d-%s", s.opts.Clock.Now().UnixMilli(), uuid.New().String()[:8])
	img := &storage.Image{ID: id, DocumentID: doc.ID, MIME: req.MIME, Data: req.Data}
	if err := s.images.Put(ctx, img); err != nil {
		logger.ErrorContext(ctx, "failed to store image", "document_id", doc.ID, "error", err)
		return PasteImageResponse{}, WrapError(err, "failed to store image")
	}

	content, cursor := markdown.InsertAt(doc.Content, req.Cursor, fmt.Sprintf("\n![%s](%s)\n", id, id))
	doc.Content = content
	doc.Hash = contentHash(content)
	if err := s.documents.Upsert(ctx, doc); err != nil {
		logger.ErrorContext(ctx, "failed to save document after paste", "document_id", doc.ID, "error", err)
		if delErr := s.images.Delete(ctx, id); delErr != nil {
			logger.WarnContext(ctx, "failed to remove orphaned image", "image_id", id, "error", delErr)
		}
		return PasteImageResponse{}, WrapError(err, "failed to save document")
	}

	logger.InfoContext(ctx, "image pasted", "document_id", doc.ID, "image_id", id, "size", len(req.Data))
	return PasteImageResponse{
		ID:      id,
		URL:     s.opts.ImageBase + "/" + id,
		Content: content,
		Cursor:  cursor,
	}, nil
}

// GetImage returns a pasted image.
func (s *EditorService) GetImage(ctx context.Context, id string) (*storage.Image, error) {
	if !markdown.IsPastedImageID(id) {
		return nil, ErrNotFound
	}
	img, err := s.images.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get image", "id", id, "error", err)
		return nil, WrapError(err, "failed to get image")
	}
	return img, nil
}
