package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mdsync/internal/contextutil"
	"mdsync/internal/editor"
	"mdsync/internal/storage"
)

// DocumentHandler serves document CRUD and image paste.
type DocumentHandler struct {
	service editor.Service
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(service editor.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// DocumentRequest creates or replaces a document.
type DocumentRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// DocumentResponse is a stored document.
type DocumentResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	RelPath   string `json:"relPath,omitempty"`
	Content   string `json:"content"`
	Hash      string `json:"hash"`
	UpdatedAt string `json:"updatedAt"`
}

// DocumentSummary is a document without its content.
type DocumentSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	RelPath   string `json:"relPath,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// DocumentListResponse lists documents.
type DocumentListResponse struct {
	Documents []DocumentSummary `json:"documents"`
}

// PasteImageRequest is an image pasted at a cursor offset. Data is base64.
type PasteImageRequest struct {
	Cursor int    `json:"cursor"`
	MIME   string `json:"mime"`
	Data   []byte `json:"data"`
}

// PasteImageResponse is the document state after a paste.
type PasteImageResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Content string `json:"content"`
	Cursor  int    `json:"cursor"`
}

func toDocumentResponse(doc *storage.Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		RelPath:   doc.RelPath,
		Content:   doc.Content,
		Hash:      doc.Hash,
		UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := h.service.ListDocuments(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list documents")
		return
	}

	resp := DocumentListResponse{Documents: make([]DocumentSummary, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, DocumentSummary{
			ID:        doc.ID,
			Title:     doc.Title,
			RelPath:   doc.RelPath,
			UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := h.service.GetDocument(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponse(doc))
}

// Create handles POST /api/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.CreateDocument(ctx, editor.SaveDocumentRequest{Title: req.Title, Content: req.Content})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create document")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toDocumentResponse(doc))
}

// Update handles PUT /api/documents/{id}.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.UpdateDocument(ctx, chi.URLParam(r, "id"), editor.SaveDocumentRequest{Title: req.Title, Content: req.Content})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponse(doc))
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.DeleteDocument(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PasteImage handles POST /api/documents/{id}/images.
func (h *DocumentHandler) PasteImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PasteImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.PasteImage(ctx, chi.URLParam(r, "id"), editor.PasteImageRequest{
		Cursor: req.Cursor,
		MIME:   req.MIME,
		Data:   req.Data,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to paste image")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, PasteImageResponse{
		ID:      res.ID,
		URL:     res.URL,
		Content: res.Content,
		Cursor:  res.Cursor,
	})
}
