package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mdsync/internal/contextutil"
	"mdsync/internal/editor"
	"mdsync/internal/markdown"
	"mdsync/internal/preview"
	"mdsync/internal/scrollsync"
)

// SessionHandler serves scroll-sync sessions.
type SessionHandler struct {
	service editor.Service
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service editor.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// OpenSessionRequest opens a session over a stored document or raw source.
type OpenSessionRequest struct {
	DocumentID string `json:"documentId,omitempty"`
	Source     string `json:"source,omitempty"`
	Cursor     int    `json:"cursor"`
}

// SessionResponse identifies a session.
type SessionResponse struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
}

// EventRequest is an editor event. Source and Offsets are optional updates
// of the session state.
type EventRequest struct {
	Kind    string    `json:"kind"`
	Cursor  int       `json:"cursor"`
	Source  *string   `json:"source,omitempty"`
	Offsets []float64 `json:"offsets,omitempty"`
}

// ScrollResponse tells the client where to scroll the preview.
type ScrollResponse struct {
	Top      float64          `json:"top"`
	Behavior preview.Behavior `json:"behavior"`
}

// EventResponse reports the sync outcome of an event.
type EventResponse struct {
	Outcome  scrollsync.Outcome `json:"outcome"`
	Line     int                `json:"line"`
	KeyPoint *markdown.KeyPoint `json:"keyPoint,omitempty"`
	Scroll   *ScrollResponse    `json:"scroll,omitempty"`
}

// Open handles POST /api/sessions.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OpenSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.service.OpenSession(ctx, editor.OpenSessionRequest{
		DocumentID: req.DocumentID,
		Source:     req.Source,
		Cursor:     req.Cursor,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to open session")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, SessionResponse{ID: info.ID, DocumentID: info.DocumentID})
}

// Event handles POST /api/sessions/{id}/events.
func (h *SessionHandler) Event(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Event(ctx, chi.URLParam(r, "id"), editor.EventRequest{
		Kind:    req.Kind,
		Cursor:  req.Cursor,
		Source:  req.Source,
		Offsets: req.Offsets,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to handle event")
		return
	}

	resp := EventResponse{Outcome: res.Outcome, Line: res.Line, KeyPoint: res.KeyPoint}
	if res.Scroll != nil {
		resp.Scroll = &ScrollResponse{Top: res.Scroll.Top, Behavior: res.Scroll.Behavior}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Close handles DELETE /api/sessions/{id}.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.CloseSession(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
