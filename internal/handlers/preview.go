package handlers

import (
	"net/http"

	"mdsync/internal/contextutil"
	"mdsync/internal/editor"
	"mdsync/internal/markdown"
	"mdsync/internal/preview"
)

// PreviewHandler serves the stateless preview endpoints.
type PreviewHandler struct {
	service editor.Service
}

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(service editor.Service) *PreviewHandler {
	return &PreviewHandler{service: service}
}

// SourceRequest carries markdown source.
type SourceRequest struct {
	Source string `json:"source"`
}

// RenderResponse is the rendered preview.
type RenderResponse struct {
	HTML string `json:"html"`
}

// KeyPointsResponse lists the key points of a source.
type KeyPointsResponse struct {
	KeyPoints []markdown.KeyPoint `json:"keyPoints"`
}

// LocateRequest matches key points against a preview. HTML and KeyPoints
// are derived from Source when omitted.
type LocateRequest struct {
	Source    string              `json:"source"`
	HTML      string              `json:"html,omitempty"`
	KeyPoints []markdown.KeyPoint `json:"keyPoints,omitempty"`
	Offsets   []float64           `json:"offsets,omitempty"`
}

// LocatedResponse is one key point matched to a preview element.
type LocatedResponse struct {
	KeyPoint  markdown.KeyPoint   `json:"keyPoint"`
	Element   preview.ElementInfo `json:"element"`
	OffsetTop float64             `json:"offsetTop"`
	Score     float64             `json:"score"`
}

// LocateResponse lists the matched key points.
type LocateResponse struct {
	Matches []LocatedResponse `json:"matches"`
}

// Render handles POST /api/preview/render.
func (h *PreviewHandler) Render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	out, err := h.service.Render(ctx, req.Source)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to render preview")
		return
	}
	writeJSON(ctx, w, http.StatusOK, RenderResponse{HTML: out})
}

// KeyPoints handles POST /api/preview/keypoints.
func (h *PreviewHandler) KeyPoints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	points := h.service.KeyPoints(ctx, req.Source)
	if points == nil {
		points = []markdown.KeyPoint{}
	}
	writeJSON(ctx, w, http.StatusOK, KeyPointsResponse{KeyPoints: points})
}

// Locate handles POST /api/preview/locate.
func (h *PreviewHandler) Locate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LocateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	located, err := h.service.Locate(ctx, editor.LocateRequest{
		Source:    req.Source,
		HTML:      req.HTML,
		KeyPoints: req.KeyPoints,
		Offsets:   req.Offsets,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to locate key points")
		return
	}

	resp := LocateResponse{Matches: make([]LocatedResponse, 0, len(located))}
	for _, l := range located {
		resp.Matches = append(resp.Matches, LocatedResponse{
			KeyPoint:  l.KeyPoint,
			Element:   l.Element,
			OffsetTop: l.OffsetTop,
			Score:     l.Score,
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
