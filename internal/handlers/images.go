package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mdsync/internal/contextutil"
	"mdsync/internal/editor"
)

// ImageHandler serves pasted images.
type ImageHandler struct {
	service editor.Service
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service editor.Service) *ImageHandler {
	return &ImageHandler{service: service}
}

// ServeHTTP handles GET /api/images/{id}.
func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	img, err := h.service.GetImage(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get image")
		return
	}

	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	// ids are never reused
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write image", "id", img.ID, "error", err)
	}
}
