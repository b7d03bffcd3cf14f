package handlers

import (
	"net/http"

	"mdsync/internal/contextutil"
	"mdsync/internal/editor"
)

// ImportHandler handles HTTP requests for importing the workspace.
type ImportHandler struct {
	service editor.Service
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(service editor.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportResponse represents the response from the import endpoint.
type ImportResponse struct {
	Status string             `json:"status"`
	Stats  editor.ImportStats `json:"stats"`
}

// ServeHTTP handles POST /api/workspace/import. The import runs
// synchronously and reports per-file counts.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger.InfoContext(ctx, "workspace import triggered via API")
	stats, err := h.service.ImportWorkspace(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to import workspace")
		return
	}

	status := "completed"
	if stats.Failed > 0 {
		status = "completed_with_errors"
	}
	writeJSON(ctx, w, http.StatusOK, ImportResponse{Status: status, Stats: stats})
}
