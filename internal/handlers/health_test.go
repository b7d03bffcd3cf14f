package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		method     string
		wantStatus int
		wantState  string
	}{
		{"healthy", fakePinger{}, http.MethodGet, http.StatusOK, "healthy"},
		{"database down", fakePinger{err: errors.New("closed")}, http.MethodGet, http.StatusServiceUnavailable, "unhealthy"},
		{"no database", nil, http.MethodGet, http.StatusServiceUnavailable, "unhealthy"},
		{"method not allowed", fakePinger{}, http.MethodPost, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthHandler(tt.db).ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantState == "" {
				return
			}
			resp := decodeBody[HealthResponse](t, w)
			if resp.Status != tt.wantState {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantState)
			}
			if tt.wantState == "unhealthy" && (len(resp.Issues) != 1 || resp.Checks["database"] != "error") {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}
