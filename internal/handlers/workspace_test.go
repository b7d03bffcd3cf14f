package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"mdsync/internal/editor"
	"mdsync/internal/editor/mocks"
)

func TestImportHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		mockSetup  func(*mocks.MockService)
		wantStatus int
		wantResult string
	}{
		{
			name:   "completed",
			method: http.MethodPost,
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ImportWorkspace(gomock.Any()).
					Return(editor.ImportStats{Scanned: 3, Imported: 2, Unchanged: 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantResult: "completed",
		},
		{
			name:   "completed with errors",
			method: http.MethodPost,
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ImportWorkspace(gomock.Any()).
					Return(editor.ImportStats{Scanned: 3, Imported: 2, Failed: 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantResult: "completed_with_errors",
		},
		{
			name:   "no workspace configured",
			method: http.MethodPost,
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ImportWorkspace(gomock.Any()).
					Return(editor.ImportStats{}, &editor.ValidationError{Field: "workspace", Message: "no workspace configured"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "scan failure",
			method: http.MethodPost,
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ImportWorkspace(gomock.Any()).Return(editor.ImportStats{}, errors.New("permission denied"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			mockSetup:  func(m *mocks.MockService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockService(ctrl)
			tt.mockSetup(svc)

			w := httptest.NewRecorder()
			NewImportHandler(svc).ServeHTTP(w, httptest.NewRequest(tt.method, "/api/workspace/import", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantResult != "" {
				if got := decodeBody[ImportResponse](t, w).Status; got != tt.wantResult {
					t.Errorf("status field = %q, want %q", got, tt.wantResult)
				}
			}
		})
	}
}
