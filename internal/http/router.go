package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mdsync/internal/editor"
	"mdsync/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Service   editor.Service
	DB        handlers.Pinger
	IndexHTML string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	previewHandler := handlers.NewPreviewHandler(deps.Service)
	sessionHandler := handlers.NewSessionHandler(deps.Service)
	documentHandler := handlers.NewDocumentHandler(deps.Service)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB))

		r.Route("/preview", func(r chi.Router) {
			r.Post("/render", previewHandler.Render)
			r.Post("/keypoints", previewHandler.KeyPoints)
			r.Post("/locate", previewHandler.Locate)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Open)
			r.Post("/{id}/events", sessionHandler.Event)
			r.Delete("/{id}", sessionHandler.Close)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentHandler.List)
			r.Post("/", documentHandler.Create)
			r.Get("/{id}", documentHandler.Get)
			r.Put("/{id}", documentHandler.Update)
			r.Delete("/{id}", documentHandler.Delete)
			r.Post("/{id}/images", documentHandler.PasteImage)
		})

		r.Method(http.MethodGet, "/images/{id}", handlers.NewImageHandler(deps.Service))
		r.Method(http.MethodPost, "/workspace/import", handlers.NewImportHandler(deps.Service))
	})

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
