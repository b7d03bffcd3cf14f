package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdsync/internal/config"
	"mdsync/internal/editor"
	"mdsync/internal/http"
	"mdsync/internal/preview"
	"mdsync/internal/storage"
	"mdsync/internal/workspace"
)

//go:embed web/index.html
var indexHTML string

// janitorInterval is how often idle sessions are evicted.
const janitorInterval = time.Minute

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	documentRepo := storage.NewDocumentRepo(db)
	imageRepo := storage.NewImageRepo(db)

	// Workspace import is optional
	var scanner editor.WorkspaceScanner
	if cfg.WorkspacePath != "" {
		s, err := workspace.NewScanner(cfg.WorkspacePath)
		if err != nil {
			log.Fatalf("Failed to initialize workspace scanner: %v", err)
		}
		scanner = s
		slog.Info("Workspace configured", "path", s.Root())
	}

	service := editor.NewService(documentRepo, imageRepo, scanner, serviceOptions(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go service.RunJanitor(ctx, janitorInterval)

	// Start import in background after router is ready
	if scanner != nil {
		go func() {
			slog.Info("Starting background import of workspace")
			stats, err := service.ImportWorkspace(ctx)
			if err != nil {
				slog.Error("Workspace import failed", "error", err)
				return
			}
			slog.Info("Workspace import completed",
				"scanned", stats.Scanned, "imported", stats.Imported,
				"unchanged", stats.Unchanged, "failed", stats.Failed)
		}()
	}

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Service:   service,
		DB:        db,
		IndexHTML: indexHTML,
	})

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Sync configuration",
		"throttle", cfg.Sync.ThrottleInterval, "cooldown", cfg.Sync.Cooldown,
		"margin", cfg.Sync.ScrollMargin, "threshold", cfg.Sync.MatchThreshold)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}

// serviceOptions maps the sync configuration onto service options.
func serviceOptions(cfg *config.Config) editor.Options {
	opts := editor.DefaultOptions()
	opts.Throttle = cfg.Sync.ThrottleInterval
	opts.Cooldown = cfg.Sync.Cooldown
	opts.Margin = cfg.Sync.ScrollMargin
	opts.Threshold = cfg.Sync.MatchThreshold
	opts.Behavior = preview.Behavior(cfg.Sync.ScrollBehavior)
	opts.CodeMode = preview.CodeMode(cfg.Sync.CodeScorer)
	opts.HighlightStyle = cfg.Sync.HighlightStyle
	opts.Layout = cfg.Sync.Layout
	opts.IdleTimeout = cfg.SessionIdleTimeout
	return opts
}
