package editor

import (
	"context"
	"fmt"
	"os"
	"path"

	"mdsync/internal/contextutil"
	"mdsync/internal/markdown"
	"mdsync/internal/storage"
	"mdsync/internal/workspace"
)

// ImportStats summarizes a workspace import.
type ImportStats struct {
	Scanned   int `json:"scanned"`
	Imported  int `json:"imported"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// ImportWorkspace stores every workspace markdown file whose content changed
// since the last import. Errors for individual files are logged and counted
// but don't stop the import.
func (s *EditorService) ImportWorkspace(ctx context.Context) (ImportStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var stats ImportStats

	if s.scanner == nil {
		return stats, &ValidationError{Field: "workspace", Message: "no workspace configured"}
	}

	files, err := s.scanner.Scan(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to scan workspace", "error", err)
		return stats, WrapError(err, "failed to scan workspace")
	}
	stats.Scanned = len(files)
	logger.InfoContext(ctx, "starting workspace import", "total_files", len(files))

	for _, file := range files {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		imported, err := s.importFile(ctx, file)
		switch {
		case err != nil:
			stats.Failed++
			logger.ErrorContext(ctx, "failed to import file", "rel_path", file.RelPath, "error", err)
		case imported:
			stats.Imported++
		default:
			stats.Unchanged++
		}
	}

	logger.InfoContext(ctx, "workspace import completed",
		"total_files", stats.Scanned, "imported", stats.Imported, "unchanged", stats.Unchanged, "errors", stats.Failed)
	return stats, nil
}

// importFile upserts one file and reports whether it changed.
func (s *EditorService) importFile(ctx context.Context, file workspace.ScannedFile) (bool, error) {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return false, fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
	}
	hash := contentHash(string(content))

	existing, err := s.documents.GetByPath(ctx, file.RelPath)
	if err != nil && err != storage.ErrNotFound {
		return false, fmt.Errorf("failed to check existing document: %w", err)
	}

	// Skip unchanged files
	if existing != nil && existing.Hash == hash {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "skipping unchanged file", "rel_path", file.RelPath, "hash", hash)
		return false, nil
	}

	doc := &storage.Document{
		Title:   markdown.Title(string(content), path.Base(file.RelPath)),
		RelPath: file.RelPath,
		Content: string(content),
		Hash:    hash,
	}
	if existing != nil {
		doc.ID = existing.ID
	}
	if err := s.documents.Upsert(ctx, doc); err != nil {
		return false, fmt.Errorf("failed to upsert document: %w", err)
	}
	return true, nil
}
