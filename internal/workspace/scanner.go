// Package workspace finds markdown documents in a directory tree.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedFile represents a markdown file found during a workspace scan.
type ScannedFile struct {
	RelPath string // Relative path from workspace root (e.g., "projects/meeting-notes.md")
	AbsPath string // Absolute file path
}

// Scanner walks a workspace root for markdown files.
type Scanner struct {
	root string
}

// NewScanner creates a scanner for root, which must be an existing directory.
func NewScanner(root string) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace path %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access workspace %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", abs)
	}
	return &Scanner{root: abs}, nil
}

// Root returns the absolute workspace root.
func (s *Scanner) Root() string {
	return s.root
}

// AbsPath returns the absolute path for a workspace relative path.
func (s *Scanner) AbsPath(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

// Scan returns all markdown files below the root, sorted by relative path.
// Hidden directories (.git, .obsidian, ...) are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		// Filter for markdown files
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		files = append(files, ScannedFile{
			// Normalize relative path (use forward slashes for consistency)
			RelPath: filepath.ToSlash(relPath),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan workspace %s: %w", s.root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}
