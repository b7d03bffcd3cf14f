package storage

import "time"

// Document is a markdown document edited in the split-pane editor.
type Document struct {
	ID        string // UUID
	Title     string // Extracted title from markdown
	RelPath   string // Relative path in the workspace, empty for documents created in the editor
	Content   string
	Hash      string // SHA256 hex string of Content
	UpdatedAt time.Time
}

// Image is an image pasted into a document.
type Image struct {
	ID         string // img-<unix millis>-<hex>
	DocumentID string // Foreign key to documents.id
	MIME       string
	Data       []byte
	CreatedAt  time.Time
}
