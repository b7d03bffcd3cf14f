package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks mdsync/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Get gets a document by ID.
	// Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, id string) (*Document, error)
	// GetByPath gets a document by workspace relative path.
	// Returns nil and ErrNotFound if not found.
	GetByPath(ctx context.Context, relPath string) (*Document, error)
	// List returns all documents, most recently updated first.
	List(ctx context.Context) ([]*Document, error)
	// Upsert inserts a new document or updates an existing one.
	Upsert(ctx context.Context, doc *Document) error
	// Delete removes a document and its images.
	// Returns ErrNotFound if the document does not exist.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ DocumentStore = (*DocumentRepo)(nil)

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db, now: time.Now}
}

const documentColumns = "id, title, rel_path, content, hash, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var (
		doc          Document
		relPath      sql.NullString
		updatedAtStr string
	)
	if err := row.Scan(&doc.ID, &doc.Title, &relPath, &doc.Content, &doc.Hash, &updatedAtStr); err != nil {
		return nil, err
	}
	doc.RelPath = relPath.String

	updatedAt, err := parseTimestamp(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}
	doc.UpdatedAt = updatedAt
	return &doc, nil
}

// Get gets a document by ID.
func (r *DocumentRepo) Get(ctx context.Context, id string) (*Document, error) {
	doc, err := scanDocument(r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// GetByPath gets a document by workspace relative path.
func (r *DocumentRepo) GetByPath(ctx context.Context, relPath string) (*Document, error) {
	doc, err := scanDocument(r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE rel_path = ?", relPath,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// List returns all documents, most recently updated first.
func (r *DocumentRepo) List(ctx context.Context) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents ORDER BY updated_at DESC, title ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := []*Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// Upsert inserts a new document or updates an existing one.
// A document without an ID keeps the ID of the stored document at the same
// relative path, or gets a new UUID. UpdatedAt is set on doc.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	if doc.ID == "" && doc.RelPath != "" {
		existing, err := r.GetByPath(ctx, doc.RelPath)
		if err != nil && err != ErrNotFound {
			return fmt.Errorf("failed to check existing document: %w", err)
		}
		if existing != nil {
			doc.ID = existing.ID
		}
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	var relPath sql.NullString
	if doc.RelPath != "" {
		relPath = sql.NullString{String: doc.RelPath, Valid: true}
	}
	updatedAt := r.now().UTC().Truncate(time.Second)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, rel_path, content, hash, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, rel_path = excluded.rel_path, content = excluded.content,
		 hash = excluded.hash, updated_at = excluded.updated_at`,
		doc.ID, doc.Title, relPath, doc.Content, doc.Hash, updatedAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	doc.UpdatedAt = updatedAt
	return nil
}

// Delete removes a document. Pasted images are removed by the cascade.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
