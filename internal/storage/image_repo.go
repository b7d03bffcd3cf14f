package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image_store.go -package=mocks mdsync/internal/storage ImageStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ImageStore defines the interface for pasted image storage.
type ImageStore interface {
	// Put stores an image. The owning document must exist.
	Put(ctx context.Context, img *Image) error
	// Get gets an image by ID.
	// Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, id string) (*Image, error)
	// Delete removes an image by ID.
	// Returns ErrNotFound if not found.
	Delete(ctx context.Context, id string) error
}

// ImageRepo provides methods for image operations.
// It implements the ImageStore interface.
type ImageRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ ImageStore = (*ImageRepo)(nil)

// NewImageRepo creates a new ImageRepo.
func NewImageRepo(db *sql.DB) *ImageRepo {
	return &ImageRepo{db: db, now: time.Now}
}

// Put stores an image, replacing any image with the same ID.
func (r *ImageRepo) Put(ctx context.Context, img *Image) error {
	createdAt := r.now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO images (id, document_id, mime, data, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 document_id = excluded.document_id, mime = excluded.mime, data = excluded.data`,
		img.ID, img.DocumentID, img.MIME, img.Data, createdAt.Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	img.CreatedAt = createdAt
	return nil
}

// Get gets an image by ID.
func (r *ImageRepo) Get(ctx context.Context, id string) (*Image, error) {
	var (
		img          Image
		createdAtStr string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, document_id, mime, data, created_at FROM images WHERE id = ?", id,
	).Scan(&img.ID, &img.DocumentID, &img.MIME, &img.Data, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query image: %w", err)
	}

	img.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return &img, nil
}

// Delete removes an image by ID.
func (r *ImageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
