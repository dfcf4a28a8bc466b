// package repositories provides the persistence layer for collection documents.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Inxkls/xerces/internal/shared"
)

// CollectionInfo describes a stored document without its contents.
type CollectionInfo struct {
	Key       string
	Revision  string
	Size      int
	UpdatedAt time.Time
}

// CollectionRepository reads and writes whole collection documents in the collections table.
type CollectionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCollectionRepository creates a new CollectionRepository with the given database connection
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Load returns the document stored under key, or nil when nothing has been saved yet.
func (r *CollectionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %q: %w", key, err)
	}
	return []byte(data), nil
}

// Save replaces the document stored under key and returns its new revision.
func (r *CollectionRepository) Save(ctx context.Context, key string, data []byte) (string, error) {
	revision := shared.GenerateID()

	query := `
		INSERT INTO collections (key, data, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(data), revision, r.now()); err != nil {
		return "", fmt.Errorf("failed to save collection %q: %w", key, err)
	}
	return revision, nil
}

// Stat returns metadata for the document under key.
//
// Returns [shared.ErrNotFound] wrapped when nothing is stored.
func (r *CollectionRepository) Stat(ctx context.Context, key string) (*CollectionInfo, error) {
	query := `
		SELECT key, revision, LENGTH(data), updated_at
		FROM collections
		WHERE key = ?
	`

	var info CollectionInfo
	err := r.db.QueryRowContext(ctx, query, key).Scan(&info.Key, &info.Revision, &info.Size, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: collection %q", shared.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat collection %q: %w", key, err)
	}
	return &info, nil
}

// For binds the repository to key.
func (r *CollectionRepository) For(key string) *CollectionBlob {
	return &CollectionBlob{repo: r, key: key}
}

// CollectionBlob is one keyed collection document.
type CollectionBlob struct {
	repo *CollectionRepository
	key  string
}

func (b *CollectionBlob) Load(ctx context.Context) ([]byte, error) {
	return b.repo.Load(ctx, b.key)
}

func (b *CollectionBlob) Save(ctx context.Context, data []byte) error {
	_, err := b.repo.Save(ctx, b.key, data)
	return err
}
