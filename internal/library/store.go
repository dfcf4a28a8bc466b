package library

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Inxkls/xerces/internal/models"
)

// Persister reads and replaces one serialized collection.
//
// Load returns nil data when nothing has been saved.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store serializes the collection as a JSON array of albums.
type Store struct {
	persister Persister
}

func NewStore(p Persister) *Store {
	return &Store{persister: p}
}

// Load reads the persisted collection, deduplicated by id.
//
// A missing or empty document is an empty collection.
func (s *Store) Load(ctx context.Context) ([]models.Album, error) {
	data, err := s.persister.Load(ctx)
	if err != nil {
		return []models.Album{}, err
	}
	if len(data) == 0 {
		return []models.Album{}, nil
	}

	var albums []models.Album
	if err := json.Unmarshal(data, &albums); err != nil {
		return []models.Album{}, fmt.Errorf("failed to decode collection: %w", err)
	}
	return Dedupe(albums), nil
}

// Save replaces the persisted collection with albums.
func (s *Store) Save(ctx context.Context, albums []models.Album) error {
	if albums == nil {
		albums = []models.Album{}
	}
	data, err := json.Marshal(albums)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	return s.persister.Save(ctx, data)
}

// Dedupe keeps the first album for each id, preserving order.
func Dedupe(albums []models.Album) []models.Album {
	seen := make(map[string]struct{}, len(albums))
	out := make([]models.Album, 0, len(albums))
	for _, a := range albums {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
