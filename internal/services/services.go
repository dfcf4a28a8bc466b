// package services defines interface Catalog for looking up albums in a remote music catalog
//
// Last.fm
package services

import (
	"context"

	"github.com/Inxkls/xerces/internal/models"
)

// Catalog is the remote album lookup used by the collection.
type Catalog interface {
	// SearchAlbums returns catalog matches for a free-text query.
	// A blank query returns no results without contacting the catalog.
	SearchAlbums(ctx context.Context, query string) ([]models.SearchResult, error)

	// GetAlbumInfo fetches one album's details, including its raw track list.
	GetAlbumInfo(ctx context.Context, artist, album string) (*AlbumInfo, error)

	// Name returns the name of the catalog (e.g., "Last.fm")
	Name() string
}
