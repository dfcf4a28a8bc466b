package library

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/services"
	"github.com/Inxkls/xerces/internal/shared"
)

// Service holds the collection in memory and mirrors every change to its [Store].
//
// Albums are ordered most recently added first.
type Service struct {
	catalog services.Catalog
	store   *Store
	logger  *log.Logger

	mu     sync.Mutex
	albums []models.Album
}

// NewService creates a Service with an empty collection; call [Service.Load] to read the persisted one.
func NewService(catalog services.Catalog, store *Store, logger *log.Logger) *Service {
	return &Service{
		catalog: catalog,
		store:   store,
		logger:  logger,
		albums:  []models.Album{},
	}
}

// Load replaces the in-memory collection with the persisted one.
//
// On failure the collection is left empty and the error is returned for reporting.
func (s *Service) Load(ctx context.Context) error {
	albums, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to load collection", "error", err)
		s.albums = []models.Album{}
		return err
	}
	s.albums = albums
	s.logger.Debug("collection loaded", "albums", len(albums))
	return nil
}

// Albums returns a copy of the collection.
func (s *Service) Albums() []models.Album {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Album{}, s.albums...)
}

// Len returns the number of albums in the collection.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.albums)
}

// Find looks an album up by id.
func (s *Service) Find(id string) (models.Album, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// Contains reports whether result is already collected.
//
// Catalog ids drift between search and info lookups, so an album with the same
// artist and name also counts.
func (s *Service) Contains(result models.SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(result.Key()); ok {
		return true
	}
	for _, a := range s.albums {
		if strings.EqualFold(a.Artist, result.Artist) && strings.EqualFold(a.Name, result.Name) {
			return true
		}
	}
	return false
}

func (s *Service) find(id string) (models.Album, bool) {
	for _, a := range s.albums {
		if a.ID == id {
			return a, true
		}
	}
	return models.Album{}, false
}

// Search returns catalog matches for query.
//
// Blank queries and catalog failures yield an empty slice.
func (s *Service) Search(ctx context.Context, query string) []models.SearchResult {
	if strings.TrimSpace(query) == "" {
		return []models.SearchResult{}
	}

	results, err := s.catalog.SearchAlbums(ctx, query)
	if err != nil {
		s.logger.Warn("search failed", "query", query, "error", err)
		return []models.SearchResult{}
	}
	if results == nil {
		return []models.SearchResult{}
	}
	return results
}

// AddAlbum fetches candidate's album info and prepends it to the collection.
//
// Returns an error wrapping [shared.ErrFetchAlbum] when the catalog lookup fails
// and [shared.ErrDuplicateAlbum] when the resolved id is already collected.
// Neither case changes the collection.
func (s *Service) AddAlbum(ctx context.Context, candidate models.SearchResult) (*models.Album, error) {
	info, err := s.catalog.GetAlbumInfo(ctx, candidate.Artist, candidate.Name)
	if err != nil {
		s.logger.Warn("album lookup failed", "artist", candidate.Artist, "album", candidate.Name, "error", err)
		return nil, fmt.Errorf("%w: %s - %s: %w", shared.ErrFetchAlbum, candidate.Artist, candidate.Name, err)
	}

	album := services.ToAlbum(info)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(album.ID); ok {
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrDuplicateAlbum, album.Artist, album.Name)
	}

	next := make([]models.Album, 0, len(s.albums)+1)
	next = append(next, album)
	next = append(next, s.albums...)
	s.albums = next

	s.save(ctx)
	s.logger.Info("album added", "id", album.ID, "artist", album.Artist, "album", album.Name)
	return &album, nil
}

// RemoveAlbum drops the album with id and persists the collection.
//
// Unknown ids leave the collection unchanged. Reports whether an album was removed.
func (s *Service) RemoveAlbum(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Album, 0, len(s.albums))
	for _, a := range s.albums {
		if a.ID != id {
			next = append(next, a)
		}
	}
	removed := len(next) != len(s.albums)
	s.albums = next

	s.save(ctx)
	if removed {
		s.logger.Info("album removed", "id", id)
	}
	return removed
}

// GetTracks returns album's normalized track list, or an empty slice when the lookup fails.
func (s *Service) GetTracks(ctx context.Context, album models.Album) []models.Track {
	info, err := s.catalog.GetAlbumInfo(ctx, album.Artist, album.Name)
	if err != nil {
		s.logger.Warn("track lookup failed", "artist", album.Artist, "album", album.Name, "error", err)
		return []models.Track{}
	}
	return services.NormalizeTracks(info)
}

// save persists the current collection. Caller holds mu.
func (s *Service) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.albums); err != nil {
		s.logger.Error("failed to save collection", "albums", len(s.albums), "error", err)
	}
}
