package library

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/services"
	"github.com/Inxkls/xerces/internal/shared"
)

// mockCatalog is a test double for [services.Catalog] that counts its calls.
//
// infos is keyed by "artist|album"; a missing key fails like an unknown album.
type mockCatalog struct {
	mu sync.Mutex

	results   []models.SearchResult
	infos     map[string]*services.AlbumInfo
	searchErr error

	searchCalls int
	infoCalls   int
}

func (m *mockCatalog) SearchAlbums(ctx context.Context, query string) ([]models.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockCatalog) GetAlbumInfo(ctx context.Context, artist, album string) (*services.AlbumInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoCalls++
	if info, ok := m.infos[artist+"|"+album]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("%w: album.getinfo: error 6: Album not found", shared.ErrAPIRequest)
}

func (m *mockCatalog) Name() string { return "mock" }

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
