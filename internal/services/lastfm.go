package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/shared"
)

const (
	methodAlbumSearch  = "album.search"
	methodAlbumGetInfo = "album.getinfo"

	// SearchImageSize is the cover size shown next to search results.
	SearchImageSize = "medium"
	// AlbumImageSize is the cover size stored with a collection entry.
	AlbumImageSize = "extralarge"
)

// LastFMService implements [Catalog] against the Last.fm web service.
type LastFMService struct {
	api *APIService
}

// NewLastFMService creates a Last.fm catalog on top of api.
func NewLastFMService(api *APIService) *LastFMService {
	return &LastFMService{api: api}
}

func (s *LastFMService) Name() string { return "Last.fm" }

// SearchAlbums calls album.search.
//
// Matches keep catalog order. A single object in albummatches.album is treated as one match.
func (s *LastFMService) SearchAlbums(ctx context.Context, query string) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []models.SearchResult{}, nil
	}

	var payload searchResponse
	if err := s.call(ctx, methodAlbumSearch, map[string]string{"album": query}, &payload); err != nil {
		return nil, err
	}

	results := []models.SearchResult{}
	if payload.Results == nil {
		return results, nil
	}

	for _, m := range payload.Results.AlbumMatches.Album {
		results = append(results, models.SearchResult{
			Name:   m.Name,
			Artist: m.Artist.String(),
			Image:  PickImage(m.Image, SearchImageSize),
			MBID:   m.MBID,
		})
	}
	return results, nil
}

// GetAlbumInfo calls album.getinfo for artist and album.
func (s *LastFMService) GetAlbumInfo(ctx context.Context, artist, album string) (*AlbumInfo, error) {
	var payload albumInfoResponse
	params := map[string]string{"artist": artist, "album": album}
	if err := s.call(ctx, methodAlbumGetInfo, params, &payload); err != nil {
		return nil, err
	}
	if payload.Album == nil {
		return nil, fmt.Errorf("%w: %s returned no album", shared.ErrAPIRequest, methodAlbumGetInfo)
	}
	return payload.Album.normalize(), nil
}

// call performs method and decodes a successful body into out.
func (s *LastFMService) call(ctx context.Context, method string, params map[string]string, out any) error {
	resp, err := s.api.Method(ctx, method, params)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, method, err)
	}

	var apiErr apiError
	if resp.IsJSON {
		if err := json.Unmarshal(resp.Body, &apiErr); err == nil && apiErr.Code != 0 {
			return fmt.Errorf("%w: %s: error %d: %s", shared.ErrAPIRequest, method, apiErr.Code, apiErr.Message)
		}
	}

	if !resp.OK() {
		return fmt.Errorf("%w: %s: status %d", shared.ErrAPIRequest, method, resp.StatusCode)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", shared.ErrAPIRequest, method, err)
	}
	return nil
}

// ToAlbum builds the collection entry for info.
func ToAlbum(info *AlbumInfo) models.Album {
	return models.Album{
		ID:     models.AlbumID(info.MBID, info.Artist, info.Name),
		Name:   info.Name,
		Artist: info.Artist,
		Image:  PickImage(info.Images, AlbumImageSize),
	}
}
