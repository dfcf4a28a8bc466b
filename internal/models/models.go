// package models defines the data model for the album collection
package models

import (
	"encoding/json"
	"strings"
)

// Album is one saved release in the collection.
//
// ID is the catalog mbid when the catalog has one, otherwise [AlbumID]'s artist-name key.
// It is unique within a collection.
type Album struct {
	ID     string
	Name   string
	Artist string
	Image  string // extralarge cover URL, empty when the catalog has none
}

type albumJSON struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Artist string  `json:"artist"`
	Image  *string `json:"image"`
}

// MarshalJSON writes the persisted album shape, with a null image when there is none.
func (a Album) MarshalJSON() ([]byte, error) {
	out := albumJSON{ID: a.ID, Name: a.Name, Artist: a.Artist}
	if a.Image != "" {
		out.Image = &a.Image
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the persisted album shape; a null or missing image becomes empty.
func (a *Album) UnmarshalJSON(data []byte) error {
	var in albumJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*a = Album{ID: in.ID, Name: in.Name, Artist: in.Artist}
	if in.Image != nil {
		a.Image = *in.Image
	}
	return nil
}

// AlbumID derives the collection identity of an album: the mbid when non-empty, else "artist-name".
func AlbumID(mbid, artist, name string) string {
	if strings.TrimSpace(mbid) != "" {
		return mbid
	}
	return artist + "-" + name
}

// Track is one song of an album's track list.
type Track struct {
	Name            string `json:"name"`
	DurationSeconds int    `json:"durationSeconds"` // 0 when the catalog gives no duration
	Rank            int    `json:"rank"`            // 1-based position in the album
}

// HasDuration reports whether the catalog declared a duration for the track.
func (t Track) HasDuration() bool { return t.DurationSeconds > 0 }

// MarshalJSON writes an unknown duration as null.
func (t Track) MarshalJSON() ([]byte, error) {
	out := struct {
		Name            string `json:"name"`
		DurationSeconds *int   `json:"durationSeconds"`
		Rank            int    `json:"rank"`
	}{Name: t.Name, Rank: t.Rank}
	if t.HasDuration() {
		out.DurationSeconds = &t.DurationSeconds
	}
	return json.Marshal(out)
}

// SearchResult is an ephemeral catalog match offered for adding to the collection.
type SearchResult struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Image  string `json:"image,omitempty"`
	MBID   string `json:"mbid,omitempty"`
}

// Key identifies a result in a list, mirroring how the collection would identify it.
func (r SearchResult) Key() string {
	return AlbumID(r.MBID, r.Artist, r.Name)
}
