package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Image is one entry of a catalog image list.
type Image struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// PickImage returns the URL of the image tagged size, or "" when the list has no such entry.
func PickImage(images []Image, size string) string {
	for _, img := range images {
		if img.Size == size {
			return img.URL
		}
	}
	return ""
}

// ArtistField is an artist given either as a plain string or as an object with a name.
type ArtistField struct {
	Name string
}

func (a *ArtistField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		a.Name = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &a.Name)
	case len(data) > 0 && data[0] == '{':
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		a.Name = obj.Name
		return nil
	}
	return fmt.Errorf("artist: unexpected JSON %s", data)
}

func (a ArtistField) String() string { return a.Name }

// FlexInt is an integer sent either as a JSON number or as a numeric string.
//
// null, "" and non-numeric strings decode to 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}

// RawTrack is a track as the catalog sends it.
type RawTrack struct {
	Name     string  `json:"name"`
	Duration FlexInt `json:"duration"`
	Attr     *struct {
		Rank FlexInt `json:"rank"`
	} `json:"@attr,omitempty"`
}

// TrackListKind tags which shape the catalog used for an album's track list.
type TrackListKind int

const (
	TrackListAbsent TrackListKind = iota // no tracks.track at all
	TrackListSingle                      // a bare object (one-track album)
	TrackListMany                        // an array
)

func (k TrackListKind) String() string {
	switch k {
	case TrackListSingle:
		return "single"
	case TrackListMany:
		return "many"
	default:
		return "absent"
	}
}

// TrackList is the tagged union behind tracks.track: absent, one object, or an array.
//
// Items always holds the tracks in catalog order; a single object is stored as a one-element slice.
type TrackList struct {
	Kind  TrackListKind
	Items []RawTrack
}

func (t *TrackList) UnmarshalJSON(data []byte) error {
	items, kind, err := decodeOneOrMany[RawTrack](data)
	if err != nil {
		return fmt.Errorf("tracks: %w", err)
	}
	t.Kind, t.Items = kind, items
	return nil
}

// decodeOneOrMany decodes a value the catalog sends as either a single object or an array of them.
//
// Scalars such as "" or 0 count as absent.
func decodeOneOrMany[T any](data []byte) ([]T, TrackListKind, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, TrackListAbsent, nil
	}

	switch data[0] {
	case '[':
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return nil, TrackListAbsent, err
		}
		return many, TrackListMany, nil
	case '{':
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, TrackListAbsent, err
		}
		return []T{one}, TrackListSingle, nil
	}
	return nil, TrackListAbsent, nil
}

// tracksEnvelope is the "tracks" object; anything other than an object counts as absent.
type tracksEnvelope struct {
	Track TrackList
}

func (e *tracksEnvelope) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		e.Track = TrackList{}
		return nil
	}
	var aux struct {
		Track TrackList `json:"track"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Track = aux.Track
	return nil
}

// AlbumInfo is the normalized album.getinfo payload.
//
// Artist is always a plain string; Tracks keeps its tag for [NormalizeTracks].
type AlbumInfo struct {
	Name   string
	Artist string
	MBID   string
	Images []Image
	Tracks TrackList
}

type albumInfoJSON struct {
	Name   string          `json:"name"`
	Artist ArtistField     `json:"artist"`
	MBID   string          `json:"mbid"`
	Image  []Image         `json:"image"`
	Tracks *tracksEnvelope `json:"tracks"`
}

func (a albumInfoJSON) normalize() *AlbumInfo {
	info := &AlbumInfo{
		Name:   a.Name,
		Artist: a.Artist.String(),
		MBID:   a.MBID,
		Images: a.Image,
	}
	if a.Tracks != nil {
		info.Tracks = a.Tracks.Track
	}
	return info
}

type albumInfoResponse struct {
	Album *albumInfoJSON `json:"album"`
}

type searchMatchJSON struct {
	Name   string      `json:"name"`
	Artist ArtistField `json:"artist"`
	Image  []Image     `json:"image"`
	MBID   string      `json:"mbid"`
}

// searchMatches holds albummatches.album, which the catalog may collapse to one object.
type searchMatches []searchMatchJSON

func (s *searchMatches) UnmarshalJSON(data []byte) error {
	items, _, err := decodeOneOrMany[searchMatchJSON](data)
	if err != nil {
		return fmt.Errorf("albummatches: %w", err)
	}
	*s = items
	return nil
}

type searchResponse struct {
	Results *struct {
		AlbumMatches struct {
			Album searchMatches `json:"album"`
		} `json:"albummatches"`
	} `json:"results"`
}

// apiError is the catalog's error envelope, e.g. {"error": 6, "message": "Album not found"}.
type apiError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}
