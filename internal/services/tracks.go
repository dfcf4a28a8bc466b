package services

import "github.com/Inxkls/xerces/internal/models"

// NormalizeTracks flattens an album's track list into ranked tracks.
//
// Rank comes from @attr.rank when positive, else the 1-based position.
// When the list is absent but the album has a name, the album itself stands in as one track of unknown duration.
// The result is never nil.
func NormalizeTracks(info *AlbumInfo) []models.Track {
	tracks := []models.Track{}
	if info == nil {
		return tracks
	}

	switch info.Tracks.Kind {
	case TrackListSingle, TrackListMany:
		for i, raw := range info.Tracks.Items {
			rank := i + 1
			if raw.Attr != nil && raw.Attr.Rank > 0 {
				rank = int(raw.Attr.Rank)
			}
			t := models.Track{Name: raw.Name, Rank: rank}
			if raw.Duration > 0 {
				t.DurationSeconds = int(raw.Duration)
			}
			tracks = append(tracks, t)
		}
	default:
		if info.Name != "" {
			tracks = append(tracks, models.Track{Name: info.Name, Rank: 1})
		}
	}
	return tracks
}
