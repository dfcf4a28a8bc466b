// package formatter renders the album collection and track lists as CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatMarkdown}

// ParseFormat resolves a format name (case-insensitive; "md" and "txt" are accepted).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
}

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// FormatDuration renders seconds as m:ss; unknown (zero or negative) durations render empty.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// AlbumsToCSV converts albums to CSV with columns: ID, Name, Artist, Image
func AlbumsToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Name", "Artist", "Image"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		if err := writer.Write([]string{album.ID, album.Name, album.Artist, album.Image}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// AlbumsToMarkdown renders the collection as a Markdown document with cover thumbnails.
func AlbumsToMarkdown(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# My Albums\n\n")
	buf.WriteString(fmt.Sprintf("**Albums**: %d\n\n", len(albums)))

	for i, album := range albums {
		buf.WriteString(fmt.Sprintf("%d. **%s** - %s", i+1, album.Name, album.Artist))
		if album.Image != "" {
			buf.WriteString(fmt.Sprintf(" ![%s](%s)", album.Name, album.Image))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// AlbumsToText renders the collection one album per line.
func AlbumsToText(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Albums: %d\n\n", len(albums)))
	for i, album := range albums {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, album.Artist, album.Name, album.ID))
	}

	return buf.Bytes(), nil
}

// AlbumsToJSON renders the collection in its persisted JSON shape.
func AlbumsToJSON(albums []models.Album) ([]byte, error) {
	if albums == nil {
		albums = []models.Album{}
	}
	return shared.MarshalJSON(albums, true)
}

// TracksToText renders a numbered track list, with durations when known.
func TracksToText(album models.Album, tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s - %s\n\n", album.Artist, album.Name))
	if len(tracks) == 0 {
		buf.WriteString("No tracks found.\n")
		return buf.Bytes()
	}

	for _, track := range tracks {
		line := strconv.Itoa(track.Rank) + ". " + track.Name
		if d := FormatDuration(track.DurationSeconds); d != "" {
			line += " (" + d + ")"
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes()
}

// RenderAlbums renders albums in format.
func RenderAlbums(albums []models.Album, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return AlbumsToJSON(albums)
	case FormatCSV:
		return AlbumsToCSV(albums)
	case FormatMarkdown:
		return AlbumsToMarkdown(albums)
	default:
		return AlbumsToText(albums)
	}
}

// WriteExport writes albums to path in format.
//
// Defaults to albums{ext} in the working directory. Returns the path written.
func WriteExport(albums []models.Album, format Format, path string) (string, error) {
	if path == "" {
		path = "albums" + format.Extension()
	}

	data, err := RenderAlbums(albums, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes.
//
// A nil client gets a 30 second timeout.
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidArgument)
	}

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// CoverFilename derives a file name for album's cover from its artist and name.
func CoverFilename(album models.Album) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, album.Artist+" - "+album.Name)
	return base + ".png"
}

// WriteCover downloads album's cover image to path, defaulting to [CoverFilename].
func WriteCover(ctx context.Context, client *http.Client, album models.Album, path string) (string, error) {
	if album.Image == "" {
		return "", fmt.Errorf("%w: %s has no cover image", shared.ErrInvalidInput, album.ID)
	}
	if path == "" {
		path = CoverFilename(album)
	}

	data, err := DownloadImage(ctx, client, album.Image)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save cover image: %w", err)
	}
	return path, nil
}
