package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Inxkls/xerces/internal/formatter"
	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/shared"
)

// Search prints catalog matches for the query argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	if err := r.requireAPIKey(); err != nil {
		return err
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("searching catalog", "query", query)
	results := lib.Search(ctx, query)

	if cmd.Bool("json") {
		return r.writeJSON(results, true)
	}

	if len(results) == 0 {
		return r.writePlain("No albums found for %q\n", query)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", query, len(results)))
	for i, res := range results {
		marker := " "
		if lib.Contains(res) {
			marker = "✓"
		}
		r.writePlain("%s %2d. %s - %s\n", marker, i+1, res.Artist, res.Name)
	}
	return nil
}

// Add fetches an album by artist and name and adds it to the collection.
//
// A duplicate is reported as a notice, not an error.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPIKey(); err != nil {
		return err
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	candidate := models.SearchResult{Artist: cmd.String("artist"), Name: cmd.String("album")}
	album, err := lib.AddAlbum(ctx, candidate)
	switch {
	case errors.Is(err, shared.ErrDuplicateAlbum):
		return r.writePlain("%s - %s is already in your collection\n", candidate.Artist, candidate.Name)
	case err != nil:
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, true)
	}
	return r.writePlain("✓ Added %s - %s [%s]\n", album.Artist, album.Name, album.ID)
}

// Remove deletes an album from the collection; unknown ids are not an error.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	album, _ := lib.Find(id)
	if !lib.RemoveAlbum(ctx, id) {
		return r.writePlain("No album with id %q in your collection\n", id)
	}
	return r.writePlain("✓ Removed %s - %s\n", album.Artist, album.Name)
}

// List prints the collection in the requested format.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	data, err := formatter.RenderAlbums(lib.Albums(), format)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// Tracks prints the track list for a collected album id, or for --artist/--album.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPIKey(); err != nil {
		return err
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	var album models.Album
	if id := cmd.StringArg("id"); id != "" {
		found, ok := lib.Find(id)
		if !ok {
			return fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, id)
		}
		album = found
	} else {
		album = models.Album{Artist: cmd.String("artist"), Name: cmd.String("album")}
		if album.Artist == "" || album.Name == "" {
			return fmt.Errorf("%w: an album id or both --artist and --album", shared.ErrMissingArgument)
		}
	}

	tracks := lib.GetTracks(ctx, album)
	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}
	_, err = r.output.Write(formatter.TracksToText(album, tracks))
	return err
}

// Export writes the collection to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	albums := lib.Albums()
	path, err := formatter.WriteExport(albums, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("collection exported", "format", format, "path", path, "albums", len(albums))
	return r.writePlain("✓ Exported %d albums to %s\n", len(albums), path)
}

// Cover downloads a collected album's cover image.
func (r *Runner) Cover(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	album, ok := lib.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, id)
	}

	path, err := formatter.WriteCover(ctx, r.httpClient, album, cmd.String("output"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Saved cover to %s\n", path)
}

// collectionStatus is the JSON shape of the status command.
type collectionStatus struct {
	Albums    int    `json:"albums"`
	Key       string `json:"key"`
	Database  string `json:"database"`
	Revision  string `json:"revision,omitempty"`
	Size      int    `json:"size,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Catalog   string `json:"catalog"`
}

// Status reports the collection size and the stored document's revision.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	status := collectionStatus{
		Albums:   lib.Len(),
		Key:      r.config.Storage.Key,
		Database: r.config.Database.Path,
		Catalog:  r.catalog.Name(),
	}

	info, err := r.repo.Stat(ctx, r.config.Storage.Key)
	switch {
	case errors.Is(err, shared.ErrNotFound):
	case err != nil:
		return err
	default:
		status.Revision = info.Revision
		status.Size = info.Size
		status.UpdatedAt = info.UpdatedAt.Format("2006-01-02 15:04:05 MST")
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	r.writePlainHeader("Collection")
	r.writePlain("Albums:   %d\n", status.Albums)
	r.writePlain("Key:      %s\n", status.Key)
	r.writePlain("Database: %s\n", status.Database)
	r.writePlain("Catalog:  %s\n", status.Catalog)
	if status.Revision == "" {
		return r.writePlain("Saved:    never\n")
	}
	r.writePlain("Revision: %s\n", status.Revision)
	return r.writePlain("Saved:    %s (%d bytes)\n", status.UpdatedAt, status.Size)
}
