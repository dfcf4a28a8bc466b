package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Inxkls/xerces/internal/shared"
	"github.com/Inxkls/xerces/internal/tasks"
)

// Covers downloads every collected album's cover into a directory with a manifest.
func (r *Runner) Covers(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	albums := lib.Albums()
	if len(albums) == 0 {
		return r.writePlain("No albums in your collection\n")
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.DownloadCover:
				r.writePlain("🖼  %s\n", update.Message)
			default:
				r.writePlain("📥 %s\n", update.Message)
			}
		}
	}()

	engine := tasks.NewCoverEngine(r.httpClient, shared.WithLogger(r.logger, "component", "covers"))
	result, err := engine.DownloadCovers(ctx, progressCh, albums, tasks.CoverOpts{
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("✓ Saved %d covers to %s (%d skipped, %d failed)",
		result.Downloaded, result.OutputDirectory, result.Skipped, result.Failed)
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}
