package tasks

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/Inxkls/xerces/internal/formatter"
	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/shared"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 8
	defaultRateLimit = 10.0

	// ManifestName is the file written next to the downloaded covers.
	ManifestName = "cover_manifest.json"
)

// CoverOpts contains configuration for a cover archive run.
type CoverOpts struct {
	OutputDir  string  // Output directory (default: covers_{epoch})
	NumWorkers int     // Concurrent downloads (default: 4, max: 8)
	RateLimit  float64 // Downloads started per second across all workers (default: 10)
}

// CoverDownload is the outcome for one album.
type CoverDownload struct {
	AlbumID string `json:"id"`
	Album   string `json:"album"`
	Artist  string `json:"artist"`
	File    string `json:"file,omitempty"`
	Bytes   int    `json:"bytes,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CoverResult summarizes a cover archive run. Results keep collection order.
type CoverResult struct {
	TotalAlbums     int             `json:"total_albums"`
	Downloaded      int             `json:"downloaded"`
	Skipped         int             `json:"skipped"`
	Failed          int             `json:"failed"`
	OutputDirectory string          `json:"output_directory"`
	ManifestPath    string          `json:"-"`
	Results         []CoverDownload `json:"results"`
}

type coverJob struct {
	index int
	album models.Album
	path  string
}

// CoverEngine downloads album covers with a worker pool.
type CoverEngine struct {
	client *http.Client
	logger *log.Logger
}

// NewCoverEngine creates a CoverEngine. A nil client falls back to [formatter.DownloadImage]'s default.
func NewCoverEngine(client *http.Client, logger *log.Logger) *CoverEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CoverEngine{client: client, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *CoverEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// DownloadCovers saves the cover of every album into opts.OutputDir and writes a manifest.
//
// Per-album failures are recorded in the result; only setup, cancellation and manifest errors are returned.
func (e *CoverEngine) DownloadCovers(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	albums []models.Album,
	opts CoverOpts,
) (*CoverResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("covers_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := len(albums)
	result := &CoverResult{
		TotalAlbums:     total,
		OutputDirectory: opts.OutputDir,
		Results:         make([]CoverDownload, total),
	}

	jobs := make(chan coverJob, total)
	results := make(chan coverJob, total)
	queued := 0
	taken := make(map[string]bool, total)

	for i, album := range albums {
		if album.Image == "" {
			result.Results[i] = CoverDownload{
				AlbumID: album.ID,
				Album:   album.Name,
				Artist:  album.Artist,
				Skipped: true,
				Error:   "no cover image",
			}
			result.Skipped++
			e.sendProgress(prog, skippedCoverUpdate(i+1, total, album))
			continue
		}
		path := filepath.Join(opts.OutputDir, uniqueCoverName(album, taken))
		jobs <- coverJob{index: i, album: album, path: path}
		queued++
	}
	close(jobs)
	e.sendProgress(prog, queueCoversUpdate(queued, total))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.coverWorker(ctx, &wg, limiter, jobs, results, result.Results)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for job := range results {
		completed++
		res := result.Results[job.index]
		if res.Success {
			result.Downloaded++
			e.sendProgress(prog, coverSavedUpdate(completed, queued, res))
		} else {
			result.Failed++
			e.logger.Warn("cover download failed", "album", res.AlbumID, "error", res.Error)
			e.sendProgress(prog, coverFailedUpdate(completed, queued, res))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("cover download interrupted: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	e.sendProgress(prog, manifestUpdate(manifestPath))

	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("covers downloaded but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("covers downloaded but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// coverWorker downloads covers from jobs, writing each outcome into its slot in out.
func (e *CoverEngine) coverWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan coverJob,
	results chan<- coverJob,
	out []CoverDownload,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		out[job.index] = e.downloadOne(ctx, job.album, job.path)
		results <- job
	}
}

// uniqueCoverName returns album's cover file name, numbered when another album already took it.
//
// Names are compared case-insensitively so covers never overwrite each other on such filesystems.
func uniqueCoverName(album models.Album, taken map[string]bool) string {
	name := formatter.CoverFilename(album)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	ext := filepath.Ext(name)
	for n := 2; taken[strings.ToLower(name)]; n++ {
		name = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
	taken[strings.ToLower(name)] = true
	return name
}

func (e *CoverEngine) downloadOne(ctx context.Context, album models.Album, path string) CoverDownload {
	res := CoverDownload{AlbumID: album.ID, Album: album.Name, Artist: album.Artist}

	data, err := formatter.DownloadImage(ctx, e.client, album.Image)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		res.Error = fmt.Sprintf("failed to save cover image: %v", err)
		return res
	}

	res.File = path
	res.Bytes = len(data)
	res.Success = true
	return res
}
