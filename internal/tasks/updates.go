package tasks

import (
	"fmt"

	"github.com/Inxkls/xerces/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	QueueCovers Phase = iota
	DownloadCover
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case QueueCovers:
		return "queue_covers"
	case DownloadCover:
		return "download_cover"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func queueCoversUpdate(queued, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueCovers,
		Step:    queued,
		Total:   total,
		Message: fmt.Sprintf("Queued %d of %d covers...", queued, total),
	}
}

func skippedCoverUpdate(step, total int, album models.Album) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueCovers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s - %s has no cover", step, total, album.Artist, album.Name),
		Data:    album,
	}
}

func coverSavedUpdate(step, total int, res CoverDownload) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadCover,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s (%d bytes)", step, total, res.Artist, res.Album, res.Bytes),
		Data:    res,
	}
}

func coverFailedUpdate(step, total int, res CoverDownload) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadCover,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %s", step, total, res.Artist, res.Album, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest to %s", path),
	}
}
