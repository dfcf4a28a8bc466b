// Package tasks runs long collection operations with real-time progress reporting.
//
// # Cover Archive
//
// [CoverEngine.DownloadCovers] saves the cover image of every album in a collection:
//
//   - Albums without an image are recorded as skipped and never queued
//   - A fixed pool of workers downloads the rest concurrently
//   - A cover_manifest.json summarizing every album is written to the output directory
//
// One failed download does not stop the others; it is recorded in the result.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct carries phase, step counters and a display message.
// Updates use select with default so a slow reader never blocks the workers.
package tasks
