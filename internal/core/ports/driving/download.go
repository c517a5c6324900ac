package driving

import "context"

// DownloadOrchestrator fetches the zip archives of catalogued records.
type DownloadOrchestrator interface {
	// Download fetches every pending archive. Per-file failures are
	// counted, logged and skipped; the batch itself only fails on
	// context cancellation or an unusable data directory.
	Download(ctx context.Context) (*DownloadSummary, error)
}

// DownloadSummary reports what one download run did.
type DownloadSummary struct {
	// Downloaded is the number of archive files fetched and validated.
	Downloaded int

	// Skipped is the number of records whose dataset directory was
	// already populated.
	Skipped int

	// Failed is the number of files that could not be fetched.
	Failed int
}
