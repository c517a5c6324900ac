package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
	"github.com/cldfstats/cldfmeta-cli/internal/progress"
)

// Ensure DownloadService implements the interface.
var _ driving.DownloadOrchestrator = (*DownloadService)(nil)

// DownloadService fetches the zip archives of catalogued records into
// <dataDir>/datasets/<record>/. Archives stay zipped; the stats engine
// reads inside them without extraction.
type DownloadService struct {
	records driven.RecordStore
	fetcher driven.FileFetcher
	dataDir string
}

// NewDownloadService creates a download service.
func NewDownloadService(records driven.RecordStore, fetcher driven.FileFetcher, dataDir string) *DownloadService {
	return &DownloadService{records: records, fetcher: fetcher, dataDir: dataDir}
}

// Download fetches every pending archive. Per-file failures are counted,
// logged and skipped; only context cancellation or an unusable data
// directory fail the batch.
func (s *DownloadService) Download(ctx context.Context) (*driving.DownloadSummary, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	datasetsDir := filepath.Join(s.dataDir, "datasets")
	if err := os.MkdirAll(datasetsDir, 0755); err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	summary := &driving.DownloadSummary{}
	counter := progress.NewCounter()
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		zips := rec.ZipFiles()
		if len(zips) == 0 {
			continue
		}

		recordNo, err := rec.RecordNumber()
		if err != nil {
			logger.Warn("skipping %s: %v", rec.ID, err)
			continue
		}

		// Only download when the record's directory is missing or empty,
		// so interrupted batches resume where they stopped.
		recordDir := filepath.Join(datasetsDir, recordNo)
		if populated, err := dirPopulated(recordDir); err != nil {
			return nil, fmt.Errorf("download: %w", err)
		} else if populated {
			summary.Skipped++
			continue
		}

		if err := os.MkdirAll(recordDir, 0755); err != nil {
			return nil, fmt.Errorf("download: %w", err)
		}

		for _, file := range zips {
			name, err := file.Basename()
			if err != nil {
				logger.Warn("skipping file of %s: %v", rec.ID, err)
				summary.Failed++
				continue
			}

			data, err := s.fetcher.Fetch(ctx, file)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logger.Warn("fetching %s: %v", file.URL, err)
				summary.Failed++
				continue
			}

			if err := os.WriteFile(filepath.Join(recordDir, name), data, 0644); err != nil {
				logger.Warn("writing %s: %v", name, err)
				summary.Failed++
				continue
			}
			summary.Downloaded++
			counter.Tick()
		}
	}
	counter.Done()

	return summary, nil
}

// dirPopulated reports whether dir exists and holds at least one entry.
func dirPopulated(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}
