package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

// Ensure CleanupService implements the interface.
var _ driving.CleanupOrchestrator = (*CleanupService)(nil)

// CleanupService removes downloads that a curated CSV marks as not being
// CLDF data. The CSV has a header row and (record, filename, comment)
// columns; entries pointing at files that no longer exist are ignored.
type CleanupService struct {
	dataDir     string
	notCldfPath string
}

// NewCleanupService creates a cleanup service reading the curated list
// from notCldfPath.
func NewCleanupService(dataDir, notCldfPath string) *CleanupService {
	return &CleanupService{dataDir: dataDir, notCldfPath: notCldfPath}
}

// Plan returns the absolute paths of the files that would be removed.
func (s *CleanupService) Plan(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.notCldfPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no curated list at %s, nothing to clean", s.notCldfPath)
			return nil, nil
		}
		return nil, fmt.Errorf("cleanup: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	// Skip the header row.
	if _, err := cr.Read(); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("cleanup: reading %s: %w", s.notCldfPath, err)
	}

	datasetsDir := filepath.Join(s.dataDir, "datasets")
	var paths []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cleanup: reading %s: %w", s.notCldfPath, err)
		}
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			continue
		}
		path := filepath.Join(datasetsDir, row[0], row[1])
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// Remove deletes the given files and prunes dataset directories the
// deletion emptied.
func (s *CleanupService) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("rm %s", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
		dir := filepath.Dir(path)
		empty, err := dirEmpty(dir)
		if err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
		if empty {
			logger.Info("rmdir %s", dir)
			if err := os.Remove(dir); err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}
		}
	}
	return nil
}

// dirEmpty reports whether dir holds no entries.
func dirEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
