package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

// Ensure IntakeService implements the interface.
var _ driving.IntakeWatcher = (*IntakeService)(nil)

// IntakeService watches the datasets directory for archives arriving or
// disappearing outside the downloader. fsnotify does not recurse, so the
// datasets directory and every record subdirectory are watched; record
// directories created while watching are picked up as they appear.
type IntakeService struct {
	dataDir string
}

// NewIntakeService creates an intake watcher over dataDir.
func NewIntakeService(dataDir string) *IntakeService {
	return &IntakeService{dataDir: dataDir}
}

// Watch streams events until ctx is cancelled. The returned channel is
// closed when watching stops.
func (s *IntakeService) Watch(ctx context.Context) (<-chan driving.IntakeEvent, error) {
	datasetsDir := filepath.Join(s.dataDir, "datasets")
	if err := os.MkdirAll(datasetsDir, 0755); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Add(datasetsDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}

	// Record directories that already exist get watched up front.
	entries, err := os.ReadDir(datasetsDir)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(datasetsDir, entry.Name())); err != nil {
				logger.Warn("cannot watch %s: %v", entry.Name(), err)
			}
		}
	}

	events := make(chan driving.IntakeEvent)
	go func() {
		defer close(events)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.handle(ctx, watcher, datasetsDir, ev, events)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()
	return events, nil
}

// handle translates one fsnotify event into an intake event and keeps the
// watch list in sync with new record directories.
func (s *IntakeService) handle(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	datasetsDir string,
	ev fsnotify.Event,
	events chan<- driving.IntakeEvent,
) {
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := watcher.Add(ev.Name); err != nil {
				logger.Warn("cannot watch %s: %v", ev.Name, err)
			}
			return
		}
	}

	if !strings.HasSuffix(strings.ToLower(ev.Name), ".zip") {
		return
	}

	var op string
	switch {
	case ev.Op.Has(fsnotify.Create):
		op = "created"
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		op = "removed"
	default:
		return
	}

	rel, err := filepath.Rel(datasetsDir, ev.Name)
	if err != nil {
		rel = ev.Name
	}

	select {
	case events <- driving.IntakeEvent{Path: filepath.ToSlash(rel), Op: op}:
	case <-ctx.Done():
	}
}
