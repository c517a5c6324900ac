package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cldfstats/cldfmeta-cli/internal/cldf"
	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
	"github.com/cldfstats/cldfmeta-cli/internal/progress"
)

// Ensure StatsService implements the interface.
var _ driving.StatsOrchestrator = (*StatsService)(nil)

// StatsService scans the downloaded archives, extracts per-dataset
// statistics and writes the output tables.
type StatsService struct {
	records   driven.RecordStore
	reports   driven.ReportStore
	languoids driven.LanguoidSource
	output    driven.OutputWriter
	dataDir   string
	outputDir string
	workers   int
}

// NewStatsService creates a stats service. workers <= 0 uses NumCPU.
func NewStatsService(
	records driven.RecordStore,
	reports driven.ReportStore,
	languoids driven.LanguoidSource,
	output driven.OutputWriter,
	dataDir string,
	outputDir string,
	workers int,
) *StatsService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &StatsService{
		records:   records,
		reports:   reports,
		languoids: languoids,
		output:    output,
		dataDir:   dataDir,
		outputDir: outputDir,
		workers:   workers,
	}
}

// archiveTask is one downloaded archive to scan.
type archiveTask struct {
	recordID string // record number, the datasets/ subdirectory name
	relPath  string // archive path relative to datasets/
	absPath  string
}

// datasetResult is one CLDF dataset found inside an archive.
type datasetResult struct {
	recordID string
	archive  string
	docPath  string // metadata document path inside the archive
	stats    *domain.DatasetStats
}

// archiveResult is what scanning one archive produced: datasets, or a
// no-data report, never both.
type archiveResult struct {
	datasets []datasetResult
	report   *domain.NoDataReport
}

// Run processes every downloaded archive. Archives without CLDF data
// become persisted no-data reports; they never fail the run.
func (s *StatsService) Run(ctx context.Context) (*driving.StatsSummary, error) {
	runID := uuid.NewString()

	tasks, err := s.findArchives()
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	logger.Info("scanning %d archives with %d workers", len(tasks), s.workers)

	index, err := s.languoids.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	// One worker per archive slot; results land in a fixed slice so no
	// collector state is shared between goroutines.
	results := make([]archiveResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scanArchive(task)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	// Merge results. Task order is deterministic (sorted walk), and
	// documents within an archive keep listing order.
	var datasets []datasetResult
	var noData []domain.NoDataReport
	counter := progress.NewCounter()
	for _, res := range results {
		datasets = append(datasets, res.datasets...)
		if res.report != nil {
			rep := *res.report
			rep.RunID = runID
			rep.CreatedAt = time.Now().UTC()
			noData = append(noData, rep)
		}
		counter.Tick()
	}
	counter.Done()

	if err := s.reports.SaveReports(ctx, noData); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	for _, rep := range noData {
		logger.Warn("no cldf data in %s (%s)", rep.Archive, rep.Reason)
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	tables := assembleTables(datasets, records, index)
	if err := s.output.WriteTables(ctx, tables); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	return &driving.StatsSummary{
		RunID:     runID,
		Archives:  len(tasks),
		Datasets:  len(datasets),
		NoData:    len(noData),
		OutputDir: s.outputDir,
	}, nil
}

// findArchives walks <dataDir>/datasets for zip archives, sorted by path.
// The first path component below datasets/ is the record number.
func (s *StatsService) findArchives() ([]archiveTask, error) {
	datasetsDir := filepath.Join(s.dataDir, "datasets")

	var tasks []archiveTask
	err := filepath.WalkDir(datasetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == datasetsDir {
				// No downloads yet is an empty run, not a failure.
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".zip") {
			return nil
		}
		rel, err := filepath.Rel(datasetsDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		recordID, _, _ := strings.Cut(rel, "/")
		tasks = append(tasks, archiveTask{recordID: recordID, relPath: rel, absPath: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].relPath < tasks[j].relPath })
	return tasks, nil
}

// scanArchive opens one archive and collects stats for every CLDF metadata
// document inside it.
func scanArchive(task archiveTask) archiveResult {
	report := func(reason domain.NoDataReason) archiveResult {
		return archiveResult{report: &domain.NoDataReport{
			RecordID: task.recordID,
			Archive:  task.relPath,
			Reason:   reason,
		}}
	}

	zr, err := zip.OpenReader(task.absPath)
	if err != nil {
		logger.Debug("cannot open %s: %v", task.relPath, err)
		return report(domain.ReasonUnreadableArchive)
	}
	defer zr.Close()

	archive := cldf.NewArchive(&zr.Reader)
	candidates := archive.CandidateDocuments()
	if len(candidates) == 0 {
		return report(domain.ReasonNoJSONEntries)
	}

	var datasets []datasetResult
	for _, entry := range candidates {
		reader, ok := archive.OpenDocument(entry)
		if !ok {
			// Some other JSON file; CLDF archives carry plenty.
			continue
		}
		datasets = append(datasets, datasetResult{
			recordID: task.recordID,
			archive:  task.relPath,
			docPath:  entry.Name,
			stats:    collectDatasetStats(reader),
		})
	}
	if len(datasets) == 0 {
		return report(domain.ReasonNoCLDFDocuments)
	}
	return archiveResult{datasets: datasets}
}
