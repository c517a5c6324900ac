package driving

import "context"

// StatsOrchestrator extracts cross-dataset statistics from the downloaded
// archives and writes the output tables.
type StatsOrchestrator interface {
	// Run processes every downloaded archive. Archives without CLDF data
	// become persisted no-data reports; they never fail the run.
	Run(ctx context.Context) (*StatsSummary, error)
}

// StatsSummary reports what one stats run did.
type StatsSummary struct {
	// RunID identifies this run in the report store.
	RunID string

	// Archives is the number of archive files scanned.
	Archives int

	// Datasets is the number of CLDF datasets found and counted.
	Datasets int

	// NoData is the number of archives that produced a no-data report.
	NoData int

	// OutputDir is where the output tables were written.
	OutputDir string
}
