package driven

import (
	"context"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// ReportStore persists the "no cldf data found" reports a stats run
// accumulates, so operators can triage archives that yielded nothing.
type ReportStore interface {
	// SaveReports appends the reports of one run.
	SaveReports(ctx context.Context, reports []domain.NoDataReport) error

	// ListReports returns the reports of one run, in insertion order.
	// An empty runID returns all reports.
	ListReports(ctx context.Context, runID string) ([]domain.NoDataReport, error)
}
