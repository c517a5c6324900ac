package memory

import (
	"context"
	"sync"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	reports []domain.NoDataReport
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// SaveReports appends the reports of one run.
func (s *ReportStore) SaveReports(_ context.Context, reports []domain.NoDataReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, reports...)
	return nil
}

// ListReports returns the reports of one run, in insertion order.
// An empty runID returns all reports.
func (s *ReportStore) ListReports(_ context.Context, runID string) ([]domain.NoDataReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.NoDataReport
	for _, r := range s.reports {
		if runID == "" || r.RunID == runID {
			result = append(result, r)
		}
	}
	return result, nil
}
