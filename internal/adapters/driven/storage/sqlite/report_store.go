package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
)

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// SaveReports appends the reports of one run.
func (s *reportStore) SaveReports(ctx context.Context, reports []domain.NoDataReport) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO no_data_reports (run_id, record_id, archive, reason, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range reports {
		createdAt := r.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, r.RunID, r.RecordID, r.Archive,
			string(r.Reason), createdAt); err != nil {
			return fmt.Errorf("saving report for %s: %w", r.Archive, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListReports returns the reports of one run, in insertion order.
// An empty runID returns all reports.
func (s *reportStore) ListReports(ctx context.Context, runID string) ([]domain.NoDataReport, error) {
	query := `
		SELECT run_id, record_id, archive, reason, created_at
		FROM no_data_reports
	`
	var args []any
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}
	query += " ORDER BY id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.NoDataReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.NoDataReport
		var reason string
		if err := rows.Scan(&r.RunID, &r.RecordID, &r.Archive, &reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		r.Reason = domain.NoDataReason(reason)
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}
