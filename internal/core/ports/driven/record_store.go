package driven

import (
	"context"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// RecordStore persists the harvested record catalog.
// Backed by SQLite, keyed by the record's Zenodo landing link.
type RecordStore interface {
	// Upsert stores or updates records by Zenodo link.
	Upsert(ctx context.Context, records []domain.Record) error

	// Get retrieves a record by its Zenodo link.
	// Returns domain.ErrNotFound if the record does not exist.
	Get(ctx context.Context, zenodoLink string) (*domain.Record, error)

	// List returns all records ordered by numeric record id.
	List(ctx context.Context) ([]domain.Record, error)
}
