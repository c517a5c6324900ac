// Package memory provides in-memory implementations of the storage ports,
// used by service tests and available as a throwaway backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.Record),
	}
}

// Upsert stores or updates records by Zenodo link.
func (s *RecordStore) Upsert(_ context.Context, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if rec.ZenodoLink == "" {
			return fmt.Errorf("%w: record %q has no zenodo link", domain.ErrInvalidInput, rec.ID)
		}
		s.records[rec.ZenodoLink] = rec
	}
	return nil
}

// Get retrieves a record by its Zenodo link.
func (s *RecordStore) Get(_ context.Context, zenodoLink string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[zenodoLink]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns all records ordered by numeric record id.
func (s *RecordStore) List(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if a, b := result[i].SortKey(), result[j].SortKey(); a != b {
			return a < b
		}
		return result[i].ZenodoLink < result[j].ZenodoLink
	})
	return result, nil
}
