package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
	"github.com/cldfstats/cldfmeta-cli/internal/progress"
)

// Ensure HarvestService implements the interface.
var _ driving.HarvestOrchestrator = (*HarvestService)(nil)

// DefaultCommunities are the Zenodo communities known to carry CLDF
// datasets. The config can extend or replace this set.
var DefaultCommunities = []string{
	"user-lexibank",
	"user-dictionaria",
	"user-calc",
	"user-cldf-datasets",
	"user-clics",
	"user-clld",
	"user-diachronica",
	"user-dighl",
	"user-digling",
	"user-tular",
}

// HarvestService collects record metadata from the repository, filters it
// and updates the local catalog.
type HarvestService struct {
	source      driven.HarvestSource
	enricher    driven.RecordEnricher
	records     driven.RecordStore
	filter      *domain.RecordFilter
	communities []string
}

// NewHarvestService creates a harvest service. An empty communities list
// falls back to DefaultCommunities.
func NewHarvestService(
	source driven.HarvestSource,
	enricher driven.RecordEnricher,
	records driven.RecordStore,
	communities []string,
) *HarvestService {
	if len(communities) == 0 {
		communities = DefaultCommunities
	}
	return &HarvestService{
		source:      source,
		enricher:    enricher,
		records:     records,
		filter:      domain.DefaultRecordFilter(),
		communities: communities,
	}
}

// Harvest runs one full harvest across the configured communities.
func (s *HarvestService) Harvest(ctx context.Context) (*driving.HarvestSummary, error) {
	summary := &driving.HarvestSummary{}

	// 1. List every configured community. Records published in several
	// communities show up once per listing; deduplicate by id.
	seen := make(map[string]domain.Record)
	var order []string
	for _, community := range s.communities {
		logger.Info("harvesting community %s", community)
		listed, err := s.source.ListCommunity(ctx, community)
		if err != nil {
			return nil, fmt.Errorf("harvest: %w", err)
		}
		summary.Seen += len(listed)
		for _, rec := range listed {
			if _, dup := seen[rec.ID]; !dup {
				order = append(order, rec.ID)
			}
			seen[rec.ID] = rec
		}
	}

	// 2. Filter out deposits that cannot be CLDF datasets.
	var kept []domain.Record
	for _, id := range order {
		rec := seen[id]
		if reason, drop := s.filter.Exclude(rec); drop {
			logger.Debug("dropping %s (%s)", rec.ID, reason)
			continue
		}
		kept = append(kept, rec)
	}
	summary.Kept = len(kept)

	// 3. Collect communities beyond the configured set for operator review.
	summary.NewCommunities = s.newCommunities(kept)

	// 4. Enrich: fetch file details for records the catalog has not seen
	// enriched yet; carry forward details of records it has.
	counter := progress.NewCounter()
	for i, rec := range kept {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		existing, err := s.records.Get(ctx, rec.ZenodoLink)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("harvest: %w", err)
		}
		if existing != nil && existing.Enriched {
			rec.Version = existing.Version
			rec.Files = existing.Files
			rec.Enriched = true
		} else {
			enriched, err := s.enricher.Enrich(ctx, rec)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				// The record stays in the catalog unenriched; the next
				// harvest tries again.
				logger.Warn("could not enrich %s: %v", rec.ID, err)
			} else {
				rec = enriched
				summary.Enriched++
			}
		}
		kept[i] = rec
		counter.Tick()
	}
	counter.Done()

	// 5. Update the catalog.
	if err := s.records.Upsert(ctx, kept); err != nil {
		return nil, fmt.Errorf("harvest: %w", err)
	}

	for _, c := range summary.NewCommunities {
		logger.Warn("record mentions unconfigured community %s", c)
	}
	return summary, nil
}

// newCommunities returns communities mentioned by records but absent from
// the configured search set, sorted.
func (s *HarvestService) newCommunities(records []domain.Record) []string {
	configured := make(map[string]struct{}, len(s.communities))
	for _, c := range s.communities {
		configured[c] = struct{}{}
	}

	found := make(map[string]struct{})
	for _, rec := range records {
		for _, c := range rec.Communities {
			if _, ok := configured[c]; !ok {
				found[c] = struct{}{}
			}
		}
	}

	var out []string
	for c := range found {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
