package driven

import (
	"context"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// HarvestSource lists repository records community by community.
// Implemented by the Zenodo OAI-PMH client.
type HarvestSource interface {
	// ListCommunity returns every record published in one community.
	// Paging (resumption tokens) is handled internally.
	ListCommunity(ctx context.Context, community string) ([]domain.Record, error)
}

// RecordEnricher fetches the per-record details the OAI listing omits:
// the deposit version and the attached file links with their checksums.
type RecordEnricher interface {
	// Enrich returns a copy of the record with Version, Files and the
	// Enriched flag filled in.
	Enrich(ctx context.Context, record domain.Record) (domain.Record, error)
}
