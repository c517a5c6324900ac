package driving

import "context"

// HarvestOrchestrator collects record metadata from the repository,
// filters it and updates the local catalog.
type HarvestOrchestrator interface {
	// Harvest runs one full harvest across the configured communities.
	Harvest(ctx context.Context) (*HarvestSummary, error)
}

// HarvestSummary reports what one harvest run did.
type HarvestSummary struct {
	// Seen is the number of records returned by the OAI listings.
	Seen int

	// Kept is the number of records surviving filtering and deduplication.
	Kept int

	// Enriched is the number of records whose file details were fetched
	// during this run.
	Enriched int

	// NewCommunities lists communities mentioned by harvested records but
	// absent from the configured search set, for operator review.
	NewCommunities []string
}
