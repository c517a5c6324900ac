package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driven/storage/memory"
	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// stubSource serves canned OAI listings per community.
type stubSource struct {
	byCommunity map[string][]domain.Record
}

func (s stubSource) ListCommunity(_ context.Context, community string) ([]domain.Record, error) {
	return s.byCommunity[community], nil
}

// stubEnricher fills in file details, failing for the configured ids.
type stubEnricher struct {
	calls int
	fail  map[string]bool
}

func (e *stubEnricher) Enrich(_ context.Context, rec domain.Record) (domain.Record, error) {
	e.calls++
	if e.fail[rec.ID] {
		return domain.Record{}, errors.New("boom")
	}
	rec.Version = "v1.0"
	rec.Files = []domain.FileLink{
		{URL: rec.ZenodoLink + "/files/data.zip", Type: "zip", Checksum: "md5:abc"},
	}
	rec.Enriched = true
	return rec, nil
}

func harvestRecord(n, recType, title string, communities ...string) domain.Record {
	return domain.Record{
		ID:          "oai:zenodo.org:" + n,
		ZenodoLink:  "https://zenodo.org/record/" + n,
		Title:       title,
		Type:        recType,
		Communities: communities,
	}
}

func TestHarvest_FiltersAndEnriches(t *testing.T) {
	dataset := harvestRecord("101", "dataset", "lexibank/abvd: ABVD", "user-lexibank", "user-other")
	poster := harvestRecord("102", "poster", "Some conference poster", "user-lexibank")
	catalogue := harvestRecord("103", "dataset", "Glottolog database 4.4", "user-clics")

	source := stubSource{byCommunity: map[string][]domain.Record{
		"user-lexibank": {dataset, poster},
		// The dataset shows up in a second community too.
		"user-clics": {dataset, catalogue},
	}}
	enricher := &stubEnricher{}
	store := memory.NewRecordStore()

	svc := NewHarvestService(source, enricher, store, []string{"user-lexibank", "user-clics"})
	summary, err := svc.Harvest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Seen)
	assert.Equal(t, 1, summary.Kept)
	assert.Equal(t, 1, summary.Enriched)
	assert.Equal(t, []string{"user-other"}, summary.NewCommunities)
	assert.Equal(t, 1, enricher.calls)

	stored, err := store.Get(context.Background(), dataset.ZenodoLink)
	require.NoError(t, err)
	assert.True(t, stored.Enriched)
	assert.Equal(t, "v1.0", stored.Version)
	require.Len(t, stored.Files, 1)
}

func TestHarvest_CarriesForwardEnrichedRecords(t *testing.T) {
	rec := harvestRecord("101", "dataset", "lexibank/abvd: ABVD", "user-lexibank")
	store := memory.NewRecordStore()

	already := rec
	already.Version = "v2.1"
	already.Files = []domain.FileLink{{URL: "https://x/data.zip", Type: "zip", Checksum: "md5:old"}}
	already.Enriched = true
	require.NoError(t, store.Upsert(context.Background(), []domain.Record{already}))

	source := stubSource{byCommunity: map[string][]domain.Record{"user-lexibank": {rec}}}
	enricher := &stubEnricher{}

	svc := NewHarvestService(source, enricher, store, []string{"user-lexibank"})
	summary, err := svc.Harvest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Enriched)
	assert.Equal(t, 0, enricher.calls)

	stored, err := store.Get(context.Background(), rec.ZenodoLink)
	require.NoError(t, err)
	assert.True(t, stored.Enriched)
	assert.Equal(t, "v2.1", stored.Version)
	require.Len(t, stored.Files, 1)
	assert.Equal(t, "md5:old", stored.Files[0].Checksum)
}

func TestHarvest_EnrichFailureKeepsRecordUnenriched(t *testing.T) {
	good := harvestRecord("101", "dataset", "lexibank/abvd: ABVD", "user-lexibank")
	bad := harvestRecord("102", "dataset", "dictionaria/daakaka: Daakaka", "user-lexibank")

	source := stubSource{byCommunity: map[string][]domain.Record{"user-lexibank": {good, bad}}}
	enricher := &stubEnricher{fail: map[string]bool{bad.ID: true}}
	store := memory.NewRecordStore()

	svc := NewHarvestService(source, enricher, store, []string{"user-lexibank"})
	summary, err := svc.Harvest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Kept)
	assert.Equal(t, 1, summary.Enriched)

	stored, err := store.Get(context.Background(), bad.ZenodoLink)
	require.NoError(t, err)
	assert.False(t, stored.Enriched)
}

func TestHarvest_DefaultCommunities(t *testing.T) {
	svc := NewHarvestService(stubSource{}, &stubEnricher{}, memory.NewRecordStore(), nil)

	assert.Equal(t, DefaultCommunities, svc.communities)
}
