package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driven/storage/memory"
	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// stubFetcher serves canned file bytes keyed by URL.
type stubFetcher struct {
	data  map[string][]byte
	fail  map[string]bool
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, file domain.FileLink) ([]byte, error) {
	f.calls++
	if f.fail[file.URL] {
		return nil, domain.ErrGaveUp
	}
	return f.data[file.URL], nil
}

func catalogRecord(n string, files ...domain.FileLink) domain.Record {
	return domain.Record{
		ID:         "oai:zenodo.org:" + n,
		ZenodoLink: "https://zenodo.org/record/" + n,
		Title:      "lexibank/testbank: record " + n,
		Type:       "dataset",
		Files:      files,
		Enriched:   true,
	}
}

func TestDownload_FetchesZipArchives(t *testing.T) {
	dataDir := t.TempDir()
	store := memory.NewRecordStore()
	rec := catalogRecord("101", domain.FileLink{
		URL:      "https://zenodo.org/api/files/x/abvd.zip",
		Type:     "zip",
		Checksum: "md5:abc",
	})
	require.NoError(t, store.Upsert(context.Background(), []domain.Record{rec}))

	fetcher := &stubFetcher{data: map[string][]byte{
		"https://zenodo.org/api/files/x/abvd.zip": []byte("zip bytes"),
	}}

	svc := NewDownloadService(store, fetcher, dataDir)
	summary, err := svc.Download(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Downloaded)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	got, err := os.ReadFile(filepath.Join(dataDir, "datasets", "101", "abvd.zip"))
	require.NoError(t, err)
	assert.Equal(t, []byte("zip bytes"), got)
}

func TestDownload_SkipsPopulatedDirectories(t *testing.T) {
	dataDir := t.TempDir()
	recordDir := filepath.Join(dataDir, "datasets", "101")
	require.NoError(t, os.MkdirAll(recordDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(recordDir, "abvd.zip"), []byte("old"), 0644))

	store := memory.NewRecordStore()
	rec := catalogRecord("101", domain.FileLink{
		URL:  "https://zenodo.org/api/files/x/abvd.zip",
		Type: "zip",
	})
	require.NoError(t, store.Upsert(context.Background(), []domain.Record{rec}))

	fetcher := &stubFetcher{}
	svc := NewDownloadService(store, fetcher, dataDir)
	summary, err := svc.Download(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Downloaded)
	assert.Equal(t, 0, fetcher.calls)
}

func TestDownload_CountsFailuresAndContinues(t *testing.T) {
	dataDir := t.TempDir()
	store := memory.NewRecordStore()
	bad := catalogRecord("101", domain.FileLink{
		URL:  "https://zenodo.org/api/files/x/broken.zip",
		Type: "zip",
	})
	good := catalogRecord("102", domain.FileLink{
		URL:  "https://zenodo.org/api/files/x/fine.zip",
		Type: "zip",
	})
	require.NoError(t, store.Upsert(context.Background(), []domain.Record{bad, good}))

	fetcher := &stubFetcher{
		data: map[string][]byte{"https://zenodo.org/api/files/x/fine.zip": []byte("ok")},
		fail: map[string]bool{"https://zenodo.org/api/files/x/broken.zip": true},
	}

	svc := NewDownloadService(store, fetcher, dataDir)
	summary, err := svc.Download(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Downloaded)

	assert.NoFileExists(t, filepath.Join(dataDir, "datasets", "101", "broken.zip"))
	assert.FileExists(t, filepath.Join(dataDir, "datasets", "102", "fine.zip"))
}

func TestDownload_IgnoresRecordsWithoutArchives(t *testing.T) {
	dataDir := t.TempDir()
	store := memory.NewRecordStore()
	rec := catalogRecord("101", domain.FileLink{
		URL:  "https://zenodo.org/api/files/x/slides.pdf",
		Type: "pdf",
	})
	require.NoError(t, store.Upsert(context.Background(), []domain.Record{rec}))

	fetcher := &stubFetcher{}
	svc := NewDownloadService(store, fetcher, dataDir)
	summary, err := svc.Download(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Downloaded)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, fetcher.calls)
	assert.NoDirExists(t, filepath.Join(dataDir, "datasets", "101"))
}
