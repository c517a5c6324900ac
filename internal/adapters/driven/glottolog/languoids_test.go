package glottolog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `id,name,iso639P3code,macroarea,latitude,longitude
stan1295,German,deu,Eurasia,48.649,12.4676
daka1243,Daakaka,bpa,Papunesia,-16.27,168.01
book1242,Bookkeeping,,,,
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "languoids.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	src := NewSource(writeCatalog(t, catalogCSV))

	ix, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())

	l, ok := ix.Resolve("stan1295")
	require.True(t, ok)
	assert.Equal(t, "German", l.Name)
	assert.Equal(t, "deu", l.ISO639P3)

	// ISO codes resolve too.
	l, ok = ix.Resolve("bpa")
	require.True(t, ok)
	assert.Equal(t, "daka1243", l.ID)

	_, ok = ix.Resolve("nope")
	assert.False(t, ok)
}

func TestLoad_MissingFileYieldsEmptyIndex(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "does-not-exist.csv"))

	ix, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestLoad_EmptyPathYieldsEmptyIndex(t *testing.T) {
	src := NewSource("")

	ix, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestLoad_ColumnOrderIrrelevant(t *testing.T) {
	src := NewSource(writeCatalog(t, "name,id\nGerman,stan1295\n"))

	ix, err := src.Load(context.Background())

	require.NoError(t, err)
	l, ok := ix.Resolve("stan1295")
	require.True(t, ok)
	assert.Equal(t, "German", l.Name)
}

func TestLoad_MissingIDColumn(t *testing.T) {
	src := NewSource(writeCatalog(t, "name\nGerman\n"))

	_, err := src.Load(context.Background())

	assert.Error(t, err)
}
