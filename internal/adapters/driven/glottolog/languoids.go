// Package glottolog loads the Glottolog languoid catalog from a CSV export.
// The catalog is optional: a missing file yields an empty index and stats
// runs degrade to dataset-local language identifiers.
package glottolog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.LanguoidSource = (*Source)(nil)

// Source reads languoids from a CSV file with a header row. The loader
// matches columns by name, so extra columns and column order don't matter.
type Source struct {
	path string
}

// NewSource creates a languoid source reading from path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads the catalog. A missing file returns an empty index.
func (s *Source) Load(ctx context.Context) (*domain.LanguoidIndex, error) {
	if s.path == "" {
		return domain.NewLanguoidIndex(nil), nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("glottolog catalog %s not found, language merging degraded", s.path)
			return domain.NewLanguoidIndex(nil), nil
		}
		return nil, fmt.Errorf("opening glottolog catalog: %w", err)
	}
	defer f.Close()

	languoids, err := readLanguoids(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reading glottolog catalog %s: %w", s.path, err)
	}

	logger.Debug("loaded %d languoids from %s", len(languoids), s.path)
	return domain.NewLanguoidIndex(languoids), nil
}

// readLanguoids parses the CSV stream into languoid entries.
func readLanguoids(ctx context.Context, r io.Reader) ([]domain.Languoid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("%w: catalog has no id column", domain.ErrInvalidInput)
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var languoids []domain.Languoid
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id := field(row, "id")
		if id == "" {
			continue
		}
		languoids = append(languoids, domain.Languoid{
			ID:        id,
			Name:      field(row, "name"),
			ISO639P3:  field(row, "iso639P3code"),
			Macroarea: field(row, "macroarea"),
			Latitude:  field(row, "latitude"),
			Longitude: field(row, "longitude"),
		})
	}
	return languoids, nil
}
