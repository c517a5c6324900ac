// Package output writes the assembled stats tables as CSV files.
package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.OutputWriter = (*Writer)(nil)

// Writer writes the four output tables under <dir>/cldf/.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at the data directory.
func NewWriter(dataDir string) *Writer {
	return &Writer{dir: filepath.Join(dataDir, "cldf")}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteTables writes all four tables. A rerun overwrites previous output.
func (w *Writer) WriteTables(ctx context.Context, tables *domain.OutputTables) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		name   string
		header []string
		rows   func() [][]string
	}{
		{"languages.csv", languageHeader, func() [][]string { return languageRows(tables.Languages) }},
		{"datasets.csv", datasetHeader, func() [][]string { return datasetRows(tables.Datasets) }},
		{"dataset_languages.csv", datasetLanguageHeader, func() [][]string { return datasetLanguageRows(tables.DatasetLanguages) }},
		{"contributions.csv", contributionHeader, func() [][]string { return contributionRows(tables.Contributions) }},
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(w.dir, f.name), f.header, f.rows()); err != nil {
			return err
		}
		logger.Debug("wrote %s", filepath.Join(w.dir, f.name))
	}
	return nil
}

// Column orders follow the clld-meta CLDF schema.
var (
	languageHeader = []string{
		"ID", "Name", "Glottocode", "ISO639P3code", "Macroarea", "Latitude", "Longitude",
	}
	datasetHeader = []string{
		"ID", "Contribution_ID", "Module", "Language_Count", "Value_Count", "Glottocode_Count",
	}
	datasetLanguageHeader = []string{
		"ID", "Language_ID", "Dataset_ID", "Value_Count", "Parameter_Count",
		"Form_Count", "Entry_Count", "Example_Count",
	}
	contributionHeader = []string{
		"ID", "Name", "Description", "Version", "Author", "Contributor", "Creator",
		"Zenodo_ID", "DOI", "DOI_Related", "GitHub_Link", "Zenodo_Link", "Date",
		"Communities", "License", "Source", "Zenodo_Subject", "Zenodo_Type",
	}
)

func languageRows(rows []domain.LanguageRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.ID, r.Name, r.Glottocode, r.ISO639P3code, r.Macroarea, r.Latitude, r.Longitude}
	}
	return out
}

func datasetRows(rows []domain.DatasetRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.ID, r.ContributionID, r.Module,
			strconv.Itoa(r.LanguageCount), strconv.Itoa(r.ValueCount), strconv.Itoa(r.GlottocodeCount),
		}
	}
	return out
}

func datasetLanguageRows(rows []domain.DatasetLanguageRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.ID, r.LanguageID, r.DatasetID,
			strconv.Itoa(r.ValueCount), strconv.Itoa(r.ParameterCount),
			strconv.Itoa(r.FormCount), strconv.Itoa(r.EntryCount), strconv.Itoa(r.ExampleCount),
		}
	}
	return out
}

func contributionRows(rows []domain.ContributionRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.ID, r.Name, r.Description, r.Version, r.Author, r.Contributor, r.Creator,
			r.ZenodoID, r.DOI, r.DOIRelated, r.GitHubLink, r.ZenodoLink, r.Date,
			r.Communities, r.License, r.Source, r.Subject, r.Type,
		}
	}
	return out
}

// writeCSV writes one table atomically enough for reruns: the file is
// truncated and rewritten in place.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
