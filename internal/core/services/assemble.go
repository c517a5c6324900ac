package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// assembleTables turns the per-dataset results into the four output tables.
// Language guesses resolve against the Glottolog index; with an empty index
// the run degrades to dataset-local identifiers.
func assembleTables(
	datasets []datasetResult,
	records []domain.Record,
	index *domain.LanguoidIndex,
) *domain.OutputTables {
	resolve := func(guess string) (string, bool) {
		if l, ok := index.Resolve(guess); ok {
			return l.ID, true
		}
		if index.Len() == 0 {
			// Degraded mode: the guess itself is the global id.
			return guess, true
		}
		return "", false
	}

	mapped := make([]*domain.MappedStats, len(datasets))
	for i, ds := range datasets {
		mapped[i] = ds.stats.MapLanguages(resolve)
	}

	tables := &domain.OutputTables{
		Languages:        languageTable(mapped, index),
		Contributions:    contributionTable(records),
		Datasets:         make([]domain.DatasetRow, 0, len(datasets)),
		DatasetLanguages: []domain.DatasetLanguageRow{},
	}

	// Dataset ids are <record>-<n>, numbered per record in result order.
	seq := make(domain.Sequencer)
	for i, ds := range datasets {
		stats := mapped[i]
		row := domain.DatasetRow{
			ID:              fmt.Sprintf("%s-%d", ds.recordID, seq.Next(ds.recordID)),
			ContributionID:  ds.recordID,
			Module:          stats.Module,
			LanguageCount:   stats.LangCount,
			ValueCount:      stats.ValueCount,
			GlottocodeCount: stats.GlottocodeCount,
		}
		tables.Datasets = append(tables.Datasets, row)

		for _, lid := range stats.Langs {
			tables.DatasetLanguages = append(tables.DatasetLanguages, domain.DatasetLanguageRow{
				ID:             row.ID + "-" + lid,
				LanguageID:     lid,
				DatasetID:      row.ID,
				ValueCount:     stats.LangValues[lid],
				ParameterCount: stats.LangParams[lid],
				FormCount:      stats.LangForms[lid],
				EntryCount:     stats.LangEntries[lid],
				ExampleCount:   stats.LangExamples[lid],
			})
		}
	}

	return tables
}

// languageTable builds one row per distinct global language id.
func languageTable(mapped []*domain.MappedStats, index *domain.LanguoidIndex) []domain.LanguageRow {
	seen := make(map[string]struct{})
	var ids []string
	for _, stats := range mapped {
		for _, lid := range stats.Langs {
			if _, dup := seen[lid]; dup {
				continue
			}
			seen[lid] = struct{}{}
			ids = append(ids, lid)
		}
	}
	sort.Strings(ids)

	rows := make([]domain.LanguageRow, len(ids))
	for i, lid := range ids {
		row := domain.LanguageRow{ID: lid}
		if l, ok := index.Resolve(lid); ok {
			row.Name = l.Name
			row.Glottocode = l.ID
			row.ISO639P3code = l.ISO639P3
			row.Macroarea = l.Macroarea
			row.Latitude = l.Latitude
			row.Longitude = l.Longitude
		}
		rows[i] = row
	}
	return rows
}

// contributionTable builds one row per catalogued deposit carrying zip
// archives, in catalog order.
func contributionTable(records []domain.Record) []domain.ContributionRow {
	var rows []domain.ContributionRow
	for _, rec := range records {
		if len(rec.ZipFiles()) == 0 {
			continue
		}
		recordNo, err := rec.RecordNumber()
		if err != nil {
			continue
		}
		rows = append(rows, domain.ContributionRow{
			ID:          recordNo,
			Name:        rec.Title,
			Description: rec.Description,
			Version:     rec.Version,
			Author:      joinList(rec.Authors),
			Contributor: joinList(rec.Contributors),
			Creator:     joinList(rec.Creators),
			ZenodoID:    rec.ID,
			DOI:         rec.DOI,
			DOIRelated:  joinList(rec.RelatedDOIs),
			GitHubLink:  rec.GitHubLink,
			ZenodoLink:  rec.ZenodoLink,
			Date:        rec.Date,
			Communities: joinList(rec.Communities),
			License:     rec.Rights,
			Source:      rec.Source,
			Subject:     joinList(rec.Subjects),
			Type:        rec.Type,
		})
	}
	return rows
}

// joinList flattens a list-valued metadata field the way the legacy
// catalog encoding did: values separated by a literal backslash-t.
func joinList(values []string) string {
	return strings.Join(values, `\t`)
}
