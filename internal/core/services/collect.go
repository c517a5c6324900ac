package services

import (
	"github.com/cldfstats/cldfmeta-cli/internal/cldf"
	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

// collectDatasetStats reads the counted tables of one CLDF dataset. Tables
// that are undeclared, unreadable or declare an unsupported dialect
// contribute nothing; partial reads keep the rows seen so far. A broken
// table never fails the dataset.
func collectDatasetStats(reader *cldf.Reader) *domain.DatasetStats {
	stats := &domain.DatasetStats{
		Module:       reader.Module(),
		Langs:        make(map[string]string),
		LangValues:   make(map[string]int),
		LangForms:    make(map[string]int),
		LangEntries:  make(map[string]int),
		LangExamples: make(map[string]int),
		LangParams:   make(map[string]int),
	}

	// Value rows carry the value count and the per-language distinct
	// parameter sets.
	paramsSeen := make(map[string]map[string]struct{})
	for row, err := range reader.Rows("ValueTable", "languageReference", "parameterReference") {
		if err != nil {
			logger.Debug("skipping rest of ValueTable: %v", err)
			break
		}
		lang := row["languageReference"]
		if lang == "" {
			continue
		}
		stats.ValueCount++
		stats.LangValues[lang]++
		if param := row["parameterReference"]; param != "" {
			set := paramsSeen[lang]
			if set == nil {
				set = make(map[string]struct{})
				paramsSeen[lang] = set
			}
			set[param] = struct{}{}
		}
	}
	for lang, set := range paramsSeen {
		stats.LangParams[lang] = len(set)
	}

	countLanguageRefs(reader, "FormTable", stats.LangForms)
	countLanguageRefs(reader, "EntryTable", stats.LangEntries)
	countLanguageRefs(reader, "ExampleTable", stats.LangExamples)

	// The LanguageTable maps local ids to the dataset's best stable guess:
	// glottocode, else ISO code, else the local id itself. Absent table or
	// absent row falls back to identity.
	guesses := make(map[string]string)
	for row, err := range reader.Rows("LanguageTable", "id", "glottocode", "iso639P3code") {
		if err != nil {
			logger.Debug("skipping rest of LanguageTable: %v", err)
			break
		}
		id := row["id"]
		if id == "" {
			continue
		}
		guess := row["glottocode"]
		if guess == "" {
			guess = row["iso639P3code"]
		}
		if guess == "" {
			guess = id
		}
		guesses[id] = guess
	}

	for _, counts := range []map[string]int{
		stats.LangValues, stats.LangForms, stats.LangEntries, stats.LangExamples,
	} {
		for lang := range counts {
			guess := guesses[lang]
			if guess == "" {
				guess = lang
			}
			stats.Langs[lang] = guess
		}
	}

	return stats
}

// countLanguageRefs tallies rows per language reference for one table.
func countLanguageRefs(reader *cldf.Reader, tableName string, counts map[string]int) {
	for row, err := range reader.Rows(tableName, "languageReference") {
		if err != nil {
			logger.Debug("skipping rest of %s: %v", tableName, err)
			return
		}
		if lang := row["languageReference"]; lang != "" {
			counts[lang]++
		}
	}
}
