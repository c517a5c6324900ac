package domain

import "sort"

// DatasetStats holds the raw counters extracted from one CLDF dataset,
// keyed by the dataset's own language identifiers.
type DatasetStats struct {
	// Module is the CLDF module name declared by the dataset
	// (Wordlist, StructureDataset, Dictionary, ...).
	Module string

	// ValueCount is the number of ValueTable rows carrying a language
	// reference.
	ValueCount int

	// Langs maps each dataset-local language id seen in any counted table
	// to the dataset's best stable guess for it: the declared glottocode,
	// else the ISO 639-3 code, else the local id itself.
	Langs map[string]string

	// Per-language row counts by table kind.
	LangValues   map[string]int
	LangForms    map[string]int
	LangEntries  map[string]int
	LangExamples map[string]int

	// LangParams counts distinct parameters attested per language in the
	// ValueTable.
	LangParams map[string]int
}

// MappedStats is DatasetStats after resolving language guesses against the
// Glottolog index. Counters are re-keyed by the stable global identifier;
// several local languages collapsing onto one global id are summed.
type MappedStats struct {
	Module     string
	ValueCount int

	// LangCount is the number of dataset-local languages (pre-mapping).
	LangCount int

	// GlottocodeCount is the number of local languages that resolved to a
	// Glottolog entry.
	GlottocodeCount int

	// Langs lists the distinct global language ids, sorted.
	Langs []string

	LangValues   map[string]int
	LangForms    map[string]int
	LangEntries  map[string]int
	LangExamples map[string]int
	LangParams   map[string]int
}

// MapLanguages resolves the per-dataset stats into the global identifier
// space. resolve maps one guess to a stable global id; returning ok=false
// drops the language from the mapped counters (it still contributes to
// LangCount).
func (s *DatasetStats) MapLanguages(resolve func(guess string) (string, bool)) *MappedStats {
	langMap := make(map[string]string, len(s.Langs))
	for local, guess := range s.Langs {
		if global, ok := resolve(guess); ok {
			langMap[local] = global
		}
	}

	seen := make(map[string]struct{}, len(langMap))
	var langs []string
	for _, global := range langMap {
		if _, dup := seen[global]; dup {
			continue
		}
		seen[global] = struct{}{}
		langs = append(langs, global)
	}
	sort.Strings(langs)

	return &MappedStats{
		Module:          s.Module,
		ValueCount:      s.ValueCount,
		LangCount:       len(s.Langs),
		GlottocodeCount: len(langMap),
		Langs:           langs,
		LangValues:      remapCounts(s.LangValues, langMap),
		LangForms:       remapCounts(s.LangForms, langMap),
		LangEntries:     remapCounts(s.LangEntries, langMap),
		LangExamples:    remapCounts(s.LangExamples, langMap),
		LangParams:      remapCounts(s.LangParams, langMap),
	}
}

// remapCounts re-keys counts through langMap, summing collisions and
// dropping languages that did not resolve.
func remapCounts(counts map[string]int, langMap map[string]string) map[string]int {
	out := make(map[string]int, len(counts))
	for local, n := range counts {
		global, ok := langMap[local]
		if !ok {
			continue
		}
		out[global] += n
	}
	return out
}

// Sequencer hands out per-key sequence numbers, starting at 1. It replaces
// a shared mutable counter: assembly code threads one instance through
// explicitly.
type Sequencer map[string]int

// Next returns the next sequence number for key.
func (s Sequencer) Next(key string) int {
	s[key]++
	return s[key]
}
