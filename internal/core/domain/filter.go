package domain

import (
	"regexp"
	"strings"
)

// defaultTypeBlacklist lists deposit types that are never CLDF datasets.
var defaultTypeBlacklist = []string{
	"lesson",
	"poster",
	"presentation",
	"publication-annotationcollection",
	"publication-article",
	"publication-book",
	"publication-conferencepaper",
	"publication-other",
	"publication-proposal",
	"publication-report",
	"publication-softwaredocumentation",
	"video",
}

// titleBlacklistPatterns match titles of catalogues and tooling releases
// that live in the same communities as the datasets but carry no data.
var titleBlacklistPatterns = []string{
	`^Glottolog database`,
	`^Cross-Linguistic Transcription Systems: Final Version`,
	`^CLTS\. Cross-Linguistic Transcription Systems`,
	`^Cross-Linguistic Transcription Systems$`,
	`^CLLD Concepticon`,
	`^(?:clld/)?(?:clld:)?\s*clld (?:- )?(?:a )?toolkit for`,
	`^PYCLTS\.`,
	`^cldf/cldf:`,
	`^cldf: Baseline for first experiments`,
	`^clics/pyclics:`,
	`^clics/pyclics-clustering:`,
	`^clld/clics: CLLD app`,
	`^CL Toolkit\. A Python Library`,
	`^DAFSA: a Python Library`,
	`^edictor: EDICTOR version`,
	`^EDICTOR\. A web-based interactive tool`,
	`^glottobank/cldf:`,
	`^LingPy[-:. ]`,
	`^lingpy/lingpy:`,
	`^lingpy/lingpy-tutorial: LingPy Tutorial`,
	`^LingRex[:.] Linguistic Reconstruction`,
	`^lingpy/lingrex:`,
	`^paceofchange:`,
	`^PoePy\. A Python library`,
	`^PyBor: A Python library`,
}

var defaultTitleBlacklist = regexp.MustCompile(strings.Join(titleBlacklistPatterns, "|"))

// catalogueTitleRes match versioned releases of the big reference catalogues
// regardless of the owning organisation prefix.
var catalogueTitleRes = []*regexp.Regexp{
	regexp.MustCompile(`^(?:\S*?)glottolog(?:\S*?):`),
	regexp.MustCompile(`^(?:\S*?)clts(?:\S*?):`),
	regexp.MustCompile(`^(?:\S*?)concepticon(?:\S*?):`),
}

// RecordFilter decides which harvested records can possibly be CLDF datasets.
//
//  1. Non-data entries (posters, books, videos, ...) are excluded by type.
//  2. Releases of the CLDF catalogues and tooling are excluded by title.
type RecordFilter struct {
	types  map[string]struct{}
	titles *regexp.Regexp
}

// DefaultRecordFilter returns the filter with the built-in blacklists.
func DefaultRecordFilter() *RecordFilter {
	types := make(map[string]struct{}, len(defaultTypeBlacklist))
	for _, t := range defaultTypeBlacklist {
		types[t] = struct{}{}
	}
	return &RecordFilter{types: types, titles: defaultTitleBlacklist}
}

// Exclude reports whether the record should be dropped, and why.
func (f *RecordFilter) Exclude(r Record) (string, bool) {
	if _, ok := f.types[r.Type]; ok {
		return "blacklisted type: " + r.Type, true
	}
	if f.titles != nil && f.titles.MatchString(r.Title) {
		return "blacklisted title", true
	}
	trimmed := strings.TrimSpace(r.Title)
	for _, re := range catalogueTitleRes {
		if re.MatchString(trimmed) {
			return "catalogue release", true
		}
	}
	return "", false
}
