package domain

// The output tables assembled at the end of a stats run. Shapes follow the
// clld-meta CLDF schema: one row per merged language, per dataset, per
// (dataset, language) pair and per repository deposit.

// LanguageRow is one merged language in the languages table.
type LanguageRow struct {
	ID           string
	Name         string
	Glottocode   string
	ISO639P3code string
	Macroarea    string
	Latitude     string
	Longitude    string
}

// DatasetRow is one CLDF dataset found inside a deposit's archives.
type DatasetRow struct {
	ID             string // "<record>-<n>"
	ContributionID string
	Module         string
	LanguageCount  int
	ValueCount     int
	GlottocodeCount int
}

// DatasetLanguageRow holds the per-language counters of one dataset.
type DatasetLanguageRow struct {
	ID             string // "<dataset>-<language>"
	LanguageID     string
	DatasetID      string
	ValueCount     int
	ParameterCount int
	FormCount      int
	EntryCount     int
	ExampleCount   int
}

// ContributionRow is one repository deposit in the contributions table.
type ContributionRow struct {
	ID          string
	Name        string
	Description string
	Version     string
	Author      string
	Contributor string
	Creator     string
	ZenodoID    string
	DOI         string
	DOIRelated  string
	GitHubLink  string
	ZenodoLink  string
	Date        string
	Communities string
	License     string
	Source      string
	Subject     string
	Type        string
}

// OutputTables bundles the four output tables of one stats run.
type OutputTables struct {
	Languages        []LanguageRow
	Datasets         []DatasetRow
	DatasetLanguages []DatasetLanguageRow
	Contributions    []ContributionRow
}
