package domain

import "time"

// NoDataReason codes why an archive produced no statistics.
type NoDataReason string

const (
	// ReasonUnreadableArchive marks archives that could not be opened as zip.
	ReasonUnreadableArchive NoDataReason = "unreadable-archive"

	// ReasonNoJSONEntries marks archives containing no candidate JSON entry.
	ReasonNoJSONEntries NoDataReason = "no-json-entries"

	// ReasonNoCLDFDocuments marks archives whose JSON entries were all
	// something other than CLDF metadata documents.
	ReasonNoCLDFDocuments NoDataReason = "no-cldf-documents"
)

// NoDataReport is the structured "no cldf data found" condition for one
// archive. Reports accumulate across a batch for operator triage; they are
// never fatal.
type NoDataReport struct {
	// RunID groups reports produced by one stats run.
	RunID string

	// RecordID is the repository record the archive was downloaded for.
	RecordID string

	// Archive is the archive path relative to the datasets directory.
	Archive string

	Reason NoDataReason

	CreatedAt time.Time
}
