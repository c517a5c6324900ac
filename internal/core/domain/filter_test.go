package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordFilter_AcceptsDatasets(t *testing.T) {
	f := DefaultRecordFilter()

	_, excluded := f.Exclude(Record{
		Type:  "dataset",
		Title: "lexibank/abvd: Austronesian Basic Vocabulary Database",
	})

	assert.False(t, excluded)
}

func TestRecordFilter_ExcludesBlacklistedTypes(t *testing.T) {
	f := DefaultRecordFilter()

	reason, excluded := f.Exclude(Record{Type: "poster", Title: "Some poster"})

	assert.True(t, excluded)
	assert.Contains(t, reason, "poster")
}

func TestRecordFilter_ExcludesToolingTitles(t *testing.T) {
	f := DefaultRecordFilter()

	tests := []string{
		"Glottolog database 4.4",
		"CLLD Concepticon 2.5.0",
		"lingpy/lingpy: LingPy 2.6.9",
		"glottolog/glottolog: Glottolog database 4.5",
		"cldf-clts/clts: CLTS 2.2.0",
		"concepticon/concepticon-data: Concepticon 2.5",
	}
	for _, title := range tests {
		_, excluded := f.Exclude(Record{Type: "dataset", Title: title})
		assert.True(t, excluded, title)
	}
}
