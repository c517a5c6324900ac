package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapLanguages(t *testing.T) {
	stats := &DatasetStats{
		Module:     "Wordlist",
		ValueCount: 7,
		Langs: map[string]string{
			"l1": "stan1295",
			"l2": "deu",
			"l3": "unknowable",
		},
		LangValues: map[string]int{"l1": 4, "l2": 2, "l3": 1},
		LangForms:  map[string]int{"l1": 3},
	}

	resolve := func(guess string) (string, bool) {
		switch guess {
		case "stan1295", "deu":
			return "stan1295", true
		default:
			return "", false
		}
	}

	mapped := stats.MapLanguages(resolve)

	assert.Equal(t, "Wordlist", mapped.Module)
	assert.Equal(t, 7, mapped.ValueCount)
	assert.Equal(t, 3, mapped.LangCount)
	assert.Equal(t, 2, mapped.GlottocodeCount)
	assert.Equal(t, []string{"stan1295"}, mapped.Langs)
	// l1 and l2 collapse onto the same glottocode; counts are summed,
	// the unresolved l3 is dropped.
	assert.Equal(t, map[string]int{"stan1295": 6}, mapped.LangValues)
	assert.Equal(t, map[string]int{"stan1295": 3}, mapped.LangForms)
}

func TestSequencer(t *testing.T) {
	seq := make(Sequencer)

	assert.Equal(t, 1, seq.Next("123"))
	assert.Equal(t, 2, seq.Next("123"))
	assert.Equal(t, 1, seq.Next("456"))
	assert.Equal(t, 3, seq.Next("123"))
}
