package cldf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var projectColumns = []Column{
	{Name: "my_id_col", PropertyURL: TermsNamespace + "#id"},
	{Name: "my_language_col", PropertyURL: TermsNamespace + "#languageReference"},
	{Name: "my_custom_col"},
}

func TestProjection_SemanticNameWins(t *testing.T) {
	p := newProjection(projectColumns, []string{"id"})
	names := p.headerNames([]string{"my_id_col", "my_language_col", "my_custom_col"})

	row := p.emit(names, []string{"a", "b", "c"})

	assert.Equal(t, Row{"id": "a"}, row)
}

func TestProjection_RawNameMatchesDirectly(t *testing.T) {
	p := newProjection(projectColumns, []string{"my_custom_col"})
	names := p.headerNames([]string{"my_id_col", "my_language_col", "my_custom_col"})

	row := p.emit(names, []string{"a", "b", "c"})

	assert.Equal(t, Row{"my_custom_col": "c"}, row)
}

func TestProjection_EmptyCellIsOmitted(t *testing.T) {
	p := newProjection(projectColumns, []string{"id", "languageReference"})
	names := p.headerNames([]string{"my_id_col", "my_language_col"})

	row := p.emit(names, []string{"a", ""})

	assert.Equal(t, Row{"id": "a"}, row)
	assert.NotContains(t, row, "languageReference")
}

func TestProjection_UnrequestedColumnsDropped(t *testing.T) {
	p := newProjection(projectColumns, []string{"id"})
	names := p.headerNames([]string{"my_id_col", "my_language_col", "my_custom_col"})

	row := p.emit(names, []string{"a", "b", "c"})

	assert.Len(t, row, 1)
}

func TestProjection_ColumnWithoutPropertyURLNotProjectable(t *testing.T) {
	// Requesting "my_custom_col" by a semantic name it does not carry
	// must not match.
	p := newProjection(projectColumns, []string{"comment"})
	names := p.headerNames([]string{"my_custom_col"})

	row := p.emit(names, []string{"c"})

	assert.Empty(t, row)
}

func TestProjection_ShortDataRow(t *testing.T) {
	p := newProjection(projectColumns, []string{"id", "languageReference"})
	names := p.headerNames([]string{"my_id_col", "my_language_col"})

	row := p.emit(names, []string{"a"})

	assert.Equal(t, Row{"id": "a"}, row)
}

func TestProjection_LongDataRowIgnoresExtraCells(t *testing.T) {
	p := newProjection(projectColumns, []string{"id"})
	names := p.headerNames([]string{"my_id_col"})

	row := p.emit(names, []string{"a", "stray"})

	assert.Equal(t, Row{"id": "a"}, row)
}
