package cldf

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TermsNamespace is the root of the CLDF ontology. Semantic table and
// column identifiers are formed by appending "#" and a local name.
const TermsNamespace = "http://cldf.clld.org/v1.0/terms.rdf"

// Document is a parsed CLDF metadata document describing one dataset.
type Document struct {
	// ConformsTo is the profile URL identifying the dataset's module
	// (e.g. ".../terms.rdf#Wordlist").
	ConformsTo string

	// Dialect holds document-wide CSV dialect overrides, if any.
	Dialect *Dialect

	Tables []Table
}

// Table describes one table declared in a metadata document.
type Table struct {
	// ConformsTo is the semantic table-type URL (e.g. ".../terms.rdf#ValueTable").
	ConformsTo string

	// URL is the data file path relative to the metadata document.
	// It may climb directory levels with "../" segments.
	URL string

	// Dialect holds table-level dialect overrides, if any.
	Dialect *Dialect

	Columns []Column
}

// Column describes one declared column. A column without a PropertyURL can
// never be projected by semantic name; it only matches when its raw name is
// requested directly.
type Column struct {
	Name        string
	PropertyURL string
}

// JSON shapes as they appear in the metadata files.
type (
	jsonDocument struct {
		ConformsTo string      `json:"dc:conformsTo"`
		Dialect    *Dialect    `json:"dialect"`
		Tables     []jsonTable `json:"tables"`
	}

	jsonTable struct {
		ConformsTo  string   `json:"dc:conformsTo"`
		URL         string   `json:"url"`
		Dialect     *Dialect `json:"dialect"`
		TableSchema struct {
			Columns []jsonColumn `json:"columns"`
		} `json:"tableSchema"`
	}

	jsonColumn struct {
		Name        string `json:"name"`
		PropertyURL string `json:"propertyUrl"`
	}
)

// ParseDocument parses b as a CLDF metadata document. It returns ok=false
// for anything that is not one: non-JSON bytes, JSON without the CLDF
// profile, or malformed input. Archives routinely contain unrelated JSON
// files, so "not a document" is an expected outcome, never an error.
func ParseDocument(b []byte) (*Document, bool) {
	head := b
	if len(head) > 10 {
		head = head[:10]
	}
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) == 0 || head[0] != '{' {
		return nil, false
	}

	var raw jsonDocument
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, false
	}
	if !strings.HasPrefix(raw.ConformsTo, TermsNamespace) {
		return nil, false
	}

	doc := &Document{
		ConformsTo: raw.ConformsTo,
		Dialect:    raw.Dialect,
		Tables:     make([]Table, 0, len(raw.Tables)),
	}
	for _, t := range raw.Tables {
		table := Table{
			ConformsTo: t.ConformsTo,
			URL:        t.URL,
			Dialect:    t.Dialect,
			Columns:    make([]Column, 0, len(t.TableSchema.Columns)),
		}
		for _, c := range t.TableSchema.Columns {
			table.Columns = append(table.Columns, Column{
				Name:        c.Name,
				PropertyURL: c.PropertyURL,
			})
		}
		doc.Tables = append(doc.Tables, table)
	}
	return doc, true
}

// Module returns the dataset's module name, the part of the profile URL
// after the final "#" (e.g. "Wordlist").
func (d *Document) Module() string {
	parts := strings.Split(d.ConformsTo, "#")
	return parts[len(parts)-1]
}

// TableByType returns the table declared with the given semantic name
// (e.g. "ValueTable"). Tables are optional per dataset, so a missing
// table is an expected outcome.
func (d *Document) TableByType(name string) (Table, bool) {
	url := TermsNamespace + "#" + name
	for _, t := range d.Tables {
		if t.ConformsTo == url {
			return t, true
		}
	}
	return Table{}, false
}
