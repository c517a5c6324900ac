package cldf

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// Dialect is the raw, partial CSV dialect description attached to a table
// or a document. Every field is optional; an absent field defers to the
// next layer in the resolution chain (table, then document, then the CSVW
// built-in defaults).
type Dialect struct {
	CommentPrefix    NullableString `json:"commentPrefix"`
	Delimiter        *string        `json:"delimiter"`
	DoubleQuote      *bool          `json:"doubleQuote"`
	Encoding         *string        `json:"encoding"`
	Header           *bool          `json:"header"`
	HeaderRowCount   *int           `json:"headerRowCount"`
	QuoteChar        NullableString `json:"quoteChar"`
	SkipBlankRows    *bool          `json:"skipBlankRows"`
	SkipColumns      *int           `json:"skipColumns"`
	SkipInitialSpace *bool          `json:"skipInitialSpace"`
	SkipRows         *int           `json:"skipRows"`
	Trim             *Trim          `json:"trim"`
}

// NullableString distinguishes an absent field from an explicit JSON null.
// CSVW uses null for quoteChar and commentPrefix to mean "none", which is
// not the same as "inherit from the next layer".
type NullableString struct {
	Set   bool
	Valid bool // false when the value was an explicit null
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Trim is the CSVW trim option: a boolean, or "start"/"end" for one-sided
// trimming.
type Trim struct {
	Left  bool
	Right bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Trim) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		t.Left, t.Right = x, x
	case string:
		switch x {
		case "true":
			t.Left, t.Right = true, true
		case "false":
			t.Left, t.Right = false, false
		case "start":
			t.Left = true
		case "end":
			t.Right = true
		default:
			return fmt.Errorf("%w: trim value %q", domain.ErrInvalidInput, x)
		}
	default:
		return fmt.Errorf("%w: trim must be a boolean or string", domain.ErrInvalidInput)
	}
	return nil
}

// resolvedDialect is the effective parsing configuration for one table after
// walking the override chain.
type resolvedDialect struct {
	commentPrefix   string // empty disables comment filtering
	delimiter       rune
	quote           rune // 0 disables quoting and escaping entirely
	doubleQuote     bool // doubled quote chars escape; otherwise backslash does
	backslashEscape bool
	encoding        encoding.Encoding
	skipBlankRows   bool
	skipColumns     int
	skipRows        int
	trimLeft        bool
	trimRight       bool
}

// dialectLayers queries the table and document dialects in precedence
// order; built-in defaults apply when no layer defines a field.
type dialectLayers []*Dialect

func (ls dialectLayers) str(get func(*Dialect) *string, fallback string) string {
	for _, d := range ls {
		if d == nil {
			continue
		}
		if v := get(d); v != nil {
			return *v
		}
	}
	return fallback
}

func (ls dialectLayers) boolean(get func(*Dialect) *bool, fallback bool) bool {
	for _, d := range ls {
		if d == nil {
			continue
		}
		if v := get(d); v != nil {
			return *v
		}
	}
	return fallback
}

func (ls dialectLayers) integer(get func(*Dialect) *int, fallback int) int {
	for _, d := range ls {
		if d == nil {
			continue
		}
		if v := get(d); v != nil {
			return *v
		}
	}
	return fallback
}

// nullable returns the first defined value; ok=false means the value was an
// explicit null ("none") at the winning layer.
func (ls dialectLayers) nullable(get func(*Dialect) NullableString, fallback string) (string, bool) {
	for _, d := range ls {
		if d == nil {
			continue
		}
		if v := get(d); v.Set {
			return v.Value, v.Valid
		}
	}
	return fallback, true
}

func (ls dialectLayers) trim(get func(*Dialect) *Trim) *Trim {
	for _, d := range ls {
		if d == nil {
			continue
		}
		if v := get(d); v != nil {
			return v
		}
	}
	return nil
}

// resolveDialect computes the effective dialect for one table. Each field
// resolves independently through table -> document -> defaults, so a partial
// override at one layer never discards sibling defaults.
func resolveDialect(table, doc *Dialect) (*resolvedDialect, error) {
	ls := dialectLayers{table, doc}

	if !ls.boolean(func(d *Dialect) *bool { return d.Header }, true) {
		return nil, fmt.Errorf("%w: headerless tables", domain.ErrUnsupportedDialect)
	}
	if n := ls.integer(func(d *Dialect) *int { return d.HeaderRowCount }, 1); n != 1 {
		return nil, fmt.Errorf("%w: headerRowCount %d", domain.ErrUnsupportedDialect, n)
	}

	enc, err := resolveEncoding(ls.str(func(d *Dialect) *string { return d.Encoding }, "utf-8"))
	if err != nil {
		return nil, err
	}

	r := &resolvedDialect{
		delimiter:     firstRune(ls.str(func(d *Dialect) *string { return d.Delimiter }, ","), ','),
		doubleQuote:   ls.boolean(func(d *Dialect) *bool { return d.DoubleQuote }, true),
		encoding:      enc,
		skipBlankRows: ls.boolean(func(d *Dialect) *bool { return d.SkipBlankRows }, false),
		skipColumns:   ls.integer(func(d *Dialect) *int { return d.SkipColumns }, 0),
		skipRows:      ls.integer(func(d *Dialect) *int { return d.SkipRows }, 0),
	}

	if prefix, ok := ls.nullable(func(d *Dialect) NullableString { return d.CommentPrefix }, "#"); ok {
		r.commentPrefix = prefix
	}

	if quote, ok := ls.nullable(func(d *Dialect) NullableString { return d.QuoteChar }, `"`); ok {
		r.quote = firstRune(quote, 0)
	}
	// No quote char means no escaping at all. With quoting, doubled quote
	// chars escape unless doubleQuote is off, in which case backslash does.
	r.backslashEscape = r.quote != 0 && !r.doubleQuote

	if t := ls.trim(func(d *Dialect) *Trim { return d.Trim }); t != nil {
		r.trimLeft, r.trimRight = t.Left, t.Right
	} else {
		r.trimLeft = ls.boolean(func(d *Dialect) *bool { return d.SkipInitialSpace }, false)
	}

	return r, nil
}

// resolveEncoding maps an encoding name to a decoder. utf-8 upgrades to a
// BOM-stripping decode so a BOM never leaks into the first header cell.
func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", domain.ErrUnsupportedDialect, name)
	}
	return enc, nil
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
