package cldf

import (
	"bufio"
	"io"
	"strings"
)

// recordReader parses raw CSV records according to a resolved dialect.
// encoding/csv hard-codes double-quote semantics and cannot express the
// quoteChar=none and backslash-escape dialects the datasets use, so the
// field scanning is done here.
type recordReader struct {
	r *bufio.Reader
	d *resolvedDialect
}

func newRecordReader(r io.Reader, d *resolvedDialect) *recordReader {
	return &recordReader{r: bufio.NewReader(r), d: d}
}

// Read returns the next raw record. Quoted fields may span lines when
// quoting is enabled. Returns io.EOF after the last record.
func (rr *recordReader) Read() ([]string, error) {
	var (
		record   []string
		field    strings.Builder
		inQuotes bool
		started  bool
	)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
	}

	for {
		ch, _, err := rr.r.ReadRune()
		if err == io.EOF {
			if !started {
				return nil, io.EOF
			}
			endField()
			return record, nil
		}
		if err != nil {
			return nil, err
		}
		started = true

		if inQuotes {
			switch {
			case rr.d.backslashEscape && ch == '\\':
				if next, _, err := rr.r.ReadRune(); err == nil {
					field.WriteRune(next)
				} else {
					field.WriteRune(ch)
				}
			case ch == rr.d.quote:
				if rr.d.doubleQuote {
					next, _, err := rr.r.ReadRune()
					if err == nil && next == rr.d.quote {
						field.WriteRune(ch)
						continue
					}
					if err == nil {
						_ = rr.r.UnreadRune()
					}
				}
				inQuotes = false
			default:
				field.WriteRune(ch)
			}
			continue
		}

		switch {
		case ch == rr.d.delimiter:
			endField()
		case ch == '\n' || ch == '\r':
			if ch == '\r' {
				// swallow the \n of a \r\n pair
				if next, _, err := rr.r.ReadRune(); err == nil && next != '\n' {
					_ = rr.r.UnreadRune()
				}
			}
			endField()
			return record, nil
		case rr.d.quote != 0 && ch == rr.d.quote && field.Len() == 0:
			inQuotes = true
		case rr.d.backslashEscape && ch == '\\':
			if next, _, err := rr.r.ReadRune(); err == nil {
				field.WriteRune(next)
			} else {
				field.WriteRune(ch)
			}
		default:
			field.WriteRune(ch)
		}
	}
}
