package cldf

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"iter"
	"path"
	"strings"

	"golang.org/x/text/transform"
)

// Row maps semantic column names to cell values. Absent, empty and
// unrequested cells are omitted, never stored as empty strings.
type Row = map[string]string

// Reader reads the tables of one CLDF dataset inside an archive.
type Reader struct {
	archive *Archive
	doc     *Document
	base    string // directory of the metadata document within the archive
}

// NewReader creates a reader for doc, whose metadata document lives in the
// base directory of archive ("" for the archive root).
func NewReader(archive *Archive, doc *Document, base string) *Reader {
	return &Reader{archive: archive, doc: doc, base: base}
}

// Module returns the dataset's declared CLDF module name.
func (r *Reader) Module() string {
	return r.doc.Module()
}

// Document returns the parsed metadata document.
func (r *Reader) Document() *Document {
	return r.doc
}

// Rows streams the rows of the named table, projected onto the requested
// semantic columns. An undeclared table, a missing backing file and a
// nested archive without a matching inner entry all yield an empty
// sequence; only dialect-shape violations and read failures surface as an
// error on first yield. Nothing is read until the consumer pulls, and
// abandoning the sequence early closes the open archive handles.
func (r *Reader) Rows(tableName string, columns ...string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		table, ok := r.doc.TableByType(tableName)
		if !ok {
			return
		}

		dialect, err := resolveDialect(table.Dialect, r.doc.Dialect)
		if err != nil {
			yield(nil, fmt.Errorf("table %s: %w", tableName, err))
			return
		}

		entry, ok := locateTable(table, r.base, r.archive)
		if !ok {
			return
		}

		stream, ok, err := openTableStream(entry, table.URL)
		if err != nil {
			yield(nil, fmt.Errorf("table %s: %w", tableName, err))
			return
		}
		if !ok {
			return
		}
		defer stream.Close()

		proj := newProjection(table.Columns, columns)
		decoded := transform.NewReader(stream, dialect.encoding.NewDecoder())
		rr := newRecordReader(decoded, dialect)

		skipped := 0
		var header []string
		for {
			record, err := rr.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("table %s: %w", tableName, err))
				return
			}
			if skipped < dialect.skipRows {
				skipped++
				continue
			}
			if dialect.trimLeft || dialect.trimRight {
				trimCells(record, dialect.trimLeft, dialect.trimRight)
			}
			if dialect.skipBlankRows && allEmpty(record) {
				continue
			}
			if dialect.commentPrefix != "" && len(record) > 0 &&
				strings.HasPrefix(record[0], dialect.commentPrefix) {
				continue
			}
			if n := dialect.skipColumns; n > 0 {
				if n >= len(record) {
					record = nil
				} else {
					record = record[n:]
				}
			}
			if header == nil {
				header = proj.headerNames(record)
				continue
			}
			if !yield(proj.emit(header, record), nil) {
				return
			}
		}
	}
}

// locateTable resolves a table's declared URL to an archive entry. Leading
// "../" segments each move the base directory up one level. The index is
// probed for the path with a ".zip" suffix first (nested single-file
// archive), then for the path as-is. Neither match means the table has no
// backing file, which callers treat as zero rows.
func locateTable(table Table, base string, archive *Archive) (*zip.File, bool) {
	rel := table.URL
	for strings.HasPrefix(rel, "../") {
		rel = rel[len("../"):]
		base = parentDir(base)
	}
	name := rel
	if base != "" {
		name = base + "/" + rel
	}
	if f, ok := archive.Entry(name + ".zip"); ok {
		return f, true
	}
	return archive.Entry(name)
}

func parentDir(base string) string {
	if dir := path.Dir(base); dir != "." && dir != "/" {
		return dir
	}
	return ""
}

// openTableStream opens the byte stream backing a located entry. Entries
// named *.zip are nested single-file archives: the entry is buffered, the
// inner archive opened on top of it, and the first inner entry whose name
// ends with the declared URL's final component is selected. ok=false means
// no inner entry matched, which callers treat as zero rows.
func openTableStream(entry *zip.File, declaredURL string) (io.ReadCloser, bool, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, false, err
	}
	if !strings.HasSuffix(entry.Name, ".zip") {
		return rc, true, nil
	}
	defer rc.Close()

	buf, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, err
	}
	inner, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, false, err
	}

	want := path.Base(declaredURL)
	for _, f := range inner.File {
		if strings.HasSuffix(f.Name, want) {
			irc, err := f.Open()
			if err != nil {
				return nil, false, err
			}
			return irc, true, nil
		}
	}
	return nil, false, nil
}

func trimCells(record []string, left, right bool) {
	for i, cell := range record {
		if left {
			cell = strings.TrimLeft(cell, " \t")
		}
		if right {
			cell = strings.TrimRight(cell, " \t")
		}
		record[i] = cell
	}
}

func allEmpty(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
