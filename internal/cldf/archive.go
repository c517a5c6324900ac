package cldf

import (
	"archive/zip"
	"io"
	"path"
	"regexp"
	"strings"
)

// skippedComponents matches path components whose subtrees never hold
// metadata documents (raw source dumps and test fixtures).
var skippedComponents = regexp.MustCompile(`\A(?:raw|tests?)\z`)

// Archive wraps an open zip archive with a path index built once at open
// time. The index is read-only for the lifetime of the archive.
type Archive struct {
	zr    *zip.Reader
	index map[string]*zip.File
}

// NewArchive indexes the entries of an open zip reader.
func NewArchive(zr *zip.Reader) *Archive {
	index := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		index[path.Clean(f.Name)] = f
	}
	return &Archive{zr: zr, index: index}
}

// Entry looks up an entry by its normalized in-archive path.
func (a *Archive) Entry(name string) (*zip.File, bool) {
	f, ok := a.index[path.Clean(name)]
	return f, ok
}

// CandidateDocuments returns the archive entries that could be CLDF
// metadata documents: JSON-suffixed files outside raw/ and test
// directories, in archive listing order.
func (a *Archive) CandidateDocuments() []*zip.File {
	var candidates []*zip.File
	for _, f := range a.zr.File {
		if !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		if pathContainsRe(path.Dir(f.Name), skippedComponents) {
			continue
		}
		candidates = append(candidates, f)
	}
	return candidates
}

// OpenDocument reads entry and parses it as a CLDF metadata document,
// returning a Reader rooted at the entry's directory. ok=false means the
// entry is not a metadata document (or could not be read), which callers
// silently skip.
func (a *Archive) OpenDocument(entry *zip.File) (*Reader, bool) {
	rc, err := entry.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, false
	}
	doc, ok := ParseDocument(b)
	if !ok {
		return nil, false
	}

	base := path.Dir(entry.Name)
	if base == "." {
		base = ""
	}
	return NewReader(a, doc, base), true
}

// PathContains reports whether any component of p fully matches pattern,
// walking from the last component up.
func PathContains(p, pattern string) (bool, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return false, err
	}
	return pathContainsRe(p, re), nil
}

func pathContainsRe(p string, re *regexp.Regexp) bool {
	p = path.Clean(p)
	for {
		parent, name := path.Dir(p), path.Base(p)
		if name != "" && name != "/" && name != "." && re.MatchString(name) {
			return true
		}
		if parent == p {
			return false
		}
		p = parent
	}
}
