package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// zenodoLinkRe extracts the numeric record id from a Zenodo landing URL.
var zenodoLinkRe = regexp.MustCompile(`^https://zenodo\.org/record/(\d+)$`)

// oaiIDRe extracts the numeric record id from an OAI identifier.
var oaiIDRe = regexp.MustCompile(`^oai:zenodo\.org:(\d+)$`)

// FileLink describes one downloadable file attached to a deposit.
type FileLink struct {
	// URL is the direct download link.
	URL string

	// Type is the file type as reported by the repository ("zip", "pdf", ...).
	Type string

	// Checksum is the declared checksum in "algorithm:hex" form
	// (e.g. "md5:6f5902ac237024bdd0c176cb93063dc4").
	Checksum string
}

// Record is one harvested deposit from the scholarly repository.
// List-valued fields keep the repetition the OAI metadata carries;
// presentation layers join them as needed.
type Record struct {
	// ID is the OAI identifier, e.g. "oai:zenodo.org:5121640".
	ID string

	// ZenodoLink is the landing page URL and the record's catalog key.
	ZenodoLink string

	Date        string
	Title       string
	Version     string
	Description string

	Authors      []string
	Contributors []string
	Creators     []string

	DOI         string
	RelatedDOIs []string
	GitHubLink  string

	Communities []string
	Rights      string
	Source      string
	Subjects    []string
	Type        string

	// Files is populated by the per-record enrichment step.
	Files []FileLink

	// Enriched marks that the file list has been fetched for this record.
	// Unenriched records carry metadata from the OAI listing only.
	Enriched bool
}

// RecordNumber returns the numeric repository id, derived from the landing
// link with the OAI identifier as fallback.
func (r Record) RecordNumber() (string, error) {
	if m := zenodoLinkRe.FindStringSubmatch(r.ZenodoLink); m != nil {
		return m[1], nil
	}
	if m := oaiIDRe.FindStringSubmatch(r.ID); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: zenodo link looks funny: %q", ErrInvalidInput, r.ZenodoLink)
}

// SortKey returns the numeric id used to order catalog listings.
// Records with unparseable ids sort first.
func (r Record) SortKey() int {
	m := oaiIDRe.FindStringSubmatch(r.ID)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ZipFiles returns the record's zip-typed file links, the only kind the
// downloader fetches.
func (r Record) ZipFiles() []FileLink {
	var zips []FileLink
	for _, f := range r.Files {
		if f.Type == "zip" {
			zips = append(zips, f)
		}
	}
	return zips
}

// basenameRe extracts the final path component of a download link,
// stripping any query string or fragment.
var basenameRe = regexp.MustCompile(`/([^/]+?)(?:\?[^/]*)?(?:#[^/]*)?$`)

// Basename derives the local file name for a downloaded file from its
// link, appending the type suffix when the link does not carry it.
func (f FileLink) Basename() (string, error) {
	m := basenameRe.FindStringSubmatch(f.URL)
	if m == nil {
		return "", fmt.Errorf("%w: file link has no basename: %q", ErrInvalidInput, f.URL)
	}
	name := m[1]
	if f.Type != "" && !strings.HasSuffix(name, "."+f.Type) {
		name += "." + f.Type
	}
	return name, nil
}

// CleanValue normalizes one harvested metadata value: surrounding whitespace
// is dropped and characters that would break the flat catalog encoding are
// escaped the way the legacy CSV export did.
func CleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "\n", `\n`)
	v = strings.ReplaceAll(v, "\t", " ")
	return v
}
