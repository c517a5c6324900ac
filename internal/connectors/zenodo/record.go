package zenodo

import (
	"regexp"
	"strings"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// Classification patterns for the untyped Dublin Core identifier and
// relation fields.
var (
	httpLinkRe   = regexp.MustCompile(`(?i)^https?://`)
	doiRe        = regexp.MustCompile(`(?i)^(?:doi:)?10(?:\.[0-9]+)+/`)
	githubLinkRe = regexp.MustCompile(`(?i)^(?:url:)?(?:https?://)?github\.com`)
)

// buildRecord turns one OAI record into a catalog record. Dublin Core
// stuffs links, DOIs and OAI ids into the same repeated fields, so each
// value is classified by shape. ok=false means the record carries no
// landing link and cannot be catalogued.
func buildRecord(raw oaiRecord) (domain.Record, bool) {
	rec := domain.Record{
		Communities: raw.Header.SetSpecs,
	}

	dc := raw.Metadata.DC
	for _, v := range dc.Identifiers {
		switch {
		case httpLinkRe.MatchString(v):
			rec.ZenodoLink = domain.CleanValue(v)
		case strings.HasPrefix(v, "oai:zenodo.org:"):
			rec.ID = domain.CleanValue(v)
		case doiRe.MatchString(v):
			rec.DOI = domain.CleanValue(v)
		}
	}
	if rec.ZenodoLink == "" {
		return domain.Record{}, false
	}

	for _, v := range dc.Relations {
		switch {
		case doiRe.MatchString(v):
			rec.RelatedDOIs = append(rec.RelatedDOIs, domain.CleanValue(v))
		case githubLinkRe.MatchString(v):
			rec.GitHubLink = domain.CleanValue(v)
		}
	}

	rec.Title = cleanFirst(dc.Titles)
	rec.Date = cleanFirst(dc.Dates)
	rec.Description = cleanFirst(dc.Descriptions)
	rec.Rights = cleanJoin(dc.Rights)
	rec.Source = cleanFirst(dc.Sources)
	rec.Type = cleanFirst(dc.Types)
	rec.Creators = cleanAll(dc.Creators)
	rec.Contributors = cleanAll(dc.Contributors)
	rec.Subjects = cleanAll(dc.Subjects)

	return rec, true
}

func cleanFirst(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return domain.CleanValue(vs[0])
}

func cleanJoin(vs []string) string {
	return strings.Join(cleanAll(vs), "; ")
}

func cleanAll(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, domain.CleanValue(v))
	}
	return out
}
