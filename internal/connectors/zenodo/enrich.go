package zenodo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.RecordEnricher = (*Client)(nil)

// REST record response shape. Only the fields the enrichment reads.
type restRecord struct {
	Metadata struct {
		Version string `json:"version"`
	} `json:"metadata"`
	Files []struct {
		Links struct {
			Self string `json:"self"`
		} `json:"links"`
		Type     string `json:"type"`
		Checksum string `json:"checksum"`
	} `json:"files"`
}

// Enrich fetches the record's REST representation and fills in the
// version and file links the OAI listing does not carry.
func (c *Client) Enrich(ctx context.Context, record domain.Record) (domain.Record, error) {
	recordNo, err := record.RecordNumber()
	if err != nil {
		return record, err
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/records/%s", c.apiBaseURL, recordNo))
	if err != nil {
		return record, fmt.Errorf("enrich record %s: %w", recordNo, err)
	}

	var rest restRecord
	if err := json.Unmarshal(body, &rest); err != nil {
		return record, fmt.Errorf("enrich record %s: %w", recordNo, err)
	}

	record.Version = rest.Metadata.Version
	record.Files = record.Files[:0]
	for _, f := range rest.Files {
		record.Files = append(record.Files, domain.FileLink{
			URL:      f.Links.Self,
			Type:     f.Type,
			Checksum: f.Checksum,
		})
	}
	record.Enriched = true
	return record, nil
}
