package zenodo

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.HarvestSource = (*Client)(nil)

// OAI-PMH response shapes, Dublin Core flavour. Only the fields the
// harvester reads are declared.
type (
	oaiResponse struct {
		XMLName xml.Name `xml:"OAI-PMH"`
		Error   *oaiError `xml:"error"`
		List    struct {
			Records         []oaiRecord `xml:"record"`
			ResumptionToken string      `xml:"resumptionToken"`
		} `xml:"ListRecords"`
	}

	oaiError struct {
		Code    string `xml:"code,attr"`
		Message string `xml:",chardata"`
	}

	oaiRecord struct {
		Header struct {
			Status     string   `xml:"status,attr"`
			Identifier string   `xml:"identifier"`
			SetSpecs   []string `xml:"setSpec"`
		} `xml:"header"`
		Metadata struct {
			DC oaiDublinCore `xml:"dc"`
		} `xml:"metadata"`
	}

	oaiDublinCore struct {
		Titles       []string `xml:"title"`
		Creators     []string `xml:"creator"`
		Contributors []string `xml:"contributor"`
		Dates        []string `xml:"date"`
		Descriptions []string `xml:"description"`
		Identifiers  []string `xml:"identifier"`
		Relations    []string `xml:"relation"`
		Rights       []string `xml:"rights"`
		Sources      []string `xml:"source"`
		Subjects     []string `xml:"subject"`
		Types        []string `xml:"type"`
	}
)

// ListCommunity returns every record in one community, following
// resumption tokens until the listing is exhausted. Records deleted on
// the server and records without a landing link are skipped.
func (c *Client) ListCommunity(ctx context.Context, community string) ([]domain.Record, error) {
	query := url.Values{
		"verb":           {"ListRecords"},
		"metadataPrefix": {"oai_dc"},
		"set":            {community},
	}

	var records []domain.Record
	for {
		body, err := c.get(ctx, c.oaiBaseURL+"?"+query.Encode())
		if err != nil {
			return nil, fmt.Errorf("list community %s: %w", community, err)
		}

		var resp oaiResponse
		if err := xml.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("list community %s: %w", community, err)
		}
		if resp.Error != nil {
			// An empty community is not an error worth failing a
			// harvest over.
			if resp.Error.Code == "noRecordsMatch" {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %s: %s", ErrOAIError, resp.Error.Code, resp.Error.Message)
		}

		for _, raw := range resp.List.Records {
			if raw.Header.Status == "deleted" {
				continue
			}
			rec, ok := buildRecord(raw)
			if !ok {
				logger.Debug("skipping record without landing link: %s", raw.Header.Identifier)
				continue
			}
			records = append(records, rec)
		}

		token := resp.List.ResumptionToken
		if token == "" {
			return records, nil
		}
		// Resumed requests carry only the verb and the token.
		query = url.Values{
			"verb":            {"ListRecords"},
			"resumptionToken": {token},
		}
	}
}
