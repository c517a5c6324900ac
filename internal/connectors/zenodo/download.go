package zenodo

import (
	"context"
	"fmt"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.FileFetcher = (*Client)(nil)

// Fetch downloads one attached file and validates it against the checksum
// the repository declared for it.
func (c *Client) Fetch(ctx context.Context, file domain.FileLink) ([]byte, error) {
	data, err := c.get(ctx, file.URL)
	if err != nil {
		return nil, err
	}
	if err := ValidateChecksum(file.Checksum, data); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", file.URL, err)
	}
	return data, nil
}
