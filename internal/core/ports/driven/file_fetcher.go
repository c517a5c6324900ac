package driven

import (
	"context"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// FileFetcher downloads one attached file and validates it against the
// checksum the repository declared. Implementations handle rate limiting
// and transient retries; a returned error means the file is undownloadable
// for this run.
type FileFetcher interface {
	// Fetch returns the validated file bytes.
	// Returns domain.ErrChecksumMismatch when validation fails and
	// domain.ErrGaveUp when all retry attempts are exhausted.
	Fetch(ctx context.Context, file domain.FileLink) ([]byte, error)
}
