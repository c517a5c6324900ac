package driven

import (
	"context"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// LanguoidSource loads the Glottolog languoid index used to merge
// dataset-local language identifiers into one global space.
type LanguoidSource interface {
	// Load returns the index. A missing catalog yields an empty index,
	// not an error; stats runs degrade to dataset-local identifiers.
	Load(ctx context.Context) (*domain.LanguoidIndex, error)
}
