package driven

import (
	"context"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// OutputWriter persists the assembled output tables of one stats run.
type OutputWriter interface {
	// WriteTables writes all four tables. Partially written output from a
	// failed call may be left behind; a rerun overwrites it.
	WriteTables(ctx context.Context, tables *domain.OutputTables) error
}
