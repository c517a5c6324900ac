package driving

import "context"

// CleanupOrchestrator removes downloads that were manually catalogued as
// not being CLDF data. Deletion is destructive, so planning and removal
// are separate steps: the CLI shows the plan and asks before removing.
type CleanupOrchestrator interface {
	// Plan returns the absolute paths of the files that would be removed.
	Plan(ctx context.Context) ([]string, error)

	// Remove deletes the given files and prunes emptied dataset
	// directories.
	Remove(ctx context.Context, paths []string) error
}
