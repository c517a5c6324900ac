package driving

import "context"

// IntakeEvent is one observed change in the datasets directory.
type IntakeEvent struct {
	// Path is the affected file, relative to the datasets directory.
	Path string

	// Op is "created" or "removed".
	Op string
}

// IntakeWatcher observes the datasets directory for archives arriving or
// disappearing outside the downloader, for quick triage.
type IntakeWatcher interface {
	// Watch streams events until ctx is cancelled. The returned channel
	// is closed when watching stops.
	Watch(ctx context.Context) (<-chan IntakeEvent, error)
}
