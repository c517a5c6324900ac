package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedDialect indicates a table declares a CSV dialect shape
	// the extraction engine does not read (headerless tables, multi-row
	// headers, unknown encodings). Fatal for that table, never retried.
	ErrUnsupportedDialect = errors.New("unsupported csv dialect")

	// ErrChecksumMismatch indicates downloaded bytes failed validation
	// against the checksum the repository declared for them.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrRateLimited indicates the repository API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoData indicates an archive contained no CLDF metadata documents.
	// Recorded per archive and aggregated; never aborts a batch.
	ErrNoData = errors.New("no cldf data found")

	// ErrGaveUp indicates all retry attempts for a download were exhausted.
	ErrGaveUp = errors.New("gave up after retries")
)
