package zenodo

import (
	"errors"
	"fmt"
	"time"
)

// Zenodo-specific errors.
var (
	// ErrOAIError indicates the OAI-PMH endpoint returned a protocol error.
	ErrOAIError = errors.New("zenodo: oai-pmh error")

	// ErrRecordNotFound indicates the REST API knows no such record.
	ErrRecordNotFound = errors.New("zenodo: record not found")
)

// RateLimitError represents a rate limit exceeded response with its
// declared reset time.
type RateLimitError struct {
	ResetAt    time.Time
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("zenodo: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// WaitUntil returns the time to wait for before retrying: the later of the
// declared reset and now plus Retry-After.
func (e *RateLimitError) WaitUntil(now time.Time) time.Time {
	retryAt := now.Add(e.RetryAfter)
	if e.ResetAt.After(retryAt) {
		return e.ResetAt
	}
	return retryAt
}

// APIError represents an unexpected HTTP response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zenodo: unexpected http response %d (URL: %s)", e.StatusCode, e.URL)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
