package zenodo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

const (
	// DefaultOAIBaseURL is the Zenodo OAI-PMH endpoint.
	DefaultOAIBaseURL = "https://zenodo.org/oai2d"

	// DefaultAPIBaseURL is the Zenodo REST API root.
	DefaultAPIBaseURL = "https://zenodo.org/api"

	// DefaultTimeout is the default HTTP request timeout. Archive
	// downloads can be large, so it is generous.
	DefaultTimeout = 5 * time.Minute

	// MaxAttempts is how often a request is tried before giving up.
	MaxAttempts = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second
)

// Client talks to Zenodo. It implements the harvest source, record
// enricher and file fetcher ports.
type Client struct {
	httpClient  *http.Client
	oaiBaseURL  string
	apiBaseURL  string
	accessToken string
	limiter     *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the OAI and REST endpoints. Used in tests.
func WithBaseURLs(oaiBaseURL, apiBaseURL string) Option {
	return func(c *Client) {
		c.oaiBaseURL = oaiBaseURL
		c.apiBaseURL = apiBaseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Zenodo client. accessToken may be empty; when set it
// is appended to every request URL.
func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		oaiBaseURL:  DefaultOAIBaseURL,
		apiBaseURL:  DefaultAPIBaseURL,
		accessToken: accessToken,
		limiter:     NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// addAccessToken appends the access token to a URL's query string.
func (c *Client) addAccessToken(rawURL string) string {
	if c.accessToken == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()
	return u.String()
}

// get fetches one URL at a rate-limit-friendly pace. A 429 response waits
// out the declared limit window and retries; transient failures retry with
// exponential backoff up to MaxAttempts before giving up.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	rawURL = c.addAccessToken(rawURL)

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Warn("request failed (attempt %d of %d): %v", attempt, MaxAttempts, err)
			return nil, err
		}
		defer resp.Body.Close()

		if err := c.limiter.CheckRateLimit(resp); err != nil {
			var rle *RateLimitError
			if errors.As(err, &rle) {
				logger.Info("hit rate limit, waiting until %s", rle.WaitUntil(time.Now()).Format(time.RFC3339))
				if werr := c.limiter.WaitForReset(ctx, rle); werr != nil {
					return nil, backoff.Permanent(werr)
				}
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, backoff.Permanent(ErrRecordNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: resp.StatusCode, URL: resp.Request.URL.Redacted()}
			logger.Warn("unexpected http response %d (attempt %d of %d)", resp.StatusCode, attempt, MaxAttempts)
			return nil, apiErr
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = RetryDelay
	b.MaxElapsedTime = 0

	body, err := backoff.RetryWithData(operation, backoff.WithContext(backoff.WithMaxRetries(b, MaxAttempts-1), ctx))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: tried %d times: %w", domain.ErrGaveUp, MaxAttempts, err)
	}
	return body, nil
}
