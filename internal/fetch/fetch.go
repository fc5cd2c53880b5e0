// Package fetch downloads journal files from user-supplied URLs.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"trade-insights/internal/logger"
)

// maxBodyBytes caps a downloaded journal at 64 MiB.
const maxBodyBytes = 64 << 20

// SourceFetchError indicates the journal could not be retrieved from the
// given URL.
type SourceFetchError struct {
	URL string
	Err error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetching journal from %s: %v", e.URL, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// Client downloads journal text over HTTP.
type Client struct {
	httpClient *http.Client
}

// ClientOption configures the fetch client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a fetch client with the given options.
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchText downloads the resource at url and returns its body as text.
// Any transport failure or non-2xx status comes back as a SourceFetchError.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	timer := logger.StartOperation(ctx, "fetch.text", "url", url)
	ctx = timer.GetContext()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		ferr := &SourceFetchError{URL: url, Err: err}
		timer.EndWithError(ferr)
		return "", ferr
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		ferr := &SourceFetchError{URL: url, Err: err}
		timer.EndWithError(ferr)
		return "", ferr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ferr := &SourceFetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
		timer.EndWithError(ferr)
		return "", ferr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		ferr := &SourceFetchError{URL: url, Err: err}
		timer.EndWithError(ferr)
		return "", ferr
	}

	timer.End("bytes", len(body))
	return string(body), nil
}
