// Package http provides HTTP-based implementations of the fetch
// collaborators: the raw-page fetcher and the per-image byte loader.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dailybulletin/bulletin"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 15 * time.Second

// userAgent mimics a desktop browser; many article pages serve reduced or
// blocked content to unknown clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements bulletin.Fetcher at compile time.
var _ bulletin.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML from URLs using plain HTTP requests. It does
// not execute JavaScript; use the rod package for pages that need a
// browser.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Network failures,
// timeouts and non-2xx statuses all report EUNAVAILABLE; a fetch failure is
// fatal for the document being processed.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", bulletin.Errorf(bulletin.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
