package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dailybulletin/bulletin"
	"golang.org/x/time/rate"
)

// DefaultImageTimeout bounds each individual image download.
const DefaultImageTimeout = 10 * time.Second

// Ensure ImageLoader implements bulletin.ImageLoader at compile time.
var _ bulletin.ImageLoader = (*ImageLoader)(nil)

// ImageLoader downloads image bytes over HTTP. Every failure returns nil;
// a broken image never aborts the pipeline.
type ImageLoader struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// LoaderOption configures an ImageLoader.
type LoaderOption func(*ImageLoader)

// WithImageTimeout sets the per-image download timeout.
// Defaults to DefaultImageTimeout if not specified.
func WithImageTimeout(d time.Duration) LoaderOption {
	return func(l *ImageLoader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithRateLimit throttles downloads to rps requests per second with a burst
// of 1. No limit is applied by default.
func WithRateLimit(rps float64) LoaderOption {
	return func(l *ImageLoader) {
		if rps > 0 {
			l.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewImageLoader creates a new ImageLoader.
func NewImageLoader(opts ...LoaderOption) *ImageLoader {
	l := &ImageLoader{
		timeout: DefaultImageTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// FetchBytes downloads the image at url. Returns nil on any failure.
func (l *ImageLoader) FetchBytes(ctx context.Context, url string) []byte {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	return data
}
