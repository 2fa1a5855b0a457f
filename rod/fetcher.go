// Package rod fetches rendered article pages through headless Chrome. It
// covers pages that only materialize their content, image src attributes
// included, after JavaScript has run.
package rod

import (
	"context"

	"github.com/go-rod/rod/lib/proto"

	"github.com/dailybulletin/bulletin"
)

// scrollScript walks the viewport down the page to trigger lazy-loaded
// images before the DOM is read, then returns to the top.
const scrollScript = `async (step, pause) => {
	const height = () => document.body ? document.body.scrollHeight : 0;
	for (let y = 0; y <= height(); y += step) {
		window.scrollTo(0, y);
		await new Promise(r => setTimeout(r, pause));
	}
	window.scrollTo(0, 0);
}`

const (
	scrollStep    = 600 // px
	scrollPauseMS = 150
)

// Ensure Fetcher implements bulletin.Fetcher at compile time.
var _ bulletin.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	mgr *BrowserManager
}

// NewFetcher creates a Fetcher backed by a headless Chrome browser. Close
// must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	mgr, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{mgr: mgr}, nil
}

// Fetch navigates to the URL, scrolls the full page height to force lazy
// content to load, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.mgr.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "loading %s: %v", url, err)
	}

	// Best effort; a page that rejects the script still renders.
	_, _ = page.Eval(scrollScript, scrollStep, scrollPauseMS)

	html, err := page.HTML()
	if err != nil {
		return "", bulletin.Errorf(bulletin.EUNAVAILABLE, "reading page: %v", err)
	}

	f.mgr.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.mgr.Close()
}
