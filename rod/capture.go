package rod

import (
	"context"
	"io"

	"github.com/go-rod/rod/lib/proto"

	"github.com/dailybulletin/bulletin"
)

// Capturer prints live rendered pages to PDF through headless Chrome. Unlike
// the extraction pipeline it keeps the page's own layout and styling.
// Capturer is safe for concurrent use by multiple goroutines.
type Capturer struct {
	mgr *BrowserManager
}

// NewCapturer creates a Capturer backed by a headless Chrome browser. Close
// must be called when the Capturer is no longer needed.
func NewCapturer(opts ...ManagerOption) (*Capturer, error) {
	mgr, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Capturer{mgr: mgr}, nil
}

// Capture navigates to the URL, scrolls the full page height so lazy content
// loads, and returns the page printed to PDF.
func (c *Capturer) Capture(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := c.mgr.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, bulletin.Errorf(bulletin.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, bulletin.Errorf(bulletin.EUNAVAILABLE, "loading %s: %v", url, err)
	}

	_, _ = page.Eval(scrollScript, scrollStep, scrollPauseMS)

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, bulletin.Errorf(bulletin.ERENDER, "printing %s: %v", url, err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, bulletin.Errorf(bulletin.ERENDER, "reading pdf stream: %v", err)
	}

	c.mgr.IncrementPageCount()
	return data, nil
}

// Close releases browser resources.
func (c *Capturer) Close() error {
	return c.mgr.Close()
}
