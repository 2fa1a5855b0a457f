// Package goquery provides CSS-selector based implementations of the
// content-selection stages: image harvesting from the raw page, the
// container-fallback extractor, image placement resolution, and the block
// model builder.
package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dailybulletin/bulletin"
)

// DefaultMinImagePixels is the dimension below which an image with explicit
// width and height attributes is treated as an icon or tracking pixel and
// excluded from the harvest.
const DefaultMinImagePixels = 50

// Ensure Harvester implements bulletin.Harvester at compile time.
var _ bulletin.Harvester = (*Harvester)(nil)

// Harvester scans raw HTML documents for inline images.
type Harvester struct {
	minPixels int
}

// HarvesterOption configures a Harvester.
type HarvesterOption func(*Harvester)

// WithMinPixels sets the minimum width/height in pixels for an image with
// explicit dimensions to be kept. Defaults to DefaultMinImagePixels.
func WithMinPixels(px int) HarvesterOption {
	return func(h *Harvester) {
		h.minPixels = px
	}
}

// NewHarvester creates a new Harvester.
func NewHarvester(opts ...HarvesterOption) *Harvester {
	h := &Harvester{minPixels: DefaultMinImagePixels}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Harvest returns the document's images in document order. Data URIs are
// skipped, icon-sized images (both dimensions known, either below the
// minimum) are skipped, relative URLs are resolved against baseURL, and
// duplicates keep their first occurrence.
func (h *Harvester) Harvest(rawHTML string, baseURL string) ([]bulletin.HarvestedImage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var images []bulletin.HarvestedImage

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}

		width, wok := parsePixels(sel.AttrOr("width", ""))
		height, hok := parsePixels(sel.AttrOr("height", ""))
		if wok && hok && (width < h.minPixels || height < h.minPixels) {
			return
		}

		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}

		img := bulletin.HarvestedImage{SourceURL: resolved}
		if wok {
			img.Width = width
		}
		if hok {
			img.Height = height
		}
		images = append(images, img)
	})

	return images, nil
}

// parsePixels parses a width/height attribute value as an integer pixel
// count. Values like "100%" or "auto" report unknown.
func parsePixels(v string) (int, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
