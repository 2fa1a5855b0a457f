package bulletin

import "context"

// HarvestedImage is an inline image discovered in the raw page, before any
// extraction has happened. URLs are absolute, resolved against the page URL.
type HarvestedImage struct {
	// SourceURL is the absolute image address.
	SourceURL string

	// Width and Height are the pixel dimensions from the element's
	// attributes. Zero means the dimension was absent or unparseable.
	Width  int
	Height int
}

// Harvester scans a raw HTML document for inline images.
type Harvester interface {
	// Harvest returns the page's images in document order, with data URIs
	// and icon-sized images filtered out and relative URLs resolved
	// against baseURL.
	Harvest(rawHTML string, baseURL string) ([]HarvestedImage, error)
}

// ImageRef is a stable, opaque handle binding a placed image element to its
// source URL and alt text, independent of later byte retrieval.
type ImageRef struct {
	// ID is an opaque unique token.
	ID string

	// SourceURL is the image address from the element's src attribute.
	SourceURL string

	// Alt is the element's alt text. Empty for synthesized placements.
	Alt string
}

// Placement binds content HTML to its image side table. The content tree is
// never tagged in place: the i-th <img> element in document order
// corresponds to Refs[i].
type Placement struct {
	// ContentHTML is the content fragment. Identical to the input when the
	// content already contained images; a new serialization with
	// synthesized <img> elements otherwise.
	ContentHTML string

	// Refs lists one ImageRef per <img> element, in document order.
	Refs []ImageRef
}

// Placer reconciles images discovered in extracted content against images
// harvested from the raw page.
type Placer interface {
	// Place mints an ImageRef for every image already present in the
	// content. When the content has no images and the harvested set is
	// non-empty, it synthesizes placements by interleaving harvested
	// images into the paragraph sequence. Harvested images are never added
	// to content that already has its own.
	Place(contentHTML string, harvested []HarvestedImage) (*Placement, error)
}

// ImageLoader retrieves image bytes for rendering.
type ImageLoader interface {
	// FetchBytes returns the image bytes, or nil on any failure. It never
	// returns an error; a failed image download must not abort the rest of
	// the pipeline.
	FetchBytes(ctx context.Context, url string) []byte
}

// ImageLoaderFunc adapts a function to the ImageLoader interface.
type ImageLoaderFunc func(ctx context.Context, url string) []byte

// FetchBytes calls f.
func (f ImageLoaderFunc) FetchBytes(ctx context.Context, url string) []byte {
	return f(ctx, url)
}
