// Package press orchestrates the article pipeline. It coordinates fetching,
// content extraction, image harvesting and placement, block building, and
// rendering into the final artifact.
package press

import (
	"context"
	"strings"

	"github.com/dailybulletin/bulletin"
)

// DefaultPrefetch is the default concurrency for eager image warm-up.
const DefaultPrefetch = 4

// Press runs web article pages through the full pipeline. All collaborator
// fields must be set except Converter, which is only needed for Markdown
// output, and Images, which may be nil when image embedding is not wanted.
type Press struct {
	Fetcher   bulletin.Fetcher
	Extractor bulletin.Extractor
	Harvester bulletin.Harvester
	Placer    bulletin.Placer
	Blocks    bulletin.BlockBuilder
	Renderer  bulletin.Renderer
	Converter bulletin.Converter
	Images    bulletin.ImageLoader

	// Prefetch is the concurrency for warming the image cache before
	// rendering. Zero or negative disables prefetching and images are
	// fetched one by one as the renderer reaches them.
	Prefetch int
}

// Run fetches the page at url and produces a rendered document in the
// requested format. The URL is normalized first, so scheme-less input is
// accepted.
func (p *Press) Run(ctx context.Context, url string, format bulletin.ArtifactFormat) (*bulletin.RenderedDocument, error) {
	normalized, err := bulletin.NormalizeURL(url)
	if err != nil {
		return nil, err
	}

	pageHTML, err := p.Fetcher.Fetch(ctx, normalized)
	if err != nil {
		return nil, err
	}

	article, err := p.Extractor.Extract(pageHTML)
	if err != nil {
		return nil, err
	}

	// Harvest from the raw page, not the extracted content; extraction may
	// drop images the placer wants to interleave.
	harvested, err := p.Harvester.Harvest(pageHTML, normalized)
	if err != nil {
		return nil, err
	}

	placement, err := p.Placer.Place(article.ContentHTML, harvested)
	if err != nil {
		return nil, err
	}

	if format == bulletin.FormatMarkdown {
		return p.renderMarkdown(normalized, article.Title, placement)
	}

	blocks, err := p.Blocks.Build(placement)
	if err != nil {
		return nil, err
	}

	loader := p.Images
	if loader != nil && p.Prefetch > 0 {
		loader = Warm(ctx, loader, placement.Refs, p.Prefetch)
	}

	doc, err := p.Renderer.Render(ctx, article.Title, blocks, loader)
	if err != nil {
		return nil, err
	}

	doc.URL = normalized
	return doc, nil
}

// renderMarkdown converts the placed content HTML to Markdown, with the
// article title as a top-level heading.
func (p *Press) renderMarkdown(url, title string, placement *bulletin.Placement) (*bulletin.RenderedDocument, error) {
	if p.Converter == nil {
		return nil, bulletin.Errorf(bulletin.EINTERNAL, "markdown output requires a converter")
	}

	md, err := p.Converter.Convert(placement.ContentHTML)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if strings.TrimSpace(title) != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(md)

	return &bulletin.RenderedDocument{
		URL:    url,
		Title:  title,
		Format: bulletin.FormatMarkdown,
		Data:   []byte(b.String()),
		Images: len(placement.Refs),
	}, nil
}
