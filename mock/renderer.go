package mock

import (
	"context"

	"github.com/dailybulletin/bulletin"
)

var _ bulletin.BlockBuilder = (*BlockBuilder)(nil)

// BlockBuilder is a mock implementation of bulletin.BlockBuilder.
type BlockBuilder struct {
	BuildFn func(p *bulletin.Placement) ([]bulletin.Block, error)
}

func (b *BlockBuilder) Build(p *bulletin.Placement) ([]bulletin.Block, error) {
	return b.BuildFn(p)
}

var _ bulletin.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of bulletin.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, title string, blocks []bulletin.Block, loader bulletin.ImageLoader) (*bulletin.RenderedDocument, error)
}

func (r *Renderer) Render(ctx context.Context, title string, blocks []bulletin.Block, loader bulletin.ImageLoader) (*bulletin.RenderedDocument, error) {
	return r.RenderFn(ctx, title, blocks, loader)
}

var _ bulletin.Converter = (*Converter)(nil)

// Converter is a mock implementation of bulletin.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ bulletin.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of bulletin.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(doc *bulletin.RenderedDocument, path string) (string, error)
}

func (w *ArtifactWriter) WriteArtifact(doc *bulletin.RenderedDocument, path string) (string, error) {
	return w.WriteArtifactFn(doc, path)
}
