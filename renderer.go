package bulletin

import "context"

// ArtifactFormat identifies the output artifact type.
type ArtifactFormat string

// Artifact formats.
const (
	FormatPDF      ArtifactFormat = "pdf"
	FormatMarkdown ArtifactFormat = "markdown"
)

// RenderedDocument is the final artifact produced from a block sequence,
// plus pagination metadata.
type RenderedDocument struct {
	// URL is the source page address.
	URL string

	// Title is the article title rendered at the top of the document.
	Title string

	// Format identifies the artifact type.
	Format ArtifactFormat

	// Data is the serialized artifact.
	Data []byte

	// Pages is the page count. Zero for unpaginated formats.
	Pages int

	// Blocks is the number of blocks consumed.
	Blocks int

	// Images is the number of images actually embedded. Images whose bytes
	// could not be fetched or decoded are omitted and not counted.
	Images int
}

// Renderer paginates a block sequence into a document artifact.
type Renderer interface {
	// Render maps each block to a layout primitive and paginates the
	// result. The title is always rendered first in title style,
	// regardless of whether blocks also contain a level-1 heading.
	// Image bytes are resolved through loader; per-image failures omit the
	// image silently. Rendering order is fixed by block sequence order.
	Render(ctx context.Context, title string, blocks []Block, loader ImageLoader) (*RenderedDocument, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean content HTML into Markdown.
	Convert(html string) (string, error)
}

// ArtifactWriter persists rendered documents to storage.
type ArtifactWriter interface {
	// WriteArtifact writes the document and returns the path it was
	// written to. An empty path derives the filename from the document's
	// title (or source URL when the title is empty).
	WriteArtifact(doc *RenderedDocument, path string) (string, error)
}
