package pdf_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailybulletin/bulletin"
	"github.com/dailybulletin/bulletin/pdf"
)

// pngBytes encodes a solid-color PNG of the given dimensions, with alpha so
// compositing is exercised.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 128})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("TitleOnly", func(t *testing.T) {
		t.Parallel()

		doc, err := pdf.NewRenderer().Render(context.Background(), "Lone Title", nil, nil)
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
		assert.Equal(t, bulletin.FormatPDF, doc.Format)
		assert.Equal(t, 1, doc.Pages)
		assert.Equal(t, 0, doc.Blocks)
		assert.Equal(t, 0, doc.Images)
	})

	t.Run("AllBlockKinds", func(t *testing.T) {
		t.Parallel()

		blocks := []bulletin.Block{
			{Kind: bulletin.BlockHeading, Level: 1, Text: "Section"},
			{Kind: bulletin.BlockHeading, Level: 2, Text: "Subsection"},
			{Kind: bulletin.BlockParagraph, Text: "Body text with “smart quotes” and an ellipsis…"},
			{Kind: bulletin.BlockCode, Text: "fmt.Println(\"hi\")"},
			{Kind: bulletin.BlockListItem, Text: "first item"},
		}

		doc, err := pdf.NewRenderer().Render(context.Background(), "Article", blocks, nil)
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
		assert.GreaterOrEqual(t, doc.Pages, 1)
		assert.Equal(t, len(blocks), doc.Blocks)
	})

	t.Run("EmbedsImage", func(t *testing.T) {
		t.Parallel()

		data := pngBytes(t, 120, 80)
		loader := bulletin.ImageLoaderFunc(func(ctx context.Context, url string) []byte {
			return data
		})

		blocks := []bulletin.Block{
			{Kind: bulletin.BlockParagraph, Text: "Before."},
			{Kind: bulletin.BlockImage, Ref: &bulletin.ImageRef{ID: "img-1", SourceURL: "https://example.com/a.png"}},
			{Kind: bulletin.BlockParagraph, Text: "After."},
		}

		doc, err := pdf.NewRenderer().Render(context.Background(), "With Image", blocks, loader)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Images)
	})

	t.Run("OmitsUnfetchableImage", func(t *testing.T) {
		t.Parallel()

		loader := bulletin.ImageLoaderFunc(func(ctx context.Context, url string) []byte {
			return nil
		})

		blocks := []bulletin.Block{
			{Kind: bulletin.BlockImage, Ref: &bulletin.ImageRef{ID: "img-1", SourceURL: "https://example.com/missing.png"}},
			{Kind: bulletin.BlockParagraph, Text: "Text still renders."},
		}

		doc, err := pdf.NewRenderer().Render(context.Background(), "Broken Image", blocks, loader)
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Images)
		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	})

	t.Run("OmitsUndecodableImage", func(t *testing.T) {
		t.Parallel()

		loader := bulletin.ImageLoaderFunc(func(ctx context.Context, url string) []byte {
			return []byte("not an image")
		})

		blocks := []bulletin.Block{
			{Kind: bulletin.BlockImage, Ref: &bulletin.ImageRef{ID: "img-1", SourceURL: "https://example.com/x"}},
		}

		doc, err := pdf.NewRenderer().Render(context.Background(), "Garbage Image", blocks, loader)
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Images)
	})

	t.Run("LongDocumentPaginates", func(t *testing.T) {
		t.Parallel()

		var blocks []bulletin.Block
		for i := 0; i < 120; i++ {
			blocks = append(blocks, bulletin.Block{
				Kind: bulletin.BlockParagraph,
				Text: "A paragraph long enough to occupy several lines of the page when wrapped at the usable width of a letter sheet with one inch margins on either side.",
			})
		}

		doc, err := pdf.NewRenderer().Render(context.Background(), "Long Read", blocks, nil)
		require.NoError(t, err)
		assert.Greater(t, doc.Pages, 1)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := pdf.NewRenderer().Render(ctx, "T", []bulletin.Block{{Kind: bulletin.BlockParagraph, Text: "x"}}, nil)
		require.Error(t, err)
	})
}
