// Package pdf renders block sequences into paginated PDF documents using
// gofpdf.
package pdf

import (
	"bytes"
	"context"
	"strings"

	"github.com/dailybulletin/bulletin"
	"github.com/jung-kurt/gofpdf"
)

// Page geometry. Letter pages with one-inch margins; gofpdf inserts page
// breaks automatically when flowed content crosses the break trigger.
const (
	pageMargin = 25.4 // mm

	titleSize    = 20
	heading1Size = 14
	heading2Size = 12
	bodySize     = 11
	codeSize     = 9

	bodyLineHeight = 5.0
	codeLineHeight = 4.0
	codeIndent     = 7.0 // mm
)

// Ensure Renderer implements bulletin.Renderer at compile time.
var _ bulletin.Renderer = (*Renderer)(nil)

// Renderer paginates block sequences into PDF documents.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render maps blocks to layout primitives in sequence order. The title is
// always rendered first; an empty block sequence still produces a valid
// title-only document. Image bytes are resolved through loader; a nil
// result or decode failure omits the image with no placeholder.
func (r *Renderer) Render(ctx context.Context, title string, blocks []bulletin.Block, loader bulletin.ImageLoader) (*bulletin.RenderedDocument, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	usable := pageW - 2*pageMargin

	// Core fonts are cp1252; translate so common punctuation survives.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	if strings.TrimSpace(title) != "" {
		doc.SetFont("Helvetica", "B", titleSize)
		doc.MultiCell(0, 9, tr(title), "", "L", false)
		doc.Ln(6)
	}

	images := 0
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch b.Kind {
		case bulletin.BlockHeading:
			if b.Level <= 1 {
				doc.SetFont("Helvetica", "B", heading1Size)
				doc.MultiCell(0, 7, tr(b.Text), "", "L", false)
				doc.Ln(3)
			} else {
				doc.SetFont("Helvetica", "B", heading2Size)
				doc.MultiCell(0, 6, tr(b.Text), "", "L", false)
				doc.Ln(2)
			}
		case bulletin.BlockParagraph:
			doc.SetFont("Helvetica", "", bodySize)
			doc.MultiCell(0, bodyLineHeight, tr(b.Text), "", "L", false)
			doc.Ln(3)
		case bulletin.BlockCode:
			doc.SetFont("Courier", "", codeSize)
			doc.SetLeftMargin(pageMargin + codeIndent)
			doc.MultiCell(0, codeLineHeight, tr(b.Text), "", "L", false)
			doc.SetLeftMargin(pageMargin)
			doc.Ln(3)
		case bulletin.BlockListItem:
			doc.SetFont("Helvetica", "", bodySize)
			doc.MultiCell(0, bodyLineHeight, tr("• "+b.Text), "", "L", false)
			doc.Ln(1)
		case bulletin.BlockImage:
			if r.placeImage(ctx, doc, b.Ref, loader, usable) {
				images++
			}
		}
	}

	if doc.Err() {
		return nil, bulletin.Errorf(bulletin.ERENDER, "pdf layout: %v", doc.Error())
	}

	pages := doc.PageCount()

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, bulletin.Errorf(bulletin.ERENDER, "pdf output: %v", err)
	}

	return &bulletin.RenderedDocument{
		Title:  title,
		Format: bulletin.FormatPDF,
		Data:   buf.Bytes(),
		Pages:  pages,
		Blocks: len(blocks),
		Images: images,
	}, nil
}

// placeImage fetches, normalizes and flows one image into the document,
// scaled down to the usable width when necessary. Reports whether the image
// was embedded; any failure leaves the document untouched.
func (r *Renderer) placeImage(ctx context.Context, doc *gofpdf.Fpdf, ref *bulletin.ImageRef, loader bulletin.ImageLoader, usable float64) bool {
	if ref == nil || loader == nil {
		return false
	}

	data := loader.FetchBytes(ctx, ref.SourceURL)
	if data == nil {
		return false
	}

	encoded, naturalW, naturalH, err := Normalize(data)
	if err != nil || naturalW <= 0 || naturalH <= 0 {
		return false
	}

	w, h := FitWidth(pxToMM(naturalW), pxToMM(naturalH), usable)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader(ref.ID, opts, bytes.NewReader(encoded))
	if doc.Err() {
		doc.ClearError()
		return false
	}

	doc.ImageOptions(ref.ID, pageMargin, 0, w, h, true, opts, 0, "")
	doc.Ln(3)
	return true
}
