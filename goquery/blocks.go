package goquery

import (
	"strings"

	"github.com/dailybulletin/bulletin"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure BlockBuilder implements bulletin.BlockBuilder at compile time.
var _ bulletin.BlockBuilder = (*BlockBuilder)(nil)

// BlockBuilder walks image-placed content and produces an ordered, flat
// sequence of typed blocks.
type BlockBuilder struct{}

// NewBlockBuilder creates a new BlockBuilder.
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// blockWalk carries traversal state: the image side table and the index of
// the next <img> element in document order.
type blockWalk struct {
	refs    []bulletin.ImageRef
	nextImg int
	blocks  []bulletin.Block
}

// Build visits block-bearing elements in document order. Headings flatten to
// two levels (h1/h2 → 1, h3..h6 → 2), empty paragraphs and code blocks are
// omitted, list containers emit nothing beyond their items, and a generic
// container contributes its own text only when no descendant is emitted
// independently. Every <img> element consumes exactly one entry of the
// placement's side table.
func (b *BlockBuilder) Build(p *bulletin.Placement) ([]bulletin.Block, error) {
	doc, err := html.Parse(strings.NewReader(p.ContentHTML))
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EINVALID, "failed to parse content HTML: %v", err)
	}

	w := &blockWalk{refs: p.Refs}
	root := findBody(doc)
	if root == nil {
		root = doc
	}
	if err := w.walk(root); err != nil {
		return nil, err
	}

	return w.blocks, nil
}

func (w *blockWalk) walk(n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		switch c.DataAtom {
		case atom.H1, atom.H2:
			if err := w.emitText(c, bulletin.Block{Kind: bulletin.BlockHeading, Level: 1}); err != nil {
				return err
			}
		case atom.H3, atom.H4, atom.H5, atom.H6:
			if err := w.emitText(c, bulletin.Block{Kind: bulletin.BlockHeading, Level: 2}); err != nil {
				return err
			}
		case atom.Pre, atom.Code:
			if err := w.emitCode(c); err != nil {
				return err
			}
		case atom.Ul, atom.Ol:
			// List containers emit nothing; only their items do.
			if err := w.walk(c); err != nil {
				return err
			}
		case atom.Li:
			if err := w.emitText(c, bulletin.Block{Kind: bulletin.BlockListItem}); err != nil {
				return err
			}
		case atom.P:
			if err := w.emitText(c, bulletin.Block{Kind: bulletin.BlockParagraph}); err != nil {
				return err
			}
		case atom.Img:
			if err := w.emitImage(); err != nil {
				return err
			}
		case atom.Div, atom.Section, atom.Article, atom.Main, atom.Figure, atom.Blockquote:
			if err := w.emitContainer(c, bulletin.Block{Kind: bulletin.BlockParagraph}); err != nil {
				return err
			}
		default:
			if err := w.walk(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitText emits a text block from the element's whole subtree and consumes
// any images nested inside it so the side-table cursor stays aligned.
func (w *blockWalk) emitText(n *html.Node, block bulletin.Block) error {
	if text := collapsedText(n); text != "" {
		block.Text = text
		w.blocks = append(w.blocks, block)
	}
	return w.emitNestedImages(n)
}

// emitCode emits a code block preserving line structure.
func (w *blockWalk) emitCode(n *html.Node) error {
	if text := strings.Trim(rawText(n), "\n"); strings.TrimSpace(text) != "" {
		w.blocks = append(w.blocks, bulletin.Block{Kind: bulletin.BlockCode, Text: text})
	}
	return w.emitNestedImages(n)
}

// emitContainer applies the duplicate-suppression rule for div-like
// wrappers: a container whose descendants are independently emitted
// contributes no text of its own and is only traversed; otherwise it emits
// its subtree text once, followed by any images nested within. Paragraphs
// and list items bypass this rule and always emit their full text.
func (w *blockWalk) emitContainer(n *html.Node, block bulletin.Block) error {
	if hasBlockDescendant(n) {
		return w.walk(n)
	}
	return w.emitText(n, block)
}

// emitImage emits an Image block bound to the next side-table entry.
func (w *blockWalk) emitImage() error {
	if w.nextImg >= len(w.refs) {
		return bulletin.Errorf(bulletin.EINTERNAL, "image element without a placement ref")
	}
	ref := w.refs[w.nextImg]
	w.nextImg++
	w.blocks = append(w.blocks, bulletin.Block{Kind: bulletin.BlockImage, Ref: &ref})
	return nil
}

// emitNestedImages emits Image blocks for <img> elements inside a subtree
// whose text has already been emitted as a single block.
func (w *blockWalk) emitNestedImages(n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			if err := w.emitImage(); err != nil {
				return err
			}
			continue
		}
		if err := w.emitNestedImages(c); err != nil {
			return err
		}
	}
	return nil
}

// blockAtoms are the element kinds that emit blocks independently. A
// div-like container holding any of these must not emit its own text.
var blockAtoms = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.P: true, atom.Pre: true,
	atom.Code: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Img: true,
}

// hasBlockDescendant reports whether any descendant of n is a
// block-emitting element.
func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockAtoms[c.DataAtom] {
			return true
		}
		if hasBlockDescendant(c) {
			return true
		}
	}
	return false
}

// collapsedText returns the subtree's text with all whitespace runs
// collapsed to single spaces.
func collapsedText(n *html.Node) string {
	return strings.Join(strings.Fields(rawText(n)), " ")
}

// rawText concatenates the subtree's text nodes verbatim.
func rawText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
