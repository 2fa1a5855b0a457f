package goquery

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/dailybulletin/bulletin"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultParagraphInterval is the synthesized-placement cadence: one
// harvested image is inserted after every Nth paragraph, starting after the
// second paragraph (the lead paragraph is never followed by an image).
const DefaultParagraphInterval = 3

var (
	imgSelector       = cascadia.MustCompile("img")
	paragraphSelector = cascadia.MustCompile("p")
)

// Ensure Placer implements bulletin.Placer at compile time.
var _ bulletin.Placer = (*Placer)(nil)

// Placer reconciles content images against the harvested image set. The
// content tree is never tagged in place; instead the returned Placement's
// Refs act as a side table where the i-th <img> element in document order
// maps to Refs[i].
type Placer struct {
	interval int
}

// PlacerOption configures a Placer.
type PlacerOption func(*Placer)

// WithParagraphInterval sets how many paragraphs separate synthesized image
// placements. Defaults to DefaultParagraphInterval.
func WithParagraphInterval(n int) PlacerOption {
	return func(p *Placer) {
		p.interval = n
	}
}

// NewPlacer creates a new Placer.
func NewPlacer(opts ...PlacerOption) *Placer {
	p := &Placer{interval: DefaultParagraphInterval}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Place mints an ImageRef for every image already present in the content.
// When the content has no images and the harvested set is non-empty, it
// synthesizes placements by interleaving harvested images into the
// paragraph sequence, consuming harvested images in harvest order until
// paragraphs or images run out. Harvested images are never added to content
// that already has its own.
func (p *Placer) Place(contentHTML string, harvested []bulletin.HarvestedImage) (*bulletin.Placement, error) {
	doc, err := html.Parse(strings.NewReader(contentHTML))
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EINVALID, "failed to parse content HTML: %v", err)
	}

	if imgs := cascadia.QueryAll(doc, imgSelector); len(imgs) > 0 {
		refs := make([]bulletin.ImageRef, 0, len(imgs))
		for _, img := range imgs {
			refs = append(refs, bulletin.ImageRef{
				ID:        uuid.NewString(),
				SourceURL: attrValue(img, "src"),
				Alt:       attrValue(img, "alt"),
			})
		}
		// Content stays untouched: existing images keep their positions.
		return &bulletin.Placement{ContentHTML: contentHTML, Refs: refs}, nil
	}

	if len(harvested) == 0 {
		return &bulletin.Placement{ContentHTML: contentHTML}, nil
	}

	refs := p.interleave(doc, harvested)
	if len(refs) == 0 {
		return &bulletin.Placement{ContentHTML: contentHTML}, nil
	}

	serialized, err := renderFragment(doc)
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EINTERNAL, "failed to serialize content: %v", err)
	}

	return &bulletin.Placement{ContentHTML: serialized, Refs: refs}, nil
}

// interleave inserts harvested images into the parsed tree after every Nth
// paragraph, skipping the lead paragraph, and returns the refs for the
// inserted elements in document order.
func (p *Placer) interleave(doc *html.Node, harvested []bulletin.HarvestedImage) []bulletin.ImageRef {
	interval := p.interval
	if interval <= 0 {
		interval = DefaultParagraphInterval
	}

	paragraphs := cascadia.QueryAll(doc, paragraphSelector)

	var refs []bulletin.ImageRef
	next := 0
	for i, para := range paragraphs {
		if next >= len(harvested) {
			break
		}
		// Insertion points are paragraphs 2, 2+N, 2+2N, ... (1-indexed).
		if i == 0 || (i-1)%interval != 0 {
			continue
		}

		img := &html.Node{
			Type:     html.ElementNode,
			Data:     "img",
			DataAtom: atom.Img,
			Attr:     []html.Attribute{{Key: "src", Val: harvested[next].SourceURL}},
		}
		para.Parent.InsertBefore(img, para.NextSibling)

		refs = append(refs, bulletin.ImageRef{
			ID:        uuid.NewString(),
			SourceURL: harvested[next].SourceURL,
		})
		next++
	}

	return refs
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// renderFragment serializes the children of the document's body, undoing
// the html/body wrapper that html.Parse adds around fragments.
func renderFragment(doc *html.Node) (string, error) {
	body := findBody(doc)
	if body == nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// findBody locates the body element in a parsed document.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
