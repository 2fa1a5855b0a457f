// Package trafilatura provides an alternative primary content extractor
// built on go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/dailybulletin/bulletin"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements bulletin.Extractor at compile time.
var _ bulletin.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs trafilatura with its built-in fallbacks enabled.
func (e *Extractor) Extract(rawHTML string) (*bulletin.Article, error) {
	if rawHTML == "" {
		return nil, bulletin.Errorf(bulletin.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EEXTRACT, "trafilatura extraction: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, bulletin.Errorf(bulletin.EEXTRACT, "failed to serialize content: %v", err)
		}
	}

	return &bulletin.Article{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Text:        strings.TrimSpace(result.ContentText),
		Source:      bulletin.SourceTrafilatura,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
