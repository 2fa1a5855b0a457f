// Package readability provides the primary content extractor, wrapping the
// go-readability port of Mozilla's main-content algorithm.
package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dailybulletin/bulletin"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements bulletin.Extractor at compile time.
var _ bulletin.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs the readability algorithm and strips any boilerplate
// elements the algorithm kept. Short content is not an error; the quality
// gate above this extractor decides whether to fall back.
func (e *Extractor) Extract(rawHTML string) (*bulletin.Article, error) {
	if rawHTML == "" {
		return nil, bulletin.Errorf(bulletin.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EEXTRACT, "readability extraction: %v", err)
	}

	contentHTML, text, err := stripBoilerplate(article.Content)
	if err != nil {
		return nil, err
	}

	return &bulletin.Article{
		Title:       article.Title,
		ContentHTML: contentHTML,
		Text:        text,
		Source:      bulletin.SourceReadability,
	}, nil
}

// stripBoilerplate removes script/style/nav/footer/header/aside elements
// from a content fragment and returns the cleaned HTML plus its plain text.
func stripBoilerplate(contentHTML string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", "", bulletin.Errorf(bulletin.EEXTRACT, "failed to parse extracted content: %v", err)
	}

	body := doc.Find("body")
	body.Find(bulletin.BoilerplateSelector).Remove()

	cleaned, err := body.Html()
	if err != nil {
		return "", "", bulletin.Errorf(bulletin.EEXTRACT, "failed to serialize content: %v", err)
	}

	return cleaned, strings.TrimSpace(body.Text()), nil
}
