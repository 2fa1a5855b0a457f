package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dailybulletin/bulletin"
)

// containerSelector matches common article containers, in the order pages
// tend to use them: the semantic article tag, well-known content classes,
// and the main-role landmark.
const containerSelector = `article, .article, .post, .content, .post-content, [role="main"]`

// noiseSelector extends the boilerplate set with ad, share and related-post
// patterns that survive inside article containers.
const noiseSelector = bulletin.BoilerplateSelector + ", .ad, .advertisement, .social-share, .related-posts"

// Ensure FallbackExtractor implements bulletin.Extractor at compile time.
var _ bulletin.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor selects article content by matching common container
// selectors against the raw document. It is the secondary path behind the
// readability algorithm, used when primary extraction yields too little
// text.
type FallbackExtractor struct{}

// NewFallbackExtractor creates a new FallbackExtractor.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// Extract takes the first matching container in document order, strips
// boilerplate and ad/share/related noise from it, and returns it as the
// content. Returns ENOTFOUND when no container matches.
func (e *FallbackExtractor) Extract(rawHTML string) (*bulletin.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, bulletin.Errorf(bulletin.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EEXTRACT, "failed to parse HTML: %v", err)
	}

	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return nil, bulletin.Errorf(bulletin.ENOTFOUND, "no article container matched")
	}

	container.Find(noiseSelector).Remove()

	contentHTML, err := goquery.OuterHtml(container)
	if err != nil {
		return nil, bulletin.Errorf(bulletin.EEXTRACT, "failed to serialize container: %v", err)
	}

	return &bulletin.Article{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: contentHTML,
		Text:        strings.TrimSpace(container.Text()),
		Source:      bulletin.SourceContainerFallback,
	}, nil
}
