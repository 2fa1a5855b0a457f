package bulletin

import "strings"

// ExtractionSource identifies which content-selection path produced an
// Article.
type ExtractionSource string

// Extraction sources.
const (
	// SourceReadability marks content selected by the readability
	// main-content algorithm.
	SourceReadability ExtractionSource = "readability"

	// SourceTrafilatura marks content selected by the trafilatura
	// extraction engine.
	SourceTrafilatura ExtractionSource = "trafilatura"

	// SourceContainerFallback marks content selected by the secondary
	// container heuristic after the primary path yielded too little text.
	SourceContainerFallback ExtractionSource = "container_fallback"
)

// DefaultMinContentChars is the plain-text length below which a primary
// extraction is considered incomplete and the container fallback is tried.
const DefaultMinContentChars = 500

// BoilerplateSelector matches elements that never belong to article content
// and are stripped from every extraction result.
const BoilerplateSelector = "script, style, nav, footer, header, aside"

// Article holds the extracted content of a web page.
type Article struct {
	// URL is the address the page was fetched from.
	URL string

	// Title is the page title. May be empty.
	Title string

	// ContentHTML is the main content as a cleaned HTML fragment with
	// boilerplate elements removed.
	ContentHTML string

	// Text is the plain text of ContentHTML, used for quality gating.
	Text string

	// Source records which extraction path produced the content.
	Source ExtractionSource
}

// Extractor isolates the main article content from a raw HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// It fails only when the document yields no usable structure at all;
	// short content is not an error.
	Extract(rawHTML string) (*Article, error)
}

// GatedExtractor runs a primary Extractor and retries with a fallback when
// the primary result's plain text is shorter than MinChars. A fallback
// failure keeps the primary result; extraction as a whole fails only when
// the document has no body text at all.
type GatedExtractor struct {
	Primary  Extractor
	Fallback Extractor

	// MinChars is the plain-text length threshold. Zero or negative means
	// DefaultMinContentChars.
	MinChars int
}

// Ensure GatedExtractor implements Extractor at compile time.
var _ Extractor = (*GatedExtractor)(nil)

// Extract runs the primary extraction and applies the quality gate.
func (g *GatedExtractor) Extract(rawHTML string) (*Article, error) {
	minChars := g.MinChars
	if minChars <= 0 {
		minChars = DefaultMinContentChars
	}

	primary, err := g.Primary.Extract(rawHTML)
	if err != nil && g.Fallback == nil {
		return nil, err
	}

	if primary != nil && len(strings.TrimSpace(primary.Text)) >= minChars {
		return primary, nil
	}

	if g.Fallback != nil {
		fallback, fbErr := g.Fallback.Extract(rawHTML)
		if fbErr == nil && fallback != nil && qualifies(fallback.Text, minChars, primary == nil) {
			if fallback.Title == "" && primary != nil {
				fallback.Title = primary.Title
			}
			return fallback, nil
		}
	}

	if primary == nil {
		return nil, err
	}
	if strings.TrimSpace(primary.Text) == "" {
		return nil, Errorf(EEXTRACT, "document has no readable body text")
	}
	return primary, nil
}

// qualifies reports whether fallback text is good enough to replace the
// primary result. A container shorter than the threshold does not improve
// on a short primary extraction, so it only wins when the primary path
// produced nothing at all.
func qualifies(text string, minChars int, primaryFailed bool) bool {
	n := len(strings.TrimSpace(text))
	if primaryFailed {
		return n > 0
	}
	return n >= minChars
}
