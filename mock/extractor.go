package mock

import "github.com/dailybulletin/bulletin"

var _ bulletin.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bulletin.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string) (*bulletin.Article, error)
}

func (e *Extractor) Extract(rawHTML string) (*bulletin.Article, error) {
	return e.ExtractFn(rawHTML)
}
