package slog

import (
	"log/slog"
	"time"

	"github.com/dailybulletin/bulletin"
)

// Ensure LoggingExtractor implements bulletin.Extractor.
var _ bulletin.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   bulletin.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next bulletin.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs which engine produced the content and how much text it
// yielded, then delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(rawHTML string) (article *bulletin.Article, err error) {
	defer func(begin time.Time) {
		var source bulletin.ExtractionSource
		var chars int
		if article != nil {
			source = article.Source
			chars = len(article.Text)
		}
		e.logger.Info("extract",
			"source", string(source),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rawHTML)
}
