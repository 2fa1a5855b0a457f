package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dailybulletin/bulletin"
)

// Ensure LoggingImageLoader implements bulletin.ImageLoader.
var _ bulletin.ImageLoader = (*LoggingImageLoader)(nil)

// LoggingImageLoader wraps an ImageLoader with debug logging. Failed
// downloads surface here as zero-byte results since the loader contract
// swallows errors.
type LoggingImageLoader struct {
	next   bulletin.ImageLoader
	logger *slog.Logger
}

// NewLoggingImageLoader creates a new LoggingImageLoader.
func NewLoggingImageLoader(next bulletin.ImageLoader, logger *slog.Logger) *LoggingImageLoader {
	return &LoggingImageLoader{next: next, logger: logger}
}

// FetchBytes logs the image URL and result size and delegates to the wrapped
// loader.
func (l *LoggingImageLoader) FetchBytes(ctx context.Context, url string) (data []byte) {
	defer func(begin time.Time) {
		l.logger.Info("fetch image",
			"url", url,
			"bytes", len(data),
			"ok", data != nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return l.next.FetchBytes(ctx, url)
}
