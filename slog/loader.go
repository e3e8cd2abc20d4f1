package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdparse"
)

var _ mdparse.SourceLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a SourceLoader with logging.
type LoggingLoader struct {
	next   mdparse.SourceLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next mdparse.SourceLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs what was read.
func (l *LoggingLoader) Load(ctx context.Context, location string) (src *mdparse.Source, err error) {
	defer func(begin time.Time) {
		attrs := []any{"location", location}
		if src != nil {
			attrs = append(attrs,
				"type", string(src.ContentType),
				"encoding", src.Encoding,
				"bytes", len(src.Text),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		l.logger.Info("load", attrs...)
	}(time.Now())
	return l.next.Load(ctx, location)
}
