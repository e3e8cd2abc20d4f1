package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdparse"
)

var _ mdparse.DocumentWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a DocumentWriter with logging.
type LoggingWriter struct {
	next   mdparse.DocumentWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next mdparse.DocumentWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs a summary of doc.
func (w *LoggingWriter) WriteDocument(ctx context.Context, path string, format mdparse.Format, doc *mdparse.Document) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"path", path,
			"format", string(format),
			"sections", len(doc.Sections),
			"chars", doc.TotalChars(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, path, format, doc)
}
