package mock

import (
	"context"

	"github.com/fwojciec/mdparse"
)

var _ mdparse.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of mdparse.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, path string, format mdparse.Format, doc *mdparse.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, path string, format mdparse.Format, doc *mdparse.Document) error {
	return w.WriteDocumentFn(ctx, path, format, doc)
}
