// Package fs provides file-based loading and writing of documents.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/mdparse"
)

// Ensure Loader implements mdparse.SourceLoader at compile time.
var _ mdparse.SourceLoader = (*Loader)(nil)

// Loader reads sources from the local filesystem.
type Loader struct {
	decoder mdparse.Decoder
}

// NewLoader creates a new Loader that decodes file contents with decoder.
func NewLoader(decoder mdparse.Decoder) *Loader {
	return &Loader{decoder: decoder}
}

// Load reads the file at path and decodes it to UTF-8.
func (l *Loader) Load(ctx context.Context, path string) (*mdparse.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, mdparse.Errorf(mdparse.ENOTFOUND, "input file %q not found", path)
	} else if err != nil {
		return nil, mdparse.Errorf(mdparse.EIO, "reading %q: %v", path, err)
	}

	text, encoding, err := l.decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	return &mdparse.Source{
		Location:    path,
		Name:        filepath.Base(path),
		Text:        text,
		Encoding:    encoding,
		ContentType: mdparse.DetectContentType(path),
	}, nil
}
