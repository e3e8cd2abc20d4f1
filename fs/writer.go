package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/mdparse"
	"github.com/google/uuid"
)

// Ensure Writer implements mdparse.DocumentWriter at compile time.
var _ mdparse.DocumentWriter = (*Writer)(nil)

// Writer writes encoded documents to files.
// Output is written to a temporary file next to the destination and renamed
// into place, so an interrupted write never leaves a partial file.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// tempPath returns a unique hidden file name in the destination's directory.
func tempPath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
}

// WriteDocument encodes doc in format and writes it to path, creating
// parent directories as needed.
func (w *Writer) WriteDocument(ctx context.Context, path string, format mdparse.Format, doc *mdparse.Document) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return mdparse.Errorf(mdparse.EIO, "creating output directory: %v", err)
	}

	tmp := tempPath(path)
	f, err := os.Create(tmp)
	if err != nil {
		return mdparse.Errorf(mdparse.EIO, "creating output file: %v", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := format.Encode(bw, doc); err != nil {
		f.Close()
		if mdparse.ErrorCode(err) == mdparse.EINVALID {
			return err
		}
		return mdparse.Errorf(mdparse.EIO, "writing %q: %v", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return mdparse.Errorf(mdparse.EIO, "writing %q: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return mdparse.Errorf(mdparse.EIO, "closing %q: %v", path, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		return mdparse.Errorf(mdparse.EIO, "replacing %q: %v", path, err)
	}
	return nil
}
