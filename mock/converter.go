package mock

import "github.com/fwojciec/mdparse"

var (
	_ mdparse.Converter  = (*Converter)(nil)
	_ mdparse.MetaReader = (*MetaReader)(nil)
	_ mdparse.Extractor  = (*Extractor)(nil)
)

// Converter is a mock implementation of mdparse.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// MetaReader is a mock implementation of mdparse.MetaReader.
type MetaReader struct {
	ReadMetaFn func(html string) (map[string]string, error)
}

func (r *MetaReader) ReadMeta(html string) (map[string]string, error) {
	return r.ReadMetaFn(html)
}

// Extractor is a mock implementation of mdparse.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*mdparse.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*mdparse.ExtractResult, error) {
	return e.ExtractFn(html)
}
