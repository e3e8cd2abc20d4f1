// Package ingest wires the collaborators that turn a source location into a
// parsed document: loading, HTML conversion, normalization, parsing and
// writing.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mdparse"
)

// Pipeline loads a source, converts it to Markdown if needed, parses it and
// hands the result to a writer. Loader, Normalizer and Writer are required.
// Converter is required for HTML sources; MetaReader and Extractor are
// optional.
type Pipeline struct {
	Loader     mdparse.SourceLoader
	Normalizer mdparse.Normalizer
	MetaReader mdparse.MetaReader
	Extractor  mdparse.Extractor
	Converter  mdparse.Converter
	Writer     mdparse.DocumentWriter

	Options mdparse.ParseOptions
}

// Run builds the document at input and writes it to output in format.
func (p *Pipeline) Run(ctx context.Context, input, output string, format mdparse.Format) (*mdparse.Document, error) {
	doc, err := p.Build(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Writer.WriteDocument(ctx, output, format, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Build loads and parses the source at location without writing it.
func (p *Pipeline) Build(ctx context.Context, location string) (*mdparse.Document, error) {
	src, err := p.Loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := src.Text
	var base map[string]string
	if src.ContentType == mdparse.ContentHTML {
		text, base, err = p.convert(src.Text)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", src.Name, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	text = p.Normalizer.Normalize(text)

	doc := mdparse.ParseDocument(src.Name, text, base, p.Options)
	doc.ContentHash = ContentHash(text)
	return doc, nil
}

// convert turns an HTML page into Markdown and returns the page metadata
// that seeds the document's metadata.
func (p *Pipeline) convert(rawHTML string) (string, map[string]string, error) {
	if p.Converter == nil {
		return "", nil, mdparse.Errorf(mdparse.EINTERNAL, "no HTML converter configured")
	}

	meta := make(map[string]string)
	if p.MetaReader != nil {
		m, err := p.MetaReader.ReadMeta(rawHTML)
		if err != nil {
			return "", nil, err
		}
		for k, v := range m {
			meta[k] = v
		}
	}

	content := rawHTML
	if p.Extractor != nil {
		result, err := p.Extractor.Extract(rawHTML)
		if err != nil {
			return "", nil, err
		}
		if strings.TrimSpace(result.ContentHTML) != "" {
			content = result.ContentHTML
		}
		if _, ok := meta["title"]; !ok && result.Title != "" {
			meta["title"] = result.Title
		}
	}

	markdown, err := p.Converter.Convert(content)
	if err != nil {
		return "", nil, err
	}
	return markdown, meta, nil
}

// ContentHash returns the hex xxhash64 digest of text.
func ContentHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
