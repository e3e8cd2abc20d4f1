package mdparse

import (
	"context"
	"strings"
)

// Metadata keys derived by the parser rather than read from front matter.
const (
	MetaSourceFile   = "source_file"
	MetaContentHash  = "content_hash"
	MetaSectionCount = "section_count"
	MetaTotalChars   = "total_chars"
)

// Document is the parsed form of a Markdown source.
type Document struct {
	// Source identifies where the document came from (file name or URL).
	Source string

	// Metadata holds the flat front-matter mapping.
	Metadata map[string]string

	// ContentHash is a hash of the normalized text the sections came from.
	ContentHash string

	Sections []Section
}

// ParseDocument splits front matter from text and parses the remainder.
// Front-matter values override any entries already present in base.
func ParseDocument(source, text string, base map[string]string, opts ParseOptions) *Document {
	front, body := SplitFrontMatter(text)

	meta := make(map[string]string, len(base)+len(front))
	for k, v := range base {
		meta[k] = v
	}
	for k, v := range front {
		meta[k] = v
	}

	return &Document{
		Source:   source,
		Metadata: meta,
		Sections: Parse(body, opts),
	}
}

// TotalChars sums the character counts of all sections.
func (d *Document) TotalChars() int {
	n := 0
	for _, s := range d.Sections {
		n += s.CharCount()
	}
	return n
}

// Text returns the flattened text view of the document's sections.
func (d *Document) Text() string {
	return ReconstructText(d.Sections)
}

// ReconstructText renders sections back into Markdown, separated by blank
// lines. Headings lose any closing '#' run and code blocks are always fenced
// with backticks, so the result is a normalized view rather than the source.
func ReconstructText(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		switch s := s.(type) {
		case *HeadingSection:
			part := strings.Repeat("#", s.Level) + " " + s.Title
			if s.Text != "" {
				part += "\n" + s.Text
			}
			parts = append(parts, part)
		case *ContentSection:
			parts = append(parts, s.Text)
		case *CodeSection:
			parts = append(parts, "```"+s.Block.Language+"\n"+s.Block.Code+"\n```")
		}
	}
	return strings.Join(parts, "\n\n")
}

// DocumentWriter persists an encoded document.
type DocumentWriter interface {
	// WriteDocument encodes doc in the given format and stores it at path.
	// Returns EIO if the output cannot be written.
	WriteDocument(ctx context.Context, path string, format Format, doc *Document) error
}
