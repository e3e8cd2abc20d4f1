package mdparse

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// ContentType is the markup language of a source.
type ContentType string

// ContentType constants.
const (
	ContentMarkdown ContentType = "markdown"
	ContentHTML     ContentType = "html"
)

// Source is a raw document loaded for parsing.
type Source struct {
	// Location is the path or URL the source was loaded from.
	Location string

	// Name identifies the source in output metadata: the file's base name,
	// or the URL for fetched pages.
	Name string

	// Text is the decoded UTF-8 content.
	Text string

	// Encoding is the character set the content was decoded from.
	Encoding string

	ContentType ContentType
}

// SourceLoader loads a source from a location.
type SourceLoader interface {
	// Load reads the source at location.
	// Returns ENOTFOUND if nothing exists there.
	Load(ctx context.Context, location string) (*Source, error)
}

// Decoder converts raw bytes into UTF-8 text.
type Decoder interface {
	// Decode returns the text and the name of the encoding it was read as.
	// Returns EINVALID if the encoding cannot be determined.
	Decode(data []byte) (text string, encoding string, err error)
}

// Normalizer cleans up text before it is parsed.
type Normalizer interface {
	Normalize(text string) string
}

// IsURL reports whether location is an http or https URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// DetectContentType infers the content type of a location from its
// extension. Local files default to Markdown; URLs default to HTML unless
// they name a Markdown or text file.
func DetectContentType(location string) ContentType {
	p := location
	if IsURL(location) {
		u, err := url.Parse(location)
		if err != nil {
			return ContentHTML
		}
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown", ".txt":
		return ContentMarkdown
	case ".html", ".htm", ".xhtml":
		return ContentHTML
	}
	if IsURL(location) {
		return ContentHTML
	}
	return ContentMarkdown
}
