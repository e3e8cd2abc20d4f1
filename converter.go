package mdparse

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}

// MetaReader reads document metadata from an HTML page.
type MetaReader interface {
	// ReadMeta returns page metadata such as title and description,
	// keyed the way front matter would be.
	ReadMeta(html string) (map[string]string, error)
}
