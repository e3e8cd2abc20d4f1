package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/mdparse"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ mdparse.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main content out of an HTML
// page. Links and tables are kept so that the Markdown conversion has
// something to work with.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL the page was fetched from. Trafilatura uses it to
// resolve relative links and fill in metadata.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the page title and the boilerplate-free content HTML.
func (e *Extractor) Extract(rawHTML string) (*mdparse.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, mdparse.Errorf(mdparse.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		OriginalURL:     e.pageURL,
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeLinks:    true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, mdparse.Errorf(mdparse.EINVALID, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, mdparse.Errorf(mdparse.EINTERNAL, "rendering content: %v", err)
		}
	}

	return &mdparse.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
