package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/mdparse"
	"github.com/go-shiori/go-readability"
)

var _ mdparse.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability. It is the lighter of the two extractors
// and tends to do better on single-article pages.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the URL relative links are resolved against.
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

// Extract returns the article title and its cleaned HTML.
func (e *Extractor) Extract(rawHTML string) (*mdparse.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, mdparse.Errorf(mdparse.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, mdparse.Errorf(mdparse.EINVALID, "extracting article: %v", err)
	}

	return &mdparse.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
