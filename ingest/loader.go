package ingest

import (
	"context"

	"github.com/fwojciec/mdparse"
)

var (
	_ mdparse.SourceLoader = (*FetchLoader)(nil)
	_ mdparse.SourceLoader = (*RouteLoader)(nil)
)

// FetchLoader adapts a Fetcher to the SourceLoader interface.
type FetchLoader struct {
	fetcher mdparse.Fetcher
}

// NewFetchLoader creates a new FetchLoader.
func NewFetchLoader(fetcher mdparse.Fetcher) *FetchLoader {
	return &FetchLoader{fetcher: fetcher}
}

// Load fetches url. Fetchers return decoded text, so the source is always
// reported as UTF-8.
func (l *FetchLoader) Load(ctx context.Context, url string) (*mdparse.Source, error) {
	text, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return &mdparse.Source{
		Location:    url,
		Name:        url,
		Text:        text,
		Encoding:    "UTF-8",
		ContentType: mdparse.DetectContentType(url),
	}, nil
}

// RouteLoader sends http(s) locations to Remote and everything else to
// Local.
type RouteLoader struct {
	Local  mdparse.SourceLoader
	Remote mdparse.SourceLoader
}

// Load delegates to the loader responsible for location.
func (l *RouteLoader) Load(ctx context.Context, location string) (*mdparse.Source, error) {
	if mdparse.IsURL(location) {
		if l.Remote == nil {
			return nil, mdparse.Errorf(mdparse.EINVALID, "cannot load %s: URL inputs are not supported", location)
		}
		return l.Remote.Load(ctx, location)
	}
	return l.Local.Load(ctx, location)
}
