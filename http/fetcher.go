// Package http provides an HTTP-based implementation of mdparse.Fetcher
// for pages that don't require JavaScript rendering.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/mdparse"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a fetched page.
const DefaultMaxBytes = 20 << 20

// userAgent identifies the fetcher to servers.
const userAgent = "mdparse/1.0 (+https://github.com/fwojciec/mdparse)"

// Ensure Fetcher implements mdparse.Fetcher at compile time.
var _ mdparse.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests.
// The response body is decoded to UTF-8 using the charset declared in the
// Content-Type header or the page's meta tags.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes limits how much of a response body is read.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{
		Timeout: f.timeout,
	}
	return f
}

// Fetch retrieves the page at url as UTF-8 text.
// A missing page returns ENOTFOUND; other non-200 responses return EIO.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", mdparse.Errorf(mdparse.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", mdparse.Errorf(mdparse.EIO, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", mdparse.Errorf(mdparse.ENOTFOUND, "page %s not found", url)
	case resp.StatusCode != http.StatusOK:
		return "", mdparse.Errorf(mdparse.EIO, "HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", mdparse.Errorf(mdparse.EIO, "reading %s: %v", url, err)
	}
	if int64(len(raw)) > f.maxBytes {
		return "", mdparse.Errorf(mdparse.EINVALID, "page %s exceeds %d bytes", url, f.maxBytes)
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", mdparse.Errorf(mdparse.EINVALID, "decoding %s: %v", url, err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", mdparse.Errorf(mdparse.EIO, "decoding %s: %v", url, err)
	}

	return string(data), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
