//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/mdparse"
	"github.com/fwojciec/mdparse/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements mdparse.Fetcher.
var _ mdparse.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	t.Run("returns rendered HTML", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><div id="app"></div>
<script>document.getElementById("app").innerHTML = "<h1>Rendered</h1>";</script>
</body></html>`))
		}))
		defer srv.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Rendered</h1>")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, "http://127.0.0.1:1")

		require.ErrorIs(t, err, context.Canceled)
	})
}
