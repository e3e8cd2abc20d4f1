package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/mdparse"
	"github.com/fwojciec/mdparse/mock"
	mdslog "github.com/fwojciec/mdparse/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs the loaded source", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SourceLoader{
			LoadFn: func(_ context.Context, location string) (*mdparse.Source, error) {
				return &mdparse.Source{
					Location:    location,
					Name:        "readme.md",
					Text:        "# Hi\n",
					Encoding:    "UTF-8",
					ContentType: mdparse.ContentMarkdown,
				}, nil
			},
		}

		src, err := mdslog.NewLoggingLoader(inner, logger).Load(context.Background(), "docs/readme.md")

		require.NoError(t, err)
		assert.Equal(t, "readme.md", src.Name)
		output := buf.String()
		assert.Contains(t, output, "msg=load")
		assert.Contains(t, output, "location=docs/readme.md")
		assert.Contains(t, output, "type=markdown")
		assert.Contains(t, output, "encoding=UTF-8")
		assert.Contains(t, output, "bytes=5")
	})

	t.Run("logs errors without source fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SourceLoader{
			LoadFn: func(context.Context, string) (*mdparse.Source, error) {
				return nil, mdparse.Errorf(mdparse.ENOTFOUND, "file not found: missing.md")
			},
		}

		_, err := mdslog.NewLoggingLoader(inner, logger).Load(context.Background(), "missing.md")

		require.Error(t, err)
		output := buf.String()
		assert.NotContains(t, output, "encoding=")
		assert.Contains(t, output, `err="file not found: missing.md"`)
	})
}
