package mock

import (
	"context"

	"github.com/fwojciec/mdparse"
)

var (
	_ mdparse.SourceLoader = (*SourceLoader)(nil)
	_ mdparse.Decoder      = (*Decoder)(nil)
	_ mdparse.Normalizer   = (*Normalizer)(nil)
)

// SourceLoader is a mock implementation of mdparse.SourceLoader.
type SourceLoader struct {
	LoadFn func(ctx context.Context, location string) (*mdparse.Source, error)
}

func (l *SourceLoader) Load(ctx context.Context, location string) (*mdparse.Source, error) {
	return l.LoadFn(ctx, location)
}

// Decoder is a mock implementation of mdparse.Decoder.
type Decoder struct {
	DecodeFn func(data []byte) (string, string, error)
}

func (d *Decoder) Decode(data []byte) (string, string, error) {
	return d.DecodeFn(data)
}

// Normalizer is a mock implementation of mdparse.Normalizer.
type Normalizer struct {
	NormalizeFn func(text string) string
}

func (n *Normalizer) Normalize(text string) string {
	return n.NormalizeFn(text)
}
