// Package chardet decodes source bytes into UTF-8 text, detecting the
// character set with github.com/gogs/chardet when the input is not UTF-8.
package chardet

import (
	"bytes"
	"unicode/utf8"

	"github.com/fwojciec/mdparse"
	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// Ensure Decoder implements mdparse.Decoder at compile time.
var _ mdparse.Decoder = (*Decoder)(nil)

// EncodingUTF8 is reported for input that is already valid UTF-8.
const EncodingUTF8 = "UTF-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder converts raw bytes to UTF-8 text.
type Decoder struct {
	detector      *chardet.Detector
	minConfidence int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMinConfidence rejects detections below the given confidence (0-100).
func WithMinConfidence(c int) Option {
	return func(d *Decoder) {
		d.minConfidence = c
	}
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{detector: chardet.NewTextDetector()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode returns data as UTF-8 text. Valid UTF-8 passes through with any
// byte order mark removed; anything else is decoded from the detected
// character set.
func (d *Decoder) Decode(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	result, err := d.detector.DetectBest(data)
	if err != nil {
		return "", "", mdparse.Errorf(mdparse.EINVALID, "cannot detect text encoding: %v", err)
	}
	if result.Confidence < d.minConfidence {
		return "", "", mdparse.Errorf(mdparse.EINVALID, "text encoding %s detected with low confidence (%d)", result.Charset, result.Confidence)
	}

	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		return "", "", mdparse.Errorf(mdparse.EINVALID, "unsupported text encoding %q", result.Charset)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", mdparse.Errorf(mdparse.EINVALID, "decoding %s text: %v", result.Charset, err)
	}
	return string(out), result.Charset, nil
}
