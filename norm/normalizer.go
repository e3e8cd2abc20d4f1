// Package norm provides text normalization backed by golang.org/x/text.
package norm

import (
	"strings"

	"github.com/fwojciec/mdparse"
	"golang.org/x/text/unicode/norm"
)

// Ensure Normalizer implements mdparse.Normalizer at compile time.
var _ mdparse.Normalizer = (*Normalizer)(nil)

// maxBlankLines is the longest run of blank lines kept in normalized text.
const maxBlankLines = 2

var invisibles = strings.NewReplacer(
	"\ufeff", "", // byte order mark
	"\u200b", "", // zero width space
	"\u00a0", " ", // no-break space
)

// Normalizer cleans up text before it is parsed.
type Normalizer struct {
	form norm.Form
}

// NewNormalizer creates a Normalizer that composes text to NFC.
func NewNormalizer() *Normalizer {
	return &Normalizer{form: norm.NFC}
}

// Normalize composes the text to NFC, converts line endings to "\n",
// trims trailing whitespace from every line and collapses long runs of
// blank lines.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = invisibles.Replace(text)
	text = n.form.String(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > maxBlankLines {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
