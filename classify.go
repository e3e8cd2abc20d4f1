package mdparse

import (
	"regexp"
	"strings"
)

// DefaultLanguage is the language of a fenced block without an info string.
const DefaultLanguage = "text"

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
	unorderedRe   = regexp.MustCompile(`^([ \t]*)[-*+][ \t]+(.*)$`)
	orderedRe     = regexp.MustCompile(`^([ \t]*)\d+\.[ \t]+(.*)$`)
	fenceLangRe   = regexp.MustCompile(`^\w+`)
	fenceMarkerRe = regexp.MustCompile("^(`{3,}|~{3,})")
)

// ParseHeading reports whether line is an ATX heading and returns its level
// and title. A closing run of '#' characters is not part of the title.
func ParseHeading(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, "", false
	}
	title = strings.TrimSpace(m[2])
	if strings.Trim(title, "#") == "" {
		return 0, "", false
	}
	return len(m[1]), title, true
}

// ListKind distinguishes unordered and ordered list items.
type ListKind string

// ListKind constants.
const (
	ListUnordered ListKind = "unordered"
	ListOrdered   ListKind = "ordered"
)

// ListItem is a classified list line.
type ListItem struct {
	Kind   ListKind
	Indent int
	Text   string
}

// ParseListItem reports whether line is a list item. Indent counts leading
// spaces, with a tab counting as four.
func ParseListItem(line string) (ListItem, bool) {
	if m := unorderedRe.FindStringSubmatch(line); m != nil {
		return ListItem{Kind: ListUnordered, Indent: indentWidth(m[1]), Text: m[2]}, true
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		return ListItem{Kind: ListOrdered, Indent: indentWidth(m[1]), Text: m[2]}, true
	}
	return ListItem{}, false
}

func indentWidth(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

// Fence describes the opening line of a fenced code block.
type Fence struct {
	// Marker is the run of backticks or tildes that opened the block.
	Marker     string
	Language   string
	InfoString string
}

// Closes reports whether line closes a block opened by f. The whole opening
// run must prefix the line, so a four-backtick block can hold a three-backtick
// fence; a bare three-character prefix match would close it early.
func (f Fence) Closes(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), f.Marker)
}

// ParseFence reports whether line opens a fenced code block.
func ParseFence(line string) (Fence, bool) {
	trimmed := strings.TrimSpace(line)
	marker := fenceMarkerRe.FindString(trimmed)
	if marker == "" {
		return Fence{}, false
	}

	rest := strings.TrimSpace(trimmed[len(marker):])
	lang := fenceLangRe.FindString(rest)
	info := strings.TrimSpace(rest[len(lang):])
	if lang == "" {
		lang = DefaultLanguage
	}
	return Fence{Marker: marker, Language: lang, InfoString: info}, true
}
