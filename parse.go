package mdparse

import "strings"

// ParseOptions configures Parse.
type ParseOptions struct {
	// ExtractCode nests fenced blocks found inside an open section under
	// that section's code blocks. When false the raw block lines, fence
	// markers included, become part of the section body.
	ExtractCode bool
}

// headingEntry is an open ancestor heading.
type headingEntry struct {
	level int
	title string
}

// accumulator is a section that body lines can be appended to.
type accumulator interface {
	Section
	body() *Body
}

func (s *HeadingSection) body() *Body { return &s.Body }
func (s *ContentSection) body() *Body { return &s.Body }

// parser holds the state of a single Parse call.
type parser struct {
	opts     ParseOptions
	lines    []string
	pos      int
	stack    []headingEntry
	sections []Section
	current  accumulator
}

// Parse converts Markdown text into an ordered sequence of sections.
// The text should already have its front matter removed.
//
// Headings open a new section immediately. Text before the first heading
// opens an "[Introduction]" content section. Blank lines never close a
// section. A fenced block with no open section becomes a standalone code
// section; an unterminated fence runs to the end of the input.
func Parse(markdown string, opts ParseOptions) []Section {
	p := &parser{
		opts:  opts,
		lines: splitLines(markdown),
	}
	return p.parse()
}

// splitLines splits text into lines. A trailing newline does not produce a
// final empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func (p *parser) parse() []Section {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		if level, title, ok := ParseHeading(line); ok {
			p.openHeading(level, title)
			p.pos++
			continue
		}

		if fence, ok := ParseFence(line); ok {
			p.consumeFence(fence)
			continue
		}

		p.pos++
		if strings.TrimSpace(line) == "" {
			continue
		}
		if p.current == nil {
			p.openContent()
		}
		p.current.body().appendLine(line)
	}
	return p.sections
}

func (p *parser) nextSequence() int {
	return len(p.sections) + 1
}

// parentPath joins the titles currently on the heading stack.
func (p *parser) parentPath() string {
	titles := make([]string, len(p.stack))
	for i, e := range p.stack {
		titles[i] = e.title
	}
	return strings.Join(titles, PathSeparator)
}

func (p *parser) openHeading(level int, title string) {
	for len(p.stack) > 0 && p.stack[len(p.stack)-1].level >= level {
		p.stack = p.stack[:len(p.stack)-1]
	}

	s := &HeadingSection{
		SectionInfo: SectionInfo{
			Sequence:   p.nextSequence(),
			Title:      title,
			ParentPath: p.parentPath(),
		},
		Level: level,
	}
	p.sections = append(p.sections, s)
	p.stack = append(p.stack, headingEntry{level: level, title: title})
	p.current = s
}

func (p *parser) openContent() {
	s := &ContentSection{
		SectionInfo: SectionInfo{
			Sequence:   p.nextSequence(),
			Title:      IntroductionTitle,
			ParentPath: p.parentPath(),
		},
	}
	p.sections = append(p.sections, s)
	p.current = s
}

// consumeFence reads a fenced block starting at the current line and
// advances past its closing fence, or to the end of input.
func (p *parser) consumeFence(fence Fence) {
	open := p.lines[p.pos]
	start := p.pos + 1
	end := start
	for end < len(p.lines) && !fence.Closes(p.lines[end]) {
		end++
	}
	code := p.lines[start:end]

	var closing []string
	if end < len(p.lines) {
		closing = p.lines[end : end+1]
		p.pos = end + 1
	} else {
		p.pos = end
	}

	switch {
	case p.current == nil:
		block := NewCodeBlock(fence.Language, fence.InfoString, code)
		p.sections = append(p.sections, &CodeSection{
			SectionInfo: SectionInfo{
				Sequence:   p.nextSequence(),
				Title:      CodeTitle(block.Language),
				ParentPath: p.parentPath(),
			},
			Block: block,
		})
	case p.opts.ExtractCode:
		p.current.body().addCodeBlock(NewCodeBlock(fence.Language, fence.InfoString, code))
	default:
		b := p.current.body()
		b.appendLine(open)
		for _, line := range code {
			b.appendLine(line)
		}
		for _, line := range closing {
			b.appendLine(line)
		}
	}
}
