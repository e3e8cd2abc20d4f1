package mdparse

import (
	"strings"
	"unicode/utf8"
)

// SectionKind identifies the variant of a Section.
type SectionKind string

// SectionKind constants.
const (
	KindHeading   SectionKind = "heading"
	KindContent   SectionKind = "content"
	KindCodeBlock SectionKind = "code_block"
)

// Synthetic titles for sections that have no heading of their own.
const (
	IntroductionTitle = "[Introduction]"
	codeTitlePrefix   = "[Code: "
)

// PathSeparator joins ancestor heading titles in a section's parent path.
const PathSeparator = " > "

// CodeTitle returns the synthetic title of a standalone code block.
func CodeTitle(language string) string {
	return codeTitlePrefix + language + "]"
}

// Section is one emitted unit of structured output. It is implemented by
// *HeadingSection, *ContentSection and *CodeSection.
type Section interface {
	// Kind reports which variant the section is.
	Kind() SectionKind

	// Info returns the fields shared by every variant.
	Info() SectionInfo

	// CharCount returns the number of characters in the section's text.
	CharCount() int
}

// SectionInfo holds the fields common to all sections.
type SectionInfo struct {
	Sequence   int
	Title      string
	ParentPath string
}

// Body is the text accumulated into a heading or content section.
type Body struct {
	Text       string
	LineCount  int
	CodeBlocks []CodeBlock
}

// appendLine adds a line to the body, joining with a newline.
func (b *Body) appendLine(line string) {
	if b.LineCount > 0 {
		b.Text += "\n"
	}
	b.Text += line
	b.LineCount++
}

// addCodeBlock nests an extracted code block under the body.
func (b *Body) addCodeBlock(block CodeBlock) {
	b.CodeBlocks = append(b.CodeBlocks, block)
}

// HeadingSection is a Markdown heading and the body text that follows it.
type HeadingSection struct {
	SectionInfo
	Level int
	Body
}

func (s *HeadingSection) Kind() SectionKind { return KindHeading }
func (s *HeadingSection) Info() SectionInfo { return s.SectionInfo }
func (s *HeadingSection) CharCount() int    { return utf8.RuneCountInString(s.Text) }

// ContentSection is body text that appears before any heading.
type ContentSection struct {
	SectionInfo
	Body
}

func (s *ContentSection) Kind() SectionKind { return KindContent }
func (s *ContentSection) Info() SectionInfo { return s.SectionInfo }
func (s *ContentSection) CharCount() int    { return utf8.RuneCountInString(s.Text) }

// CodeSection is a fenced code block with no enclosing section.
type CodeSection struct {
	SectionInfo
	Block CodeBlock
}

func (s *CodeSection) Kind() SectionKind { return KindCodeBlock }
func (s *CodeSection) Info() SectionInfo { return s.SectionInfo }
func (s *CodeSection) CharCount() int    { return s.Block.CharCount }

// CodeBlock is a fenced code block extracted from a document.
type CodeBlock struct {
	Language   string `json:"language"`
	InfoString string `json:"info_string"`
	Code       string `json:"code"`
	LineCount  int    `json:"line_count"`
	CharCount  int    `json:"char_count"`
}

// NewCodeBlock builds a code block from the lines between its fences.
func NewCodeBlock(language, infoString string, lines []string) CodeBlock {
	if language == "" {
		language = DefaultLanguage
	}
	code := strings.Join(lines, "\n")
	return CodeBlock{
		Language:   language,
		InfoString: infoString,
		Code:       code,
		LineCount:  len(lines),
		CharCount:  utf8.RuneCountInString(code),
	}
}

// Record is the flat serialized shape of a section.
type Record struct {
	SequenceNumber   int         `json:"sequence_number"`
	Kind             SectionKind `json:"kind"`
	Level            int         `json:"level"`
	Title            string      `json:"title"`
	ParentPath       string      `json:"parent_path"`
	Body             string      `json:"body"`
	Language         string      `json:"language,omitempty"`
	InfoString       string      `json:"info_string,omitempty"`
	NestedCodeBlocks []CodeBlock `json:"nested_code_blocks,omitempty"`
	CharCount        int         `json:"char_count"`
	LineCount        int         `json:"line_count"`
}

// NewRecord flattens a section into its serialized shape.
func NewRecord(s Section) Record {
	info := s.Info()
	r := Record{
		SequenceNumber: info.Sequence,
		Kind:           s.Kind(),
		Title:          info.Title,
		ParentPath:     info.ParentPath,
		CharCount:      s.CharCount(),
	}

	switch s := s.(type) {
	case *HeadingSection:
		r.Level = s.Level
		r.Body = s.Text
		r.LineCount = s.LineCount
		r.NestedCodeBlocks = s.CodeBlocks
	case *ContentSection:
		r.Body = s.Text
		r.LineCount = s.LineCount
		r.NestedCodeBlocks = s.CodeBlocks
	case *CodeSection:
		r.Body = s.Block.Code
		r.Language = s.Block.Language
		r.InfoString = s.Block.InfoString
		r.LineCount = s.Block.LineCount
	}
	return r
}

// Section rebuilds the section variant described by the record.
// Derived counts are recomputed from the record's text.
func (r Record) Section() (Section, error) {
	info := SectionInfo{
		Sequence:   r.SequenceNumber,
		Title:      r.Title,
		ParentPath: r.ParentPath,
	}

	switch r.Kind {
	case KindHeading:
		if r.Level < 1 || r.Level > 6 {
			return nil, Errorf(EINVALID, "section %d: heading level %d out of range", r.SequenceNumber, r.Level)
		}
		return &HeadingSection{
			SectionInfo: info,
			Level:       r.Level,
			Body:        Body{Text: r.Body, LineCount: r.LineCount, CodeBlocks: r.NestedCodeBlocks},
		}, nil
	case KindContent:
		return &ContentSection{
			SectionInfo: info,
			Body:        Body{Text: r.Body, LineCount: r.LineCount, CodeBlocks: r.NestedCodeBlocks},
		}, nil
	case KindCodeBlock:
		language := r.Language
		if language == "" {
			language = DefaultLanguage
		}
		return &CodeSection{
			SectionInfo: info,
			Block: CodeBlock{
				Language:   language,
				InfoString: r.InfoString,
				Code:       r.Body,
				LineCount:  r.LineCount,
				CharCount:  utf8.RuneCountInString(r.Body),
			},
		}, nil
	default:
		return nil, Errorf(EINVALID, "section %d: unknown kind %q", r.SequenceNumber, r.Kind)
	}
}
