// Package jsonschema validates JSON-Lines section streams against the
// section record schema.
package jsonschema

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/mdparse"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed record.schema.json
var recordSchema []byte

const schemaURL = "record.schema.json"

// maxLineBytes bounds a single JSONL line. Section bodies can be large.
const maxLineBytes = 64 << 20

// Issue is a single problem found in a stream.
type Issue struct {
	// Line is the 1-based line number the issue was found on.
	Line int

	// Location is the JSON pointer of the offending value, or empty when
	// the issue concerns the whole line.
	Location string

	Message string
}

func (i Issue) String() string {
	if i.Location == "" || i.Location == "#" {
		return fmt.Sprintf("%d: %s", i.Line, i.Message)
	}
	return fmt.Sprintf("%d: %s: %s", i.Line, i.Location, i.Message)
}

// Report summarizes a checked stream.
type Report struct {
	Lines  int
	Issues []Issue

	// Truncated is set when checking stopped at the issue limit.
	Truncated bool
}

// Validator checks section records against the compiled schema.
type Validator struct {
	schema    *jsonschema.Schema
	maxIssues int
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxIssues stops checking a stream after n issues. Zero means no limit.
func WithMaxIssues(n int) Option {
	return func(v *Validator) {
		v.maxIssues = n
	}
}

// NewValidator compiles the record schema.
func NewValidator(opts ...Option) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(recordSchema)); err != nil {
		return nil, mdparse.Errorf(mdparse.EINTERNAL, "loading record schema: %v", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, mdparse.Errorf(mdparse.EINTERNAL, "compiling record schema: %v", err)
	}

	v := &Validator{schema: schema}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// ValidateRecord checks a single JSON object. It returns the schema
// violations found, each with Line set to zero.
func (v *Validator) ValidateRecord(data []byte) []Issue {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []Issue{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if err := v.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return collectIssues(verr)
		}
		return []Issue{{Message: err.Error()}}
	}
	return nil
}

// CheckStream validates every line of r. Besides the schema, it checks that
// sequence numbers count up from 1 without gaps. Empty lines are reported.
func (v *Validator) CheckStream(r io.Reader) (*Report, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	report := &Report{}
	add := func(issue Issue) bool {
		report.Issues = append(report.Issues, issue)
		if v.maxIssues > 0 && len(report.Issues) >= v.maxIssues {
			report.Truncated = true
			return false
		}
		return true
	}

	want := 1
	for scanner.Scan() {
		report.Lines++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			if !add(Issue{Line: report.Lines, Message: "empty line"}) {
				return report, nil
			}
			continue
		}

		issues := v.ValidateRecord(line)
		for _, issue := range issues {
			issue.Line = report.Lines
			if !add(issue) {
				return report, nil
			}
		}
		if len(issues) > 0 {
			want++
			continue
		}

		var rec struct {
			Sequence int `json:"sequence_number"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, mdparse.Errorf(mdparse.EINTERNAL, "line %d: %v", report.Lines, err)
		}
		if rec.Sequence != want {
			msg := fmt.Sprintf("sequence_number is %d, want %d", rec.Sequence, want)
			if !add(Issue{Line: report.Lines, Location: "/sequence_number", Message: msg}) {
				return report, nil
			}
		}
		want = rec.Sequence + 1
	}
	if err := scanner.Err(); err != nil {
		return nil, mdparse.Errorf(mdparse.EIO, "reading stream: %v", err)
	}
	return report, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
