package mdparse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Format is an output encoding for a parsed document.
type Format string

// Format constants.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatJSONL:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown output format %q (want text, json or jsonl)", s)
}

// Encode writes doc to w in format f.
func (f Format) Encode(w io.Writer, doc *Document) error {
	switch f {
	case FormatText:
		return EncodeText(w, doc)
	case FormatJSON:
		return EncodeJSON(w, doc)
	case FormatJSONL:
		return EncodeJSONL(w, doc)
	}
	return Errorf(EINVALID, "unknown output format %q", string(f))
}

// EncodeText writes the flattened text view of doc verbatim, without a
// trailing newline.
func EncodeText(w io.Writer, doc *Document) error {
	_, err := io.WriteString(w, doc.Text())
	return err
}

// jsonDocument is the top-level shape of the JSON encoding.
type jsonDocument struct {
	Metadata map[string]any `json:"metadata"`
	Sections []Record       `json:"sections"`
}

// EncodeJSON writes doc as a single JSON object holding a metadata object and
// the section array. The metadata merges the front matter with the derived
// source_file, content_hash, section_count and total_chars fields.
func EncodeJSON(w io.Writer, doc *Document) error {
	meta := make(map[string]any, len(doc.Metadata)+4)
	for k, v := range doc.Metadata {
		meta[k] = v
	}
	meta[MetaSourceFile] = doc.Source
	if doc.ContentHash != "" {
		meta[MetaContentHash] = doc.ContentHash
	}
	meta[MetaSectionCount] = len(doc.Sections)
	meta[MetaTotalChars] = doc.TotalChars()

	out := jsonDocument{
		Metadata: meta,
		Sections: records(doc.Sections),
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// DecodeJSON reads a document written by EncodeJSON. Derived metadata is
// taken back out of the metadata object; counts are recomputed.
func DecodeJSON(r io.Reader) (*Document, error) {
	var in struct {
		Metadata map[string]json.RawMessage `json:"metadata"`
		Sections []Record                   `json:"sections"`
	}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, Errorf(EINVALID, "decoding JSON document: %v", err)
	}

	doc := &Document{Metadata: make(map[string]string)}
	for k, raw := range in.Metadata {
		if k == MetaSectionCount || k == MetaTotalChars {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, Errorf(EINVALID, "metadata field %q: want string", k)
		}
		switch k {
		case MetaSourceFile:
			doc.Source = v
		case MetaContentHash:
			doc.ContentHash = v
		default:
			doc.Metadata[k] = v
		}
	}

	doc.Sections = make([]Section, 0, len(in.Sections))
	for _, rec := range in.Sections {
		s, err := rec.Section()
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc, nil
}

// recordFields are the keys a Record serializes to. Front-matter keys that
// collide with them are dropped from JSONL lines.
var recordFields = map[string]bool{
	"sequence_number":    true,
	"kind":               true,
	"level":              true,
	"title":              true,
	"parent_path":        true,
	"body":               true,
	"language":           true,
	"info_string":        true,
	"nested_code_blocks": true,
	"char_count":         true,
	"line_count":         true,
}

// EncodeJSONL writes one JSON object per section. Each line carries the
// source_file, the non-empty front-matter fields and the section's fields.
func EncodeJSONL(w io.Writer, doc *Document) error {
	keys := make([]string, 0, len(doc.Metadata))
	for k, v := range doc.Metadata {
		if v == "" || k == MetaSourceFile || recordFields[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, s := range doc.Sections {
		line, err := jsonlLine(doc, keys, NewRecord(s))
		if err != nil {
			return err
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func jsonlLine(doc *Document, keys []string, rec Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeField(&buf, MetaSourceFile, doc.Source); err != nil {
		return nil, err
	}
	for _, k := range keys {
		buf.WriteByte(',')
		if err := writeField(&buf, k, doc.Metadata[k]); err != nil {
			return nil, err
		}
	}

	body, err := marshal(rec)
	if err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	buf.Write(body[1:])
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key, value string) error {
	k, err := marshal(key)
	if err != nil {
		return err
	}
	v, err := marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// marshal encodes v as compact JSON without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func records(sections []Section) []Record {
	out := make([]Record, 0, len(sections))
	for _, s := range sections {
		out = append(out, NewRecord(s))
	}
	return out
}
