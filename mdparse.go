// Package mdparse converts Markdown documents into ordered, typed sections
// for retrieval-augmented-generation ingestion. It tracks the heading
// hierarchy and front-matter metadata of a document and serializes the
// result as flat text, a JSON document, or a JSON-Lines stream.
//
// This package contains domain types, interfaces and the parser itself,
// following Ben Johnson's Standard Package Layout. Implementations of the
// collaborators live in subdirectories named after their primary dependency
// (e.g., chardet/, htmltomarkdown/, trafilatura/).
package mdparse
