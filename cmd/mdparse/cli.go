package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mdparse"
	"github.com/fwojciec/mdparse/ingest"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input       string        `short:"i" required:"" help:"Markdown or HTML file, or an http(s) URL"`
	Output      string        `short:"o" required:"" help:"Output file path"`
	Format      string        `short:"f" enum:"text,json,jsonl" default:"text" env:"MDPARSE_FORMAT" help:"Output format (text, json, jsonl)"`
	ExtractCode bool          `help:"Nest fenced code blocks under their enclosing section"`
	Verbose     bool          `short:"v" help:"Print progress messages"`
	Extractor   string        `enum:"trafilatura,readability,none" default:"trafilatura" env:"MDPARSE_EXTRACTOR" help:"Main-content extractor for HTML inputs"`
	Browser     bool          `help:"Fetch URL inputs with headless Chrome"`
	Timeout     time.Duration `default:"10s" env:"MDPARSE_TIMEOUT" help:"Fetch timeout for URL inputs"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Pipeline *ingest.Pipeline
}

// ParseCmd parses one input and writes the result.
type ParseCmd struct {
	Input  string
	Output string
	Format mdparse.Format
}

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	deps.Logger.Info("parse", "input", c.Input, "output", c.Output, "format", string(c.Format))

	doc, err := deps.Pipeline.Run(deps.Ctx, c.Input, c.Output, c.Format)
	if err != nil {
		return err
	}

	deps.Logger.Info("done",
		"sections", len(doc.Sections),
		"chars", doc.TotalChars(),
		"hash", doc.ContentHash,
	)
	return nil
}
