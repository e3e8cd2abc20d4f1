package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mdparse"
	"github.com/fwojciec/mdparse/jsonschema"
)

// ErrInvalid is returned by Run when at least one file has issues.
var ErrInvalid = errors.New("validation failed")

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, ErrInvalid) {
			fmt.Fprintf(os.Stderr, "error: %s\n", mdparse.ErrorMessage(err))
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	MaxErrors int      `default:"20" help:"Stop reporting a file after this many issues (0 for no limit)"`
	Files     []string `arg:"" required:"" type:"existingfile" help:"JSONL files to check"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jsonlcheck"),
		kong.Description("Validate mdparse JSONL section streams"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	validator, err := jsonschema.NewValidator(jsonschema.WithMaxIssues(cli.MaxErrors))
	if err != nil {
		return err
	}

	var lines, issues, bad int
	for _, path := range cli.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		report, err := checkFile(validator, path)
		if err != nil {
			return err
		}

		lines += report.Lines
		issues += len(report.Issues)
		if len(report.Issues) > 0 {
			bad++
		}
		for _, issue := range report.Issues {
			fmt.Fprintf(stdout, "%s:%s\n", path, issue)
		}
		if report.Truncated {
			fmt.Fprintf(stdout, "%s: too many issues, stopped checking\n", path)
		}
	}

	fmt.Fprintf(stdout, "checked %d file(s), %d line(s): %d issue(s) in %d file(s)\n", len(cli.Files), lines, issues, bad)
	if issues > 0 {
		return ErrInvalid
	}
	return nil
}

func checkFile(v *jsonschema.Validator, path string) (*jsonschema.Report, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, mdparse.Errorf(mdparse.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return nil, mdparse.Errorf(mdparse.EIO, "opening %q: %v", path, err)
	}
	defer f.Close()

	return v.CheckStream(f)
}
