package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mdparse"
	"github.com/fwojciec/mdparse/chardet"
	"github.com/fwojciec/mdparse/fs"
	"github.com/fwojciec/mdparse/goquery"
	"github.com/fwojciec/mdparse/htmltomarkdown"
	mdhttp "github.com/fwojciec/mdparse/http"
	"github.com/fwojciec/mdparse/ingest"
	"github.com/fwojciec/mdparse/norm"
	"github.com/fwojciec/mdparse/readability"
	"github.com/fwojciec/mdparse/rod"
	mdslog "github.com/fwojciec/mdparse/slog"
	"github.com/fwojciec/mdparse/trafilatura"
	"github.com/joho/godotenv"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 130
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	code := ExitCode(err)
	if err != nil && ctx.Err() != nil {
		code = ExitInterrupted
	}
	stop()

	if code == ExitInterrupted {
		fmt.Fprintln(os.Stderr, "interrupted")
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", ErrorText(err))
	}
	os.Exit(code)
}

// ExitCode maps the result of Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	return ExitError
}

// ErrorText returns the message shown to the user for err.
func ErrorText(err error) string {
	var e *mdparse.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the HTTP and browser fetchers used for URL inputs.
	// Set before calling Run().
	Fetcher mdparse.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mdparse"),
		kong.Description("Split a Markdown document into hierarchical sections"),
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

	format, err := mdparse.ParseFormat(cli.Format)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(cli.Verbose, stdout),
	}

	pipeline, closeFn, err := m.wire(cli, deps.Logger)
	if err != nil {
		return err
	}
	defer closeFn()
	deps.Pipeline = pipeline

	cmd := &ParseCmd{
		Input:  cli.Input,
		Output: cli.Output,
		Format: format,
	}
	return cmd.Run(deps)
}

// wire builds the pipeline for the parsed flags. The returned function
// releases any fetcher that was started.
func (m *Main) wire(cli *CLI, logger *slog.Logger) (*ingest.Pipeline, func(), error) {
	closeFn := func() {}

	loader := &ingest.RouteLoader{
		Local: fs.NewLoader(chardet.NewDecoder()),
	}

	var pageURL *url.URL
	if mdparse.IsURL(cli.Input) {
		u, err := url.Parse(cli.Input)
		if err != nil {
			return nil, nil, mdparse.Errorf(mdparse.EINVALID, "invalid input URL %q: %v", cli.Input, err)
		}
		pageURL = u

		fetcher, err := m.newFetcher(cli.Browser, cli.Timeout)
		if err != nil {
			return nil, nil, err
		}
		logged := mdslog.NewLoggingFetcher(fetcher, logger)
		closeFn = func() { _ = logged.Close() }
		loader.Remote = ingest.NewFetchLoader(logged)
	}

	var convOpts []htmltomarkdown.Option
	if pageURL != nil {
		convOpts = append(convOpts, htmltomarkdown.WithDomain(pageURL.Scheme+"://"+pageURL.Host))
	}

	return &ingest.Pipeline{
		Loader:     mdslog.NewLoggingLoader(loader, logger),
		Normalizer: norm.NewNormalizer(),
		MetaReader: goquery.NewMetaReader(),
		Extractor:  newExtractor(cli.Extractor, pageURL),
		Converter:  mdslog.NewLoggingConverter(htmltomarkdown.NewConverter(convOpts...), logger),
		Writer:     mdslog.NewLoggingWriter(fs.NewWriter(), logger),
		Options:    mdparse.ParseOptions{ExtractCode: cli.ExtractCode},
	}, closeFn, nil
}

func (m *Main) newFetcher(browser bool, timeout time.Duration) (mdparse.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if !browser {
		return mdhttp.NewFetcher(mdhttp.WithTimeout(timeout)), nil
	}
	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	return fetcher, nil
}

func newExtractor(name string, pageURL *url.URL) mdparse.Extractor {
	switch name {
	case "readability":
		var opts []readability.Option
		if pageURL != nil {
			opts = append(opts, readability.WithPageURL(pageURL))
		}
		return readability.NewExtractor(opts...)
	case "none":
		return nil
	}
	var opts []trafilatura.Option
	if pageURL != nil {
		opts = append(opts, trafilatura.WithPageURL(pageURL))
	}
	return trafilatura.NewExtractor(opts...)
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
