package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/jsonview/internal/config"
	"github.com/mcncl/jsonview/internal/encoder"
	"github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/htmldoc"
	"github.com/mcncl/jsonview/internal/parser"
	"github.com/mcncl/jsonview/internal/server"
	"github.com/mcncl/jsonview/internal/term"
	"github.com/mcncl/jsonview/internal/viewer"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Title       string `help:"Title for the generated HTML document. Defaults to the input file name." short:"t"`
	Format      string `help:"Output format: html or term." short:"f" enum:"html,term," default:""`
	Listen      string `help:"Start an HTTP server on this address instead of rendering once (e.g. localhost:8097)." short:"l"`
	Config      string `help:"Path to a config file. Searched for in parent directories when not given." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	kparser := kong.Must(&CLI,
		kong.Name("jsonview"),
		kong.Description("Render JSON documents as collapsible, syntax-highlighted HTML"),
		kong.UsageOnError(),
	)

	if _, err := kparser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonview version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonview --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Format, CLI.Title, CLI.Listen, CLI.Debug)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Dev.Debug)

	if CLI.Listen != "" {
		return serve(cfg, logger)
	}

	raw, sourceName, err := readInput()
	if err != nil {
		return err
	}

	out, err := renderDocument(cfg, raw, sourceName)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

// renderDocument produces the requested output format for one document.
func renderDocument(cfg *config.Config, raw, sourceName string) (string, error) {
	switch cfg.Format {
	case config.FormatTerm:
		encoded := encoder.Encode(raw)
		doc, err := parser.ParseString(encoded)
		if err != nil {
			return "", err
		}
		return term.NewRenderer().Render(doc.Root) + "\n", nil
	default:
		result := viewer.Process(raw)
		title := cfg.Title
		if title == "" {
			title = result.Title
		}
		if title == "" && sourceName != "" {
			title = filepath.Base(sourceName)
		}
		return htmldoc.Document(title, result.Body), nil
	}
}

func serve(cfg *config.Config, logger log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server.Listen, logger)
	level.Debug(logger).Log("msg", "starting server", "addr", cfg.Server.Listen)
	return srv.Run(ctx)
}

func newLogger(debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

// readInput reads the raw document text from file or stdin.
func readInput() (raw, sourceName string, err error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), CLI.Input, nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), "", nil
}

// writeOutput writes the rendered document to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(out), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Rendered document written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Print(out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, string, error) {
	fmt.Fprintln(os.Stderr, "jsonview Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			jsonBuilder.WriteString(line)
			break
		}
		if err != nil {
			return "", "", errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return "", "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, "", nil
}
