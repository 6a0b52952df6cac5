package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"github.com/mcncl/parsekit/internal/config"
	"github.com/mcncl/parsekit/internal/errors"
	"github.com/mcncl/parsekit/internal/jsonparser"
	"github.com/mcncl/parsekit/internal/models"
	"github.com/mcncl/parsekit/internal/nginxlog"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format      string `help:"Input format: json or nginx. Overrides the config file." short:"f"`
	Config      string `help:"Path to config file. If not specified, searches for .parsekit.yaml." short:"c" type:"path"`
	Compact     bool   `help:"One value or record per line instead of the indented dump." short:"C"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("parsekit"),
		kong.Description("Parse JSON documents and NGINX combined log lines into typed values"),
		kong.UsageOnError(),
	)

	// No arguments at all drops into interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// kong.UsageOnError() has already printed usage
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("parsekit version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: parsekit --help\n")
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: explicit --config path,
// then a discovered config file, then defaults. CLI flags override the file.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.NewConfig()
	}

	if CLI.Format != "" {
		cfg.Format = CLI.Format
	}
	if CLI.Compact {
		cfg.Output.Pretty = false
	}
	return cfg, cfg.Validate()
}

// run executes the main program logic
func run(ctx *Context) error {
	input, err := readInput()
	if err != nil {
		return err
	}

	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "parsekit: parsing %d bytes as %s\n", len(input), ctx.Config.Format)
	}

	var out string
	switch ctx.Config.Format {
	case config.FormatJSON:
		out, err = renderJSON(ctx, input)
	case config.FormatNginx:
		out, err = renderNginx(ctx, input)
	}
	if err != nil {
		return err
	}

	return writeOutput(out)
}

// renderJSON parses the input as one JSON document and dumps the value tree.
func renderJSON(ctx *Context, input string) (string, error) {
	value, err := jsonparser.ParseString(input)
	if err != nil {
		return "", err
	}
	return dumpValue(ctx.Config, value), nil
}

// renderNginx parses the input as a batch of combined log lines.
func renderNginx(ctx *Context, input string) (string, error) {
	policy := nginxlog.FailFast
	if ctx.Config.Nginx.OnError == config.OnErrorSkip {
		policy = nginxlog.SkipInvalid
	}

	records, skipped, err := nginxlog.ParseReader(strings.NewReader(input), policy)
	if err != nil {
		return "", err
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "parsekit: skipped %d unparseable line(s)\n", skipped)
	}

	var b strings.Builder
	for _, rec := range records {
		b.WriteString(dumpValue(ctx.Config, rec))
	}
	return b.String(), nil
}

// dumpValue formats one parsed value or record according to the output
// options. The pretty form is a spew dump; the compact form is one Go-syntax
// line.
func dumpValue(cfg *config.Config, v interface{}) string {
	if !cfg.Output.Pretty {
		if rec, ok := v.(models.LogRecord); ok {
			return fmt.Sprintf("%+v\n", rec)
		}
		return fmt.Sprintf("%#v\n", v)
	}
	dumper := spew.ConfigState{
		Indent:                  cfg.Output.Indent,
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	return dumper.Sdump(v)
}

// readInput reads the text to parse from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Piped input
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes the rendered result to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(strings.TrimSpace(out))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste text
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "parsekit Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your input below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	input := builder.String()
	if len(input) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing...")
	return input, nil
}
