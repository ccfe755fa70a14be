package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/mcncl/json2table/internal/config"
	"github.com/mcncl/json2table/internal/errors"
	"github.com/mcncl/json2table/internal/formatter"
	"github.com/mcncl/json2table/internal/models"
	"github.com/mcncl/json2table/internal/naming"
	"github.com/mcncl/json2table/internal/parser"
	"github.com/mcncl/json2table/pkg/json2table"
)

// CLI defines the command-line interface
var CLI struct {
	Input           string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output          string `help:"Path to output HTML file. If not specified, writes to stdout." short:"o" type:"path"`
	Config          string `help:"Path to config file. Defaults to the nearest .json2table.yml." short:"c" type:"path"`
	TableClass      string `help:"Class attribute for every table."`
	TableStyle      string `help:"Style attribute for every table."`
	TableAttributes string `help:"Extra attributes written verbatim into every table tag."`
	KeyStyle        string `help:"How keys become header labels (${key_styles})." short:"k"`
	MaxDepth        int    `help:"Maximum nesting depth to render." short:"m"`
	Pretty          bool   `help:"Indent the HTML output." short:"p"`
	Debug           bool   `help:"Enable debug logging." short:"d"`
	Version         bool   `help:"Show version information." short:"v"`
	Interactive     bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser, err := parseArgs(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("json2table version %s\n", Version)
		return
	}

	runCtx, err := newContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(runCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: json2table --help\n")
		os.Exit(1)
	}
}

// parseArgs fills CLI from args. Running with no arguments at all means
// interactive mode, which has to be set after kong has applied defaults.
func parseArgs(args []string) (*kong.Kong, error) {
	parser := kong.Must(&CLI,
		kong.Name("json2table"),
		kong.Description("A tool to render JSON as HTML tables"),
		kong.UsageOnError(),
		kong.Vars{"key_styles": keyStyles()},
	)

	if _, err := parser.Parse(args); err != nil {
		return parser, err
	}
	if len(args) == 0 {
		CLI.Interactive = true
	}
	return parser, nil
}

func keyStyles() string {
	names := make([]string, 0, len(naming.Styles()))
	for _, style := range naming.Styles() {
		names = append(names, string(style))
	}
	return strings.Join(names, ", ")
}

// newContext loads configuration and sets up logging from the parsed flags
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		TableClass:      CLI.TableClass,
		TableStyle:      CLI.TableStyle,
		TableAttributes: CLI.TableAttributes,
		KeyStyle:        CLI.KeyStyle,
		MaxDepth:        CLI.MaxDepth,
		Pretty:          CLI.Pretty,
		Debug:           CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load config '%s'", configPath), err)
	}

	level := log.WarnLevel
	if cfg.Dev.Debug {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger}, nil
}

// newLogger creates a timestamped logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = newLogger(io.Discard, log.WarnLevel)
	}
	logger := ctx.Logger

	// 1. Parse JSON input
	start := time.Now()
	doc, err := parseInput()
	if err != nil {
		return err
	}
	logger.Debug("parsed input", "root", kindOf(doc.Root), "elapsed", time.Since(start).Round(time.Microsecond))

	if models.IsEmpty(doc.Root) {
		logger.Warn("input is null or empty, nothing to render")
	}

	// 2. Render the table
	start = time.Now()
	frag, err := json2table.RenderFragment(doc, ctx.Config.RenderOptions())
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.NewRenderError("failed to render table", err)
	}
	html := frag.HTML
	logger.Debug("rendered table", "bytes", len(html), "elapsed", time.Since(start).Round(time.Microsecond))

	// 3. Indent the markup if requested
	if ctx.Config.Render.Pretty {
		formatterInst := formatter.NewFormatter()
		html, err = formatterInst.Format(frag)
		if err != nil {
			return errors.NewOutputError("failed to format HTML", err)
		}
	}

	// 4. Output the result
	return writeOutput(html, logger)
}

func kindOf(v models.Value) string {
	if v == nil {
		return models.KindNull.String()
	}
	return v.Kind().String()
}

// parseInput reads JSON from file or stdin
func parseInput() (models.Document, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData))
}

// writeOutput writes the HTML to file or stdout
func writeOutput(html string, logger *log.Logger) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(html), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		logger.Info("wrote HTML table", "path", CLI.Output)
		return nil
	}

	_, err := fmt.Fprint(os.Stdout, html)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (models.Document, error) {
	fmt.Fprintln(os.Stderr, "json2table Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	jsonData, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("error reading input", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(string(jsonData))
}
