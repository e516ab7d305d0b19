// Package cli implements the devkit command line: discovery commands, the
// generic run command and the per-tool shortcut commands.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/roelfdiedericks/devkit/internal/config"
	"github.com/roelfdiedericks/devkit/internal/logging"
	"github.com/roelfdiedericks/devkit/internal/tools"
	"github.com/roelfdiedericks/devkit/internal/tui"
)

// Version is reported by the version command
var Version = "1.0.0"

// Exit codes
const (
	ExitOK      = 0
	ExitInvalid = 1 // validation error or malformed run input
	ExitUsage   = 2 // unknown command, unknown tool, bad arguments
	ExitDefect  = 3 // a tool failed after its input was accepted
)

// CLI is the kong command tree
type CLI struct {
	Config string `help:"Path to a YAML or TOML config file." type:"path" placeholder:"FILE"`
	Debug  bool   `help:"Enable debug logging on stderr."`

	List       ListCmd       `cmd:"" help:"List available tools."`
	Categories CategoriesCmd `cmd:"" help:"List tool categories."`
	Info       InfoCmd       `cmd:"" help:"Show a tool's metadata and JSON schemas."`
	Run        RunCmd        `cmd:"" help:"Run a tool with a JSON input object."`

	Base64 Base64Cmd `cmd:"" name:"base64" help:"Encode or decode Base64."`
	URL    URLCmd    `cmd:"" name:"url" help:"Percent-encode or decode text."`
	Hash   HashCmd   `cmd:"" name:"hash" help:"Hash text."`
	JWT    JWTCmd    `cmd:"" name:"jwt" help:"Decode a JWT without verifying it."`
	JSON   JSONCmd   `cmd:"" name:"json" help:"Format, minify or query JSON."`
	UUID   UUIDCmd   `cmd:"" name:"uuid" help:"Generate UUIDs."`
	Epoch  EpochCmd  `cmd:"" name:"epoch" help:"Convert epoch timestamps."`
	Color  ColorCmd  `cmd:"" name:"color" help:"Convert between hex, rgb() and hsl() colors."`
	Escape EscapeCmd `cmd:"" name:"escape" help:"Escape or unescape HTML, JSON, XML or JavaScript."`

	Version VersionCmd `cmd:"" help:"Print the devkit version."`
}

// UsageError reports bad command line arguments
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// InputError reports a run payload that is not a JSON object
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return "Invalid JSON input: " + e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// exitSentinel unwinds kong.Exit calls (help output) back into Main
type exitSentinel struct{ code int }

// Main runs devkit with args (without the program name) and returns the
// process exit code. Tool output goes to stdout only on success; failures
// write a single "Error: ..." line to stderr.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	logging.Init(&logging.Config{Level: logging.LevelWarn, Output: stderr})
	styles := tui.NewStyles(stderr, tui.ColorEnabled(config.ColorAuto, stderr))
	fail := func(err error) int {
		fmt.Fprintln(stderr, styles.RenderError(err.Error()))
		return exitCodeFor(err)
	}

	reg, err := tools.Default()
	if err != nil {
		return fail(&tools.ExecutionError{Tool: "registry", Cause: err})
	}

	defer func() {
		if r := recover(); r != nil {
			exit, ok := r.(exitSentinel)
			if !ok {
				panic(r)
			}
			code = exit.code
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("devkit"),
		kong.Description("Developer utility toolkit. Every command prints JSON.\n\n"+reg.BuildToolSummary()),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitSentinel{code: c}) }),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		return fail(&tools.ExecutionError{Tool: "cli", Cause: err})
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return fail(&UsageError{Msg: err.Error()})
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fail(&UsageError{Msg: err.Error()})
	}
	logging.Init(cfg.Logging(stderr, cli.Debug))
	styles = tui.NewStyles(stderr, tui.ColorEnabled(cfg.Color, stderr))

	app := &App{
		Registry: reg,
		Stdin:    stdin,
		Stdout:   stdout,
		Indent:   cfg.IndentWidth(),
	}

	logging.L_debug("cli: dispatch", "command", ctx.Command(), "config", cfg.Path)
	if err := ctx.Run(app); err != nil {
		return fail(err)
	}
	return ExitOK
}

// exitCodeFor maps an error to the process exit code
func exitCodeFor(err error) int {
	var (
		usage    *UsageError
		notFound *tools.NotFoundError
		defect   *tools.ExecutionError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage), errors.As(err, &notFound):
		return ExitUsage
	case errors.As(err, &defect):
		return ExitDefect
	}
	return ExitInvalid
}
