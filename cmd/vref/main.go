// Command vref creates, inspects and applies virtual reference configurations.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-vref/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"V" help:"Show version information"`
	Verbose bool        `short:"v" help:"Log debug diagnostics to stderr"`

	Init    initCmd    `cmd:"" help:"Write a new reference state file"`
	Show    showCmd    `cmd:"" help:"Print the reference matrix stored in a state file"`
	Process processCmd `cmd:"" help:"Re-reference a raw interleaved float32 recording"`
	Gen     genCmd     `cmd:"" help:"Generate a test recording with common-mode interference"`
}

// appContext is bound into every command's Run method.
type appContext struct {
	ctx    context.Context
	logger *slog.Logger
	stdout io.Writer
}

type versionFlag bool

// BeforeReset prints the version and exits before required flags are checked.
func (versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)

	return nil
}

type exitCode int

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run parses args and executes the selected command. It returns the process
// exit code instead of exiting so it can be driven from tests.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			ec, ok := r.(exitCode)
			if !ok {
				panic(r)
			}

			code = int(ec)
		}
	}()

	cliArgs := &CLI{}

	parser, err := kong.New(cliArgs,
		kong.Name("vref"),
		kong.Description("Virtual reference configuration and processing"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter("Virtual reference configuration and processing")),
	)
	if err != nil {
		cli.PrintError(stderr, err.Error())
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		cli.PrintError(stderr, err.Error())

		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(false)
		}

		return 1
	}

	level := slog.LevelInfo
	if cliArgs.Verbose {
		level = slog.LevelDebug
	}

	app := &appContext{
		ctx:    ctx,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		stdout: stdout,
	}

	err = kctx.Run(app)
	if err != nil {
		cli.PrintError(stderr, err.Error())
		return 1
	}

	return 0
}
