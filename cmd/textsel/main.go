// Package main is the entry point for textsel.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/textsel/internal/app"
	"github.com/dshills/textsel/internal/bridge"
	"github.com/dshills/textsel/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	modeTUI  = "tui"
	modeWire = "wire"
)

type options struct {
	app.Options
	mode    string
	docPath string
	logFile string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.docPath != "" {
		doc, err := app.LoadDocumentFile(opts.docPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts.Document = doc
	}

	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts.LogOutput = f
	} else if opts.mode == modeTUI {
		// Log lines would scribble over the screen.
		opts.LogOutput = io.Discard
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch opts.mode {
	case modeWire:
		err = runWire(ctx, opts.Options)
	default:
		err = runTUI(ctx, opts.Options)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runWire speaks JSON lines: commands on stdin, messages on stdout.
func runWire(ctx context.Context, opts app.Options) error {
	opts.Messenger = bridge.NewJSONMessenger(os.Stdout)
	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close()

	return application.Serve(ctx, os.Stdin)
}

// runTUI runs the terminal demo host.
func runTUI(ctx context.Context, opts app.Options) error {
	overlay := tui.NewOverlay()
	opts.Messenger = overlay
	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close()

	screen, err := tui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	return tui.New(screen, application, overlay, application.Logger()).Run(ctx)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to settings file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to settings file (shorthand)")
	flag.StringVar(&opts.docPath, "doc", "", "Path to a YAML document description")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the settings file when it changes")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides settings")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "textsel - touch text selection handle controller\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textsel [options] [tui|wire]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textsel                          Demo document in the terminal\n")
		fmt.Fprintf(os.Stderr, "  textsel -doc page.yaml tui       Your own document\n")
		fmt.Fprintf(os.Stderr, "  textsel -c settings.toml wire    JSON lines over stdin/stdout\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("textsel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	switch args := flag.Args(); {
	case len(args) == 0:
		opts.mode = modeTUI
	case len(args) == 1 && (args[0] == modeTUI || args[0] == modeWire):
		opts.mode = args[0]
	default:
		flag.Usage()
		os.Exit(2)
	}
	return opts
}
