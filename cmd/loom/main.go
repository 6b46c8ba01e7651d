// Package main is the entry point for the loom pipeline tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/loom/internal/app"
	"github.com/dshills/loom/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.logLevel),
		Output: os.Stderr,
		Prefix: "loom",
	})

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.inPath != "" {
		cfg.Input.Path = opts.inPath
	}
	if opts.outPath != "" {
		cfg.Output.Path = opts.outPath
	}

	runner := app.NewRunner(cfg,
		app.WithLogger(logger),
		app.WithBaseDir(filepath.Dir(opts.configPath)),
	)

	if opts.watch {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := runner.Watch(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	configPath string
	inPath     string
	outPath    string
	watch      bool
	logLevel   string
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to pipeline file")
	flag.StringVar(&opts.configPath, "c", "", "Path to pipeline file (shorthand)")
	flag.StringVar(&opts.inPath, "in", "", "Override the pipeline input document")
	flag.StringVar(&opts.outPath, "out", "", "Override the pipeline output document")
	flag.BoolVar(&opts.watch, "watch", false, "Re-run when the input or a filter script changes")
	flag.BoolVar(&opts.watch, "w", false, "Re-run on changes (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Loom - structural document pipelines\n\n")
		fmt.Fprintf(os.Stderr, "Usage: loom [options] [pipeline.toml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  loom pipeline.toml                 Run the pipeline once\n")
		fmt.Fprintf(os.Stderr, "  loom -w pipeline.toml              Re-run on every input change\n")
		fmt.Fprintf(os.Stderr, "  loom -in doc.mk pipeline.toml      Run with a different input document\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Loom %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.configPath == "" {
		if args := flag.Args(); len(args) == 1 {
			opts.configPath = args[0]
		} else {
			fmt.Fprintln(os.Stderr, "Error: no pipeline file (use -config or a positional argument)")
			flag.Usage()
			os.Exit(1)
		}
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	// Flag overrides resolve against the working directory; pipeline
	// paths resolve against the pipeline file's directory.
	opts.inPath = absOrExit(opts.inPath)
	opts.outPath = absOrExit(opts.outPath)

	return opts
}

func absOrExit(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return abs
}
