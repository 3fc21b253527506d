// Package main is the entry point for the splitflap board editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/splitflap/internal/app"
	"github.com/dshills/splitflap/internal/config"
	"github.com/dshills/splitflap/internal/logging"
	"github.com/dshills/splitflap/internal/settings"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logLevel    string
		setName     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "splitflap.toml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "splitflap.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	flag.StringVar(&setName, "set-name", "", "Set the display name for the signature and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Splitflap - split-flap display board editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: splitflap [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("splitflap %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if setName != "" {
		if err := storeDisplayName(cfg.Settings.Path, setName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("display name set to %q\n", setName)
		return 0
	}

	// No terminal handler: the TUI owns the screen.
	logger, closeLog, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: closing log file: %v\n", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// storeDisplayName validates and persists the signature name.
func storeDisplayName(dbPath, name string) error {
	store, err := settings.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SetDisplayName(name)
}
