// Package logging builds the application logger: an slog.Logger fanning
// out to an optional terminal handler and an optional logfile handler.
// The terminal handler is left out while the TUI owns the screen, since
// anything written to stderr would corrupt the display.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string

	// FilePath appends JSON log lines to this file when set.
	FilePath string

	// Terminal attaches a text handler on w when non-nil. Leave nil
	// while a TUI owns the terminal.
	Terminal io.Writer
}

// New builds the logger. It returns a close function for the logfile,
// which is a no-op when no file was opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var handlers []slog.Handler
	closeFn := func() error { return nil }

	if opts.Terminal != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Terminal, &slog.HandlerOptions{Level: level}))
	}

	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closeFn = f.Close
	}

	if len(handlers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closeFn, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}
