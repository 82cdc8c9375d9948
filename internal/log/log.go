package log

import (
	"io"
	"log/slog"
	"os"
)

// Options configures the logger.
type Options struct {
	// Verbose lowers the level to Debug, which includes every timer transition.
	Verbose bool
	// JSONFormat switches the handler from text to JSON.
	JSONFormat bool
	// Stderr is the output writer (defaults to os.Stderr).
	Stderr io.Writer
}

// Init builds the process logger, installs it as the slog default and returns it.
func Init(opts Options) *slog.Logger {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: Level(opts.Verbose)}

	var handler slog.Handler
	if opts.JSONFormat {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Level maps the verbose flag to a slog level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Component returns a child logger tagged with the component name.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", name)
}
