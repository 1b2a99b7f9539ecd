// Package logging provides structured logging for upscaling QC runs using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so runs
// launched from RMS job scripts produce machine-readable events.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("grid", "Geogrid").Msg("Extracting data from grids")
//
//	// Soft outcomes carry an event field so they can be told apart from failures
//	log.Warn().Str(logging.EventKey, logging.EventNoWells).Msg("No wells found")
//
//	ctx := logging.WithRunID(context.Background(), runID)
//	logging.FromContext(ctx).Debug().Msg("Grids OK")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

)

// Event names for the non-fatal outcomes of a run. They are the only log events
// with control-flow meaning: the run continues with an empty result.
const (
	// EventKey is the field carrying the event name.
	EventKey = "event"

	// EventNoWells is logged when no well names could be resolved.
	EventNoWells = "no_wells"

	// EventNoCoding is logged when a selector has no usable coding table.
	EventNoCoding = "no_coding"

	// EventSubsetOverwritten is logged when an explicit per-source well list is
	// replaced by the union of all sources.
	EventSubsetOverwritten = "subset_overwritten"
)

func init() {
	// Initialize with sensible defaults
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger creates a logger with default settings.
func createDefaultLogger() zerolog.Logger {
	// Auto-detect if we're in a terminal for pretty output
	isTerminal := isatty.IsTerminal(os.Stderr.Fd())

	var writer io.Writer = os.Stderr

	if isTerminal && os.Getenv("LOG_FORMAT") != "json" {
		// Use console writer for human-readable output in terminals
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	// Set global log level
	level := getLogLevel()
	zerolog.SetGlobalLevel(level)

	// Create logger with context
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Add caller information in debug mode
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // Also update zerolog's global logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// getLogLevel returns the log level from environment or defaults.
func getLogLevel() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		// Check for common verbose/debug flags
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
