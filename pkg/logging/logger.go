// Package logging provides structured logging for the apitemplate service using zerolog.
// A process-wide logger writes to the console and to a daily-rolling file next to the
// binary, with per-category minimum levels read from configuration.
//
// Example usage:
//
//	logger, closer, err := logging.Setup(cfg, logging.ExecutableDir())
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	http := logging.Category(logger, levels, logging.CategoryHTTP)
//	http.Info().Str("path", "/api/health").Msg("Request completed")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger builds the logger used before configuration is loaded,
// so that a failure while reading configuration can still be reported.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := zerolog.InfoLevel
	if l, err := ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = l
	}
	zerolog.SetGlobalLevel(level)

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
