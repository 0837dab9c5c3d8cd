package app

import (
	"fmt"
	"io"
	"os"

	"github.com/agentstation/apitemplate/pkg/errors"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// determineLogLevel returns the default log level requested on the command
// line, or "" to keep the configured one. Precedence (highest to lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose and -q/--quiet together resolve to warn
//  3. -v/--verbose flag (shortcut for debug)
//  4. -q/--quiet flag (shortcut for warn)
//  5. logging.minimum_level.default from configuration
func (a *App) determineLogLevel() string {
	f := a.flags

	if f.LogLevel != "" {
		if _, err := logging.ParseLevel(f.LogLevel); err != nil {
			fmt.Fprintf(a.errOut(), "Warning: invalid log level %q, using configured level\n", f.LogLevel)
			return ""
		}
		return f.LogLevel
	}

	if f.Verbose && f.Quiet {
		fmt.Fprintf(a.errOut(), "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if f.Verbose {
		return "debug"
	}
	if f.Quiet {
		return "warn"
	}
	return ""
}

// setupLogger builds the process logger from the loaded configuration and
// installs it as the default. A preset logger is kept.
func (a *App) setupLogger() error {
	if a.presetLogger {
		return nil
	}

	logger, closer, err := logging.Setup(&a.config.Logging, a.baseDir)
	if err != nil {
		return errors.WrapStartup("logging", err)
	}

	a.mu.Lock()
	a.closer = closer
	a.mu.Unlock()
	a.logger = &logger

	startup := logging.Category(logger, mustLevels(a.config.Logging), logging.CategoryStartup)
	startup.Debug().
		Strs("settings", a.config.Files).
		Str("environment", a.config.Environment.String()).
		Str("log_file", logging.ResolvePath(a.config.Logging.File.Path, a.baseDir)).
		Msg("Configuration loaded")
	return nil
}

func mustLevels(cfg logging.Config) logging.Levels {
	levels, err := cfg.Levels()
	if err != nil {
		// Validated by config.Load.
		panic("programming error: invalid logging levels: " + err.Error())
	}
	return levels
}

func (a *App) errOut() io.Writer {
	if a.stderr != nil {
		return a.stderr
	}
	return os.Stderr
}
