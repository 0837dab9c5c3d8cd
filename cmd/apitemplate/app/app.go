// Package app provides the application context and dependency management
// for the apitemplate binary. Configuration is read once, then the logger
// is built from it, before any command runs.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/cmd/application"
	"github.com/agentstation/apitemplate/internal/config"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// App represents the apitemplate application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Global flags, bound by the root command
	flags Flags

	// baseDir is where relative settings, log and comments files resolve.
	baseDir string

	// Loaded by setupCommand
	config       *config.Config
	logger       *zerolog.Logger
	presetLogger bool

	mu     sync.Mutex
	closer io.Closer

	stdout io.Writer
	stderr io.Writer
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration and logging are set up when a command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		logger:  logging.Default(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.baseDir == "" {
		app.baseDir = logging.ExecutableDir()
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// BaseDir returns the directory relative files resolve against.
func (a *App) BaseDir() string {
	return a.baseDir
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Shutdown releases the log file. It is safe to call more than once.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a configuration and skips loading it.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger and skips building one.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.presetLogger = true
		return nil
	}
}

// WithBaseDir sets the directory relative files resolve against.
func WithBaseDir(dir string) Option {
	return func(a *App) error {
		a.baseDir = dir
		return nil
	}
}

// WithOutput redirects command output, mainly for tests.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) error {
		a.stdout = stdout
		a.stderr = stderr
		return nil
	}
}
