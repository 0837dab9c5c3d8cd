// Package application provides the application interface for apitemplate commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            srv, err := server.New(app.Config(), *app.Logger())
//	            if err != nil {
//	                return err
//	            }
//	            return srv.Run(cmd.Context())
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ConfigFunc: func() *config.Config {
//	        return testConfig
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/internal/config"
)

// Application provides what commands need from the running process.
// The App struct from cmd/apitemplate/app implements this interface.
//
// Config and Logger are only valid once the root command's pre-run has
// loaded configuration; commands read them inside RunE.
type Application interface {
	// Config returns the resolved, immutable configuration.
	Config() *config.Config

	// Logger returns the process logger built from Config().Logging.
	Logger() *zerolog.Logger

	// BaseDir is the directory relative files resolve against.
	BaseDir() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
