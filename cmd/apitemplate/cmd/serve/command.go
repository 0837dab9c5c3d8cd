// Package serve provides the command that runs the API server.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/apitemplate/cmd/application"
	"github.com/agentstation/apitemplate/internal/server"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the API server",
		Long: `Start the API server.

Endpoints:
  - GET /api/health             environment name
  - GET /swagger/v1/swagger.json generated API document
  - GET /swagger                documentation UI

Plain HTTP requests outside the documentation are redirected to HTTPS.
The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  # Start with appsettings.yaml from the working directory
  apitemplate serve

  # Development mode with a custom port
  apitemplate serve --environment Development --http-port 8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app)
		},
	}

	AddFlags(cmd)
	return cmd
}

// AddFlags declares the listener flags on cmd. Each flag overrides its
// configuration key when set.
func AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("host", "", "Bind address")
	cmd.Flags().Int("http-port", 0, "HTTP port")
	cmd.Flags().Int("https-port", 0, "HTTPS port used for redirects and the TLS listener (0 disables)")
	cmd.Flags().Bool("validate-requests", false, "Validate /api requests against the API document")

	application.BindFlag(cmd, "host", "server.host")
	application.BindFlag(cmd, "http-port", "server.http_port")
	application.BindFlag(cmd, "https-port", "server.https_port")
	application.BindFlag(cmd, "validate-requests", "docs.validate_requests")
}

// Run builds the server from the loaded configuration and serves until the
// command context is cancelled.
func Run(cmd *cobra.Command, app application.Application) error {
	cfg := app.Config()
	logger := app.Logger()

	logger.Info().
		Str("application", cfg.ApplicationName).
		Str("environment", cfg.Environment.String()).
		Strs("settings", cfg.Files).
		Str("version", app.Version()).
		Msg("Starting API server")

	srv, err := server.New(cfg, *logger, server.WithBaseDir(app.BaseDir()))
	if err != nil {
		return err
	}

	logger.Debug().Strs("pipeline", srv.Pipeline()).Msg("Request pipeline assembled")
	return srv.Run(cmd.Context())
}
