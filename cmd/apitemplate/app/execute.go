package app

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/apitemplate/cmd/apitemplate/cmd/openapi"
	"github.com/agentstation/apitemplate/cmd/apitemplate/cmd/serve"
	"github.com/agentstation/apitemplate/cmd/apitemplate/cmd/version"
	"github.com/agentstation/apitemplate/cmd/application"
	"github.com/agentstation/apitemplate/pkg/errors"
)

// Execute runs the apitemplate CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	if a.stdout != nil {
		rootCmd.SetOut(a.stdout)
	}
	if a.stderr != nil {
		rootCmd.SetErr(a.stderr)
	}
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// Without a subcommand the root command serves the API.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "apitemplate",
		Short:   "Starter HTTP API service",
		Version: a.version,
		Long: `apitemplate is a starter HTTP API service.

It serves a health endpoint and its generated API document, logs to the
console and to a daily log file next to the binary, and reads its settings
from appsettings.yaml, appsettings.{Environment}.yaml, .env files and
APP_ prefixed environment variables.`,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve.Run(cmd, a)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&a.flags.ConfigFile, "config", "", "settings file (default is appsettings.yaml in the working or binary directory)")
	rootCmd.PersistentFlags().StringVarP(&a.flags.Environment, "environment", "e", "", "environment name (overrides ENVIRONMENT)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.NoColor, "no-color", false, "disable colored console output")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	serve.AddFlags(rootCmd)

	rootCmd.SetVersionTemplate("apitemplate {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs: configuration first,
// then the logger built from it.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if skipSetup(cmd) {
		return nil
	}
	if err := a.loadConfig(cmd); err != nil {
		return errors.WrapStartup("config", err)
	}
	return a.setupLogger()
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(openapi.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

func skipSetup(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[application.SkipSetupAnnotation] == "true" {
			return true
		}
	}
	return false
}

// Fatal logs err at fatal level and exits with status 1. Startup errors
// name the stage that failed.
func Fatal(logger *zerolog.Logger, err error) {
	event := logger.Fatal().Err(err)
	var startup *errors.StartupError
	if errors.As(err, &startup) {
		event = event.Str("stage", startup.Stage)
	}
	event.Msg("Host terminated unexpectedly")
}
