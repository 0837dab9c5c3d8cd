package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/apitemplate/cmd/application"
	"github.com/agentstation/apitemplate/internal/config"
)

// Flags holds the global flags shared by every command.
type Flags struct {
	ConfigFile  string
	Environment string
	LogLevel    string
	Verbose     bool
	Quiet       bool
	NoColor     bool
}

// loadOptions builds the config.Load options for cmd. Bound command flags
// and the logging flags become overrides.
func (a *App) loadOptions(cmd *cobra.Command) config.LoadOptions {
	overrides := application.FlagOverrides(cmd)

	if level := a.determineLogLevel(); level != "" {
		overrides["logging.minimum_level.default"] = level
	}
	if a.flags.NoColor {
		overrides["logging.console.no_color"] = true
	}

	opts := config.LoadOptions{
		ConfigFile:  a.flags.ConfigFile,
		Environment: a.flags.Environment,
		Overrides:   overrides,
	}
	if a.flags.ConfigFile == "" {
		opts.SearchPaths = searchPaths(a.baseDir)
	}
	return opts
}

// loadConfig reads configuration once. A preset config is kept.
func (a *App) loadConfig(cmd *cobra.Command) error {
	if a.config != nil {
		return nil
	}
	cfg, err := config.Load(a.loadOptions(cmd))
	if err != nil {
		return err
	}
	a.config = cfg
	return nil
}

func searchPaths(baseDir string) []string {
	paths := []string{"."}
	if baseDir != "" && baseDir != "." {
		paths = append(paths, baseDir)
	}
	return paths
}
