package application

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// ConfigKeyAnnotation marks a flag that overrides a configuration key.
	ConfigKeyAnnotation = "apitemplate_config_key"

	// SkipSetupAnnotation marks a command that runs without loading
	// configuration or logging.
	SkipSetupAnnotation = "apitemplate_skip_setup"
)

// BindFlag marks flag on cmd as the override for the configuration key.
// It panics when the flag is not defined, which is a programming error.
func BindFlag(cmd *cobra.Command, flag, key string) {
	if err := cmd.Flags().SetAnnotation(flag, ConfigKeyAnnotation, []string{key}); err != nil {
		panic("programming error: failed to bind flag " + flag + ": " + err.Error())
	}
}

// FlagOverrides returns the configuration overrides for every bound flag
// the user set on cmd. After parsing, cmd.Flags() also holds the inherited
// persistent flags.
func FlagOverrides(cmd *cobra.Command) map[string]any {
	overrides := map[string]any{}
	visit := func(f *pflag.Flag) {
		keys := f.Annotations[ConfigKeyAnnotation]
		if len(keys) == 0 {
			return
		}
		for _, key := range keys {
			overrides[key] = f.Value.String()
		}
	}
	cmd.Flags().Visit(visit)
	return overrides
}
