package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/pkg/constants"
	"github.com/agentstation/apitemplate/pkg/errors"
)

// Config holds logger configuration options.
type Config struct {
	// MinimumLevel is the default level plus per-category overrides
	MinimumLevel MinimumLevel `mapstructure:"minimum_level" yaml:"minimum_level"`

	// Console configures the stdout sink
	Console ConsoleConfig `mapstructure:"console" yaml:"console"`

	// File configures the daily-rolling file sink
	File FileConfig `mapstructure:"file" yaml:"file"`

	// AddCaller includes file:line in log output
	AddCaller bool `mapstructure:"add_caller" yaml:"add_caller"`

	// Fields are default fields to include in all logs
	Fields map[string]any `mapstructure:"fields" yaml:"fields"`
}

// MinimumLevel maps logger categories to the lowest level they emit.
type MinimumLevel struct {
	Default  string            `mapstructure:"default" yaml:"default"`
	Override map[string]string `mapstructure:"override" yaml:"override"`
}

// ConsoleConfig configures the console sink.
type ConsoleConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Format     string `mapstructure:"format" yaml:"format"` // auto, console, json
	Output     string `mapstructure:"output" yaml:"output"` // stdout, stderr, discard
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`
	NoColor    bool   `mapstructure:"no_color" yaml:"no_color"`
}

// FileConfig configures the file sink. A relative Path is resolved against
// the directory holding the running binary.
type FileConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
	Format  string `mapstructure:"format" yaml:"format"` // json, text
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MinimumLevel: MinimumLevel{
			Default:  "info",
			Override: map[string]string{},
		},
		Console: ConsoleConfig{
			Enabled:    true,
			Format:     "auto",
			Output:     "stdout",
			TimeFormat: "kitchen",
			NoColor:    os.Getenv("NO_COLOR") != "",
		},
		File: FileConfig{
			Enabled: true,
			Path:    constants.LogFileName,
			Format:  "json",
		},
		Fields: make(map[string]any),
	}
}

// Validate checks that every configured level name parses.
func (c *Config) Validate() error {
	_, err := c.Levels()
	return err
}

// Levels resolves the configured level names.
func (c *Config) Levels() (Levels, error) {
	def, err := ParseLevel(c.MinimumLevel.Default)
	if err != nil {
		return Levels{}, errors.NewConfigError("logging", "minimum_level.default", err)
	}

	overrides := make(map[string]zerolog.Level, len(c.MinimumLevel.Override))
	for category, name := range c.MinimumLevel.Override {
		level, err := ParseLevel(name)
		if err != nil {
			return Levels{}, errors.NewConfigError("logging",
				fmt.Sprintf("minimum_level.override.%s", category), err)
		}
		overrides[category] = level
	}

	return NewLevels(def, overrides), nil
}

// consoleWriter builds the console sink.
func consoleWriter(cfg ConsoleConfig) io.Writer {
	var output *os.File
	switch strings.ToLower(cfg.Output) {
	case "discard", "none":
		return io.Discard
	case "stderr":
		output = os.Stderr
	default:
		output = os.Stdout
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if isTerminal(output) {
			format = "console"
		}
	}

	if format == "json" {
		return output
	}
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// fileWriter wraps the rolling file with the configured encoding.
func fileWriter(out io.Writer, format string) io.Writer {
	if strings.EqualFold(format, "text") {
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: constants.TimeFormatLog,
			NoColor:    true,
		}
	}
	return out
}

// ParseLevel parses a level name. Both zerolog names and the
// Verbose/Information spellings common in appsettings files are accepted.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info", "information":
		return zerolog.InfoLevel, nil
	case "trace", "verbose":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal", "critical":
		return zerolog.FatalLevel, nil
	case "panic":
		return zerolog.PanicLevel, nil
	case "disabled", "none", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// parseTimeFormat parses time format configuration.
func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	case "stamp":
		return time.Stamp
	default:
		if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
			return format
		}
		return time.Kitchen
	}
}

// addField adds a field to the context based on its type.
func addField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case time.Time:
		return ctx.Time(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}
