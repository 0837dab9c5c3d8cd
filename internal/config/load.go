package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/apitemplate/internal/environment"
	"github.com/agentstation/apitemplate/pkg/constants"
	apierrors "github.com/agentstation/apitemplate/pkg/errors"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// EnvPrefix prefixes every environment variable read into the config,
// for example APP_SERVER_HTTP_PORT.
const EnvPrefix = "APP"

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit base settings file. When set, the search
	// paths are ignored and a missing file is an error.
	ConfigFile string

	// SearchPaths are directories searched for appsettings.yaml.
	// Defaults to the working directory and the binary's directory.
	SearchPaths []string

	// Environment overrides ENVIRONMENT / APP_ENVIRONMENT when non-empty.
	Environment string

	// EnvFiles are dotenv files loaded into the process environment,
	// highest precedence first. Defaults to .env.local then .env.
	EnvFiles []string

	// Overrides are config keys set by command flags; they win over every
	// other source.
	Overrides map[string]any
}

// Load resolves configuration in precedence order:
//  1. Overrides (command flags)
//  2. Environment variables (APP_ prefix)
//  3. .env files
//  4. appsettings.{Environment}.yaml
//  5. appsettings.yaml
//  6. Defaults
func Load(opts LoadOptions) (*Config, error) {
	loadEnvFiles(opts.envFiles())

	env := environment.FromEnv(os.LookupEnv)
	if opts.Environment != "" {
		env = environment.Parse(opts.Environment)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	files, err := readSettings(v, opts, env)
	if err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apierrors.NewConfigError("config", "decode settings", err)
	}
	cfg.Environment = env
	cfg.Files = files

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readSettings reads the base settings file and merges the environment
// overlay on top. Missing files are skipped; malformed files fail.
func readSettings(v *viper.Viper, opts LoadOptions, env environment.Name) ([]string, error) {
	var files []string
	var dirs []string

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, apierrors.NewConfigError("config", fmt.Sprintf("read %s", opts.ConfigFile), err)
		}
		files = append(files, v.ConfigFileUsed())
		dirs = []string{filepath.Dir(opts.ConfigFile)}
	} else {
		dirs = opts.searchPaths()
		v.SetConfigName(constants.SettingsFileName)
		v.SetConfigType("yaml")
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, apierrors.NewConfigError("config", "read settings", err)
			}
		} else {
			files = append(files, v.ConfigFileUsed())
			dirs = []string{filepath.Dir(v.ConfigFileUsed())}
		}
	}

	overlay := findOverlay(dirs, overlayBase(opts.ConfigFile), env)
	if overlay == "" {
		return files, nil
	}
	v.SetConfigFile(overlay)
	if err := v.MergeInConfig(); err != nil {
		return nil, apierrors.NewConfigError("config", fmt.Sprintf("read %s", overlay), err)
	}
	return append(files, overlay), nil
}

// overlayBase returns the base name the environment overlay is derived from.
func overlayBase(configFile string) string {
	if configFile == "" {
		return constants.SettingsFileName
	}
	name := filepath.Base(configFile)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// findOverlay returns the first <base>.<env>.yaml (or .yml) in dirs. The
// environment is tried as given, then in its well-known spelling.
func findOverlay(dirs []string, base string, env environment.Name) string {
	names := []environment.Name{env}
	if c := env.Canonical(); c != env {
		names = append(names, c)
	}
	for _, dir := range dirs {
		for _, name := range names {
			for _, ext := range []string{"yaml", "yml"} {
				path := filepath.Join(dir, fmt.Sprintf("%s.%s.%s", base, name, ext))
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					return path
				}
			}
		}
	}
	return ""
}

// loadEnvFiles loads dotenv files. godotenv never overwrites a variable that
// is already set, so files are given highest precedence first.
func loadEnvFiles(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func (o LoadOptions) envFiles() []string {
	if o.EnvFiles != nil {
		return o.EnvFiles
	}
	return []string{".env.local", ".env"}
}

func (o LoadOptions) searchPaths() []string {
	if len(o.SearchPaths) > 0 {
		return o.SearchPaths
	}
	paths := []string{"."}
	if dir := logging.ExecutableDir(); dir != "." {
		paths = append(paths, dir)
	}
	return paths
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application_name", constants.DefaultApplicationName)

	v.SetDefault("server.host", constants.DefaultHost)
	v.SetDefault("server.http_port", constants.DefaultHTTPPort)
	v.SetDefault("server.https_port", constants.DefaultHTTPSPort)
	v.SetDefault("server.tls_cert_file", "")
	v.SetDefault("server.tls_key_file", "")
	v.SetDefault("server.read_timeout", constants.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", constants.DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", constants.DefaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", constants.DefaultShutdownTimeout)
	v.SetDefault("server.trust_forwarded_proto", false)

	v.SetDefault("hsts.max_age", constants.DefaultHSTSMaxAge)
	v.SetDefault("hsts.include_subdomains", false)
	v.SetDefault("hsts.preload", false)
	v.SetDefault("hsts.excluded_hosts", []string{})

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("docs.comments_file", constants.DocsCommentsFileName)
	v.SetDefault("docs.validate_requests", false)

	logs := logging.DefaultConfig()
	v.SetDefault("logging.minimum_level.default", logs.MinimumLevel.Default)
	v.SetDefault("logging.minimum_level.override", logs.MinimumLevel.Override)
	v.SetDefault("logging.console.enabled", logs.Console.Enabled)
	v.SetDefault("logging.console.format", logs.Console.Format)
	v.SetDefault("logging.console.output", logs.Console.Output)
	v.SetDefault("logging.console.time_format", logs.Console.TimeFormat)
	v.SetDefault("logging.console.no_color", logs.Console.NoColor)
	v.SetDefault("logging.file.enabled", logs.File.Enabled)
	v.SetDefault("logging.file.path", logs.File.Path)
	v.SetDefault("logging.file.format", logs.File.Format)
	v.SetDefault("logging.add_caller", logs.AddCaller)
}
