// Package constants provides shared constants used throughout the apitemplate
// codebase. This includes timeouts, file permissions, well-known paths, and
// other defaults that should be consistent across the application.
package constants

import "time"

// Timeout constants define the HTTP server timeouts
const (
	// DefaultReadTimeout bounds reading an entire request
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds keep-alive connections between requests
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests get to drain on shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Network defaults
const (
	// DefaultHost is the default bind address
	DefaultHost = "localhost"

	// DefaultHTTPPort is the default plain HTTP port
	DefaultHTTPPort = 5000

	// DefaultHTTPSPort is the standard HTTPS port; redirects to it omit the port
	DefaultHTTPSPort = 443
)

// Default values
const (
	// DefaultApplicationName is used as the API document title when none is configured
	DefaultApplicationName = "apitemplate"

	// DefaultEnvironment is the environment assumed when nothing is configured
	DefaultEnvironment = "Production"

	// DefaultHSTSMaxAge is the Strict-Transport-Security max-age (30 days)
	DefaultHSTSMaxAge = 30 * 24 * time.Hour
)

// Path constants
const (
	// SettingsFileName is the base name of the layered settings files
	// (appsettings.yaml, appsettings.Development.yaml, ...)
	SettingsFileName = "appsettings"

	// LogFileName is the log file written next to the binary
	LogFileName = "log.txt"

	// DocsCommentsFileName is the documentation comment export read at startup
	DocsCommentsFileName = "apitemplate.docs.yaml"
)

// Documentation constants
const (
	// APIVersion is the name and version of the only API document
	APIVersion = "v1"

	// SwaggerPrefix is the path prefix owned by the documentation endpoints
	SwaggerPrefix = "/swagger"

	// SwaggerJSONPath serves the generated schema document
	SwaggerJSONPath = SwaggerPrefix + "/" + APIVersion + "/swagger.json"

	// SwaggerYAMLPath serves the same document as YAML
	SwaggerYAMLPath = SwaggerPrefix + "/" + APIVersion + "/swagger.yaml"

	// SwaggerUIPath serves the browsable documentation UI
	SwaggerUIPath = SwaggerPrefix + "/index.html"
)

// Format constants
const (
	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"

	// TimeFormatDay identifies a calendar day. Rolled log files carry it,
	// as in log20260301.txt
	TimeFormatDay = "20060102"
)
