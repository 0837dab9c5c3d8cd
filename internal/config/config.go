// Package config loads the service configuration once at startup from
// appsettings files, .env files, environment variables and command flags.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/agentstation/apitemplate/internal/environment"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// Config is the resolved service configuration. It is built by Load and
// not modified afterwards.
type Config struct {
	// Environment is resolved from ENVIRONMENT or the --environment flag,
	// never from the settings files it selects.
	Environment environment.Name `mapstructure:"-"`

	ApplicationName string         `mapstructure:"application_name"`
	Server          ServerConfig   `mapstructure:"server"`
	HSTS            HSTSConfig     `mapstructure:"hsts"`
	CORS            CORSConfig     `mapstructure:"cors"`
	Docs            DocsConfig     `mapstructure:"docs"`
	Logging         logging.Config `mapstructure:"logging"`

	// Files lists the settings files that were read, in merge order.
	Files []string `mapstructure:"-"`
}

// ServerConfig configures the listeners.
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	HTTPPort  int    `mapstructure:"http_port"`
	HTTPSPort int    `mapstructure:"https_port"` // redirect target; 0 disables the redirect

	TLSCertFile string `mapstructure:"tls_cert_file"`
	TLSKeyFile  string `mapstructure:"tls_key_file"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// TrustForwardedProto treats X-Forwarded-Proto: https as a secure request.
	TrustForwardedProto bool `mapstructure:"trust_forwarded_proto"`
}

// HTTPAddr is the plain HTTP listen address.
func (s ServerConfig) HTTPAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
}

// HTTPSAddr is the TLS listen address.
func (s ServerConfig) HTTPSAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPSPort))
}

// TLSEnabled reports whether the process terminates TLS itself.
func (s ServerConfig) TLSEnabled() bool {
	return s.TLSCertFile != "" && s.TLSKeyFile != "" && s.HTTPSPort > 0
}

// HSTSConfig configures the Strict-Transport-Security header.
type HSTSConfig struct {
	MaxAge            time.Duration `mapstructure:"max_age"`
	IncludeSubDomains bool          `mapstructure:"include_subdomains"`
	Preload           bool          `mapstructure:"preload"`
	ExcludedHosts     []string      `mapstructure:"excluded_hosts"`
}

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// DocsConfig configures the generated API document.
type DocsConfig struct {
	// CommentsFile holds operation descriptions keyed by operationId.
	// Relative paths resolve against the binary's directory.
	CommentsFile string `mapstructure:"comments_file"`

	// ValidateRequests checks /api requests against the document.
	ValidateRequests bool `mapstructure:"validate_requests"`
}
