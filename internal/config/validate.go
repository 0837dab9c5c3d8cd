package config

import (
	"fmt"

	"github.com/agentstation/apitemplate/pkg/errors"
)

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.ApplicationName == "" {
		return errors.NewConfigError("config", "application_name must not be empty", nil)
	}

	s := c.Server
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return errors.NewConfigError("server", fmt.Sprintf("http_port %d out of range", s.HTTPPort), nil)
	}
	if s.HTTPSPort < 0 || s.HTTPSPort > 65535 {
		return errors.NewConfigError("server", fmt.Sprintf("https_port %d out of range", s.HTTPSPort), nil)
	}
	if (s.TLSCertFile == "") != (s.TLSKeyFile == "") {
		return errors.NewConfigError("server", "tls_cert_file and tls_key_file must be set together", nil)
	}
	if s.TLSCertFile != "" && s.HTTPSPort == 0 {
		return errors.NewConfigError("server", "https_port is required when TLS is configured", nil)
	}
	if s.TLSEnabled() && s.HTTPSPort == s.HTTPPort {
		return errors.NewConfigError("server", "http_port and https_port must differ", nil)
	}
	for name, d := range map[string]int64{
		"read_timeout":     int64(s.ReadTimeout),
		"write_timeout":    int64(s.WriteTimeout),
		"idle_timeout":     int64(s.IdleTimeout),
		"shutdown_timeout": int64(s.ShutdownTimeout),
	} {
		if d < 0 {
			return errors.NewConfigError("server", name+" must not be negative", nil)
		}
	}

	if c.HSTS.MaxAge < 0 {
		return errors.NewConfigError("hsts", "max_age must not be negative", nil)
	}

	if c.CORS.Enabled && len(c.CORS.AllowedOrigins) == 0 {
		return errors.NewConfigError("cors", "allowed_origins must not be empty when enabled", nil)
	}

	return c.Logging.Validate()
}
