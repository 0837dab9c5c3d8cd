package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/internal/config"
)

// Mock is an Application for command tests. Each method calls the
// matching function field, or returns a zero value when it is nil.
type Mock struct {
	ConfigFunc  func() *config.Config
	LoggerFunc  func() *zerolog.Logger
	BaseDirFunc func() string
	VersionFunc func() string
	CommitFunc  func() string
	DateFunc    func() string
	BuiltByFunc func() string
}

var _ Application = (*Mock)(nil)

// Config returns the mock configuration.
func (m *Mock) Config() *config.Config {
	if m.ConfigFunc != nil {
		return m.ConfigFunc()
	}
	return nil
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// BaseDir returns the mock base directory.
func (m *Mock) BaseDir() string {
	if m.BaseDirFunc != nil {
		return m.BaseDirFunc()
	}
	return ""
}

// Version returns the mock version or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit.
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock build date.
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder.
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
