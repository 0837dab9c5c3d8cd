package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/apitemplate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("route", "/api/missing")
		assert.Equal(t, "route with ID /api/missing not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("route", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("server.http_port", 70000, "must be between 1 and 65535")
		assert.Equal(t, "validation failed for field server.http_port: must be between 1 and 65535", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	cause := pkgerrors.NewValidationError("hsts.max_age", -1, "must not be negative")
	err := pkgerrors.NewConfigError("hsts", "invalid max age", cause)

	assert.Equal(t, "configuration error in hsts: invalid max age", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	var target *pkgerrors.ValidationError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "hsts.max_age", target.Field)

	assert.Equal(t, "configuration error: missing", (&pkgerrors.ConfigError{Message: "missing"}).Error())
}

func TestStartupError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapStartup("listen", nil))
	})

	t.Run("wraps with stage", func(t *testing.T) {
		cause := errors.New("address already in use")
		err := pkgerrors.WrapStartup("listen", cause)

		assert.Equal(t, "startup failed during listen: address already in use", err.Error())
		assert.True(t, pkgerrors.IsStartupError(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("keeps the innermost stage", func(t *testing.T) {
		inner := pkgerrors.WrapStartup("openapi", errors.New("bad document"))
		outer := pkgerrors.WrapStartup("server", fmt.Errorf("building: %w", inner))

		var target *pkgerrors.StartupError
		require.True(t, errors.As(outer, &target))
		assert.Equal(t, "openapi", target.Stage)
	})
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapResource("load", "config", "", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "docs.yaml", nil))

	cause := errors.New("boom")
	err := pkgerrors.WrapResource("load", "config", "appsettings.yaml", cause)
	assert.Equal(t, "failed to load config appsettings.yaml: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	err = pkgerrors.WrapResource("create", "logger", "", cause)
	assert.Equal(t, "failed to create logger: boom", err.Error())

	err = pkgerrors.WrapParse("yaml", "docs.yaml", cause)
	assert.Equal(t, "parse error in yaml file docs.yaml: boom", err.Error())
	assert.Equal(t, "json parse error: boom", (&pkgerrors.ParseError{Format: "json", Message: "boom"}).Error())
}
