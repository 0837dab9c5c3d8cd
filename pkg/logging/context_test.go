package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/apitemplate/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Same(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger round trips", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		assert.Same(t, tl.Logger, logging.FromContext(ctx))
	})

	t.Run("WithRequestID tags logger", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithRequestID(ctx, "01J0000000000000000000000")

		assert.Equal(t, "01J0000000000000000000000", logging.RequestID(ctx))
		logging.FromContext(ctx).Info().Msg("tagged")
		tl.AssertContains(t, `"request_id":"01J0000000000000000000000"`)
	})

	t.Run("RequestID empty when unset", func(t *testing.T) {
		assert.Empty(t, logging.RequestID(context.Background()))
	})
}
