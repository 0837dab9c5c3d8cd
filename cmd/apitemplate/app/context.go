package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals returns a child of parent that is cancelled on SIGINT
// or SIGTERM. Cancellation starts the server's graceful shutdown.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
