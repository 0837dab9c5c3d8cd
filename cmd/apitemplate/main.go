// Package main provides the entry point for the apitemplate service.
package main

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/apitemplate/cmd/apitemplate/app"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.Fatal(logging.Default(), err)
	}

	// Cancelled on SIGINT/SIGTERM; the server drains and Execute returns.
	ctx, cancel := app.ContextWithSignals(context.Background())
	err = application.Execute(ctx, os.Args[1:])
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err != nil {
		// The log file stays open so the fatal entry reaches it.
		app.Fatal(application.Logger(), err)
	}
	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger().Error().Err(err).Msg("Shutdown error")
	}
}
