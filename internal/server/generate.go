// Package server assembles the HTTP service: the documented routes, the
// request pipeline in front of them and the listeners that serve it.
//
// The pipeline runs, in order: request id, request logging, the developer
// exception page (Development) or the generic exception handler and HSTS
// (everything else), documentation, HTTPS redirect, CORS when enabled and
// finally route dispatch.
//
// Usage:
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server

//go:generate gomarkdoc --output README.md .
