package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/internal/config"
	"github.com/agentstation/apitemplate/internal/openapi"
	"github.com/agentstation/apitemplate/internal/server/handlers"
	"github.com/agentstation/apitemplate/pkg/constants"
	"github.com/agentstation/apitemplate/pkg/errors"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// Server holds the HTTP service state.
type Server struct {
	config  *config.Config
	logger  zerolog.Logger
	levels  logging.Levels
	doc     *openapi.Document
	routes  []Route
	handler http.Handler

	pipeline []string
	baseDir  string
	extra    []Route
	comments openapi.Comments
}

// Option configures a Server.
type Option func(*Server)

// WithRoutes registers additional documented routes next to the built-in
// health check.
func WithRoutes(routes ...Route) Option {
	return func(s *Server) {
		s.extra = append(s.extra, routes...)
	}
}

// WithComments supplies operation documentation instead of reading the
// configured comments file.
func WithComments(c openapi.Comments) Option {
	return func(s *Server) {
		s.comments = c
	}
}

// WithBaseDir sets the directory relative files resolve against. It
// defaults to the directory of the running binary.
func WithBaseDir(dir string) Option {
	return func(s *Server) {
		s.baseDir = dir
	}
}

// New builds the API document and the request pipeline for cfg. It fails
// when the document cannot be generated.
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Server, error) {
	levels, err := cfg.Logging.Levels()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		logger: logger,
		levels: levels,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.baseDir == "" {
		s.baseDir = logging.ExecutableDir()
	}

	startup := logging.Category(logger, levels, logging.CategoryOpenAPI)

	if s.comments == nil {
		file := cfg.Docs.CommentsFile
		if file == "" {
			file = constants.DocsCommentsFileName
		}
		path := logging.ResolvePath(file, s.baseDir)
		comments, err := openapi.LoadComments(path)
		if err != nil {
			return nil, errors.WrapStartup("documentation", err)
		}
		startup.Debug().Str("file", path).Int("operations", len(comments)).Msg("Loaded operation comments")
		s.comments = comments
	}

	ops := append([]openapi.Operation{healthOperation}, operations(s.extra)...)
	doc, err := openapi.Generate(context.Background(),
		openapi.Info{Title: cfg.ApplicationName, Version: constants.APIVersion},
		ops,
		openapi.UIData{
			Title:     cfg.ApplicationName,
			SpecURL:   constants.SwaggerJSONPath,
			SpecLabel: cfg.ApplicationName + " " + constants.APIVersion,
		},
		openapi.WithComments(s.comments),
	)
	if err != nil {
		return nil, errors.WrapStartup("documentation", err)
	}
	s.doc = doc
	startup.Debug().Int("operations", len(ops)).Msg("Generated API document")

	h := handlers.New(cfg.Environment, doc)
	s.routes = append([]Route{{Operation: healthOperation, Handler: http.HandlerFunc(h.HandleHealth)}}, s.extra...)
	s.handler = s.buildHandler(h)

	return s, nil
}

// Handler returns the request pipeline.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Document returns the generated API document.
func (s *Server) Document() *openapi.Document {
	return s.doc
}

// Routes returns the registered routes, built-in ones first.
func (s *Server) Routes() []Route {
	return s.routes
}

// Pipeline returns the stage names in the order requests pass them.
func (s *Server) Pipeline() []string {
	return s.pipeline
}

func (s *Server) httpServer(addr string) *http.Server {
	serverLog := logging.Category(s.logger, s.levels, logging.CategoryServer)
	return &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       s.config.Server.IdleTimeout,
		ErrorLog:          log.New(serverLog, "", 0),
	}
}

// Run serves HTTP, and HTTPS when a certificate is configured, until ctx
// is cancelled. Listeners are then drained within the shutdown timeout.
// A listener that fails to start ends Run with a startup error.
func (s *Server) Run(ctx context.Context) error {
	logger := logging.Category(s.logger, s.levels, logging.CategoryServer)
	cfg := s.config.Server

	servers := []*http.Server{s.httpServer(cfg.HTTPAddr())}
	if cfg.TLSEnabled() {
		servers = append(servers, s.httpServer(cfg.HTTPSAddr()))
	}

	serverErr := make(chan error, len(servers))
	for i, srv := range servers {
		srv := srv
		tls := i > 0
		go func() {
			logger.Info().
				Str("addr", srv.Addr).
				Bool("tls", tls).
				Str("environment", s.config.Environment.String()).
				Msg("Now listening")

			var err error
			if tls {
				err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			} else {
				err = srv.ListenAndServe()
			}
			if err != nil && err != http.ErrServerClosed {
				serverErr <- errors.WrapStartup("listen", fmt.Errorf("%s: %w", srv.Addr, err))
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-serverErr:
	case <-ctx.Done():
		logger.Info().Msg("Application is shutting down")
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = constants.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Str("addr", srv.Addr).Msg("Server shutdown did not complete")
			if runErr == nil {
				runErr = fmt.Errorf("server shutdown failed: %w", err)
			}
		}
	}

	if runErr == nil {
		logger.Info().Msg("Server stopped gracefully")
	}
	return runErr
}
