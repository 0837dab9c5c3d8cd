package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agentstation/apitemplate/internal/server/handlers"
	"github.com/agentstation/apitemplate/internal/server/middleware"
	"github.com/agentstation/apitemplate/internal/server/response"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// Stage names, in the order they can appear in the pipeline.
const (
	StageRequestID        = "request-id"
	StageRequestLogging   = "request-logging"
	StageDeveloperPage    = "developer-exception-page"
	StageExceptionHandler = "exception-handler"
	StageHSTS             = "hsts"
	StageDocs             = "docs"
	StageHTTPSRedirect    = "https-redirect"
	StageCORS             = "cors"
	StageRouting          = "routing"
)

// Stage is one named step of the request pipeline.
type Stage struct {
	Name       string
	Middleware func(http.Handler) http.Handler
}

// stages returns the middleware in the order requests pass through them.
// Routing is the terminal handler and is not included.
func (s *Server) stages(h *handlers.Handlers) []Stage {
	cfg := s.config
	httpLog := logging.Category(s.logger, s.levels, logging.CategoryHTTP)
	serverLog := logging.Category(s.logger, s.levels, logging.CategoryServer)
	trust := cfg.Server.TrustForwardedProto

	stages := []Stage{
		{StageRequestID, middleware.RequestID(&httpLog)},
		{StageRequestLogging, middleware.Logger(&httpLog)},
	}

	if cfg.Environment.IsDevelopment() {
		stages = append(stages, Stage{StageDeveloperPage, middleware.DeveloperExceptionPage(&serverLog)})
	} else {
		stages = append(stages,
			Stage{StageExceptionHandler, middleware.Recovery(&serverLog)},
			Stage{StageHSTS, middleware.HSTS(middleware.HSTSOptions{
				MaxAge:            cfg.HSTS.MaxAge,
				IncludeSubDomains: cfg.HSTS.IncludeSubDomains,
				Preload:           cfg.HSTS.Preload,
				ExcludedHosts:     cfg.HSTS.ExcludedHosts,
				TrustForwarded:    trust,
			})},
		)
	}

	if cfg.Server.HTTPSPort > 0 && !cfg.Server.TLSEnabled() && !trust {
		serverLog.Warn().
			Int("https_port", cfg.Server.HTTPSPort).
			Msg("Redirecting to an https port without a TLS listener or trusted proxy")
	}

	stages = append(stages,
		Stage{StageDocs, middleware.Docs(h.DocsRoutes())},
		Stage{StageHTTPSRedirect, middleware.HTTPSRedirect(middleware.RedirectOptions{
			Port:           cfg.Server.HTTPSPort,
			TrustForwarded: trust,
		}, &serverLog)},
	)

	if cfg.CORS.Enabled {
		corsConfig := middleware.DefaultCORSConfig()
		corsConfig.AllowedOrigins = cfg.CORS.AllowedOrigins
		if len(cfg.CORS.AllowedMethods) > 0 {
			corsConfig.AllowedMethods = cfg.CORS.AllowedMethods
		}
		if len(cfg.CORS.AllowedHeaders) > 0 {
			corsConfig.AllowedHeaders = cfg.CORS.AllowedHeaders
		}
		corsConfig.AllowCredentials = cfg.CORS.AllowCredentials
		if cfg.CORS.MaxAge > 0 {
			corsConfig.MaxAge = cfg.CORS.MaxAge
		}
		stages = append(stages, Stage{StageCORS, middleware.CORS(corsConfig)})
	}

	return stages
}

// router dispatches to the registered routes. Unknown paths and methods
// answer with problem responses.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.GetHead)
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	var validate func(http.Handler) http.Handler
	if s.config.Docs.ValidateRequests {
		validate = middleware.OpenAPIValidator(s.doc.Spec)
	}

	for _, route := range s.routes {
		// Hidden routes have no operation in the document to validate against.
		if validate != nil && !route.Hidden {
			r.With(validate).Method(route.Method, route.Path, route.Handler)
			continue
		}
		r.Method(route.Method, route.Path, route.Handler)
	}

	return r
}

func (s *Server) buildHandler(h *handlers.Handlers) http.Handler {
	stages := s.stages(h)

	s.pipeline = make([]string, 0, len(stages)+1)
	mws := make([]func(http.Handler) http.Handler, 0, len(stages))
	for _, st := range stages {
		s.pipeline = append(s.pipeline, st.Name)
		mws = append(mws, st.Middleware)
	}
	s.pipeline = append(s.pipeline, StageRouting)

	return middleware.Chain(mws...)(s.router())
}
