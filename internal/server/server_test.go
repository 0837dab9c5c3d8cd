package server_test

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/apitemplate/internal/config"
	"github.com/agentstation/apitemplate/internal/environment"
	"github.com/agentstation/apitemplate/internal/openapi"
	"github.com/agentstation/apitemplate/internal/server"
	"github.com/agentstation/apitemplate/pkg/errors"
	"github.com/agentstation/apitemplate/pkg/jsonutil"
	"github.com/agentstation/apitemplate/pkg/logging"
)

func testConfig(env environment.Name) *config.Config {
	return &config.Config{
		Environment:     env,
		ApplicationName: "apitemplate",
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			HTTPPort:        5000,
			HTTPSPort:       443,
			ShutdownTimeout: time.Second,
		},
		HSTS:    config.HSTSConfig{MaxAge: 30 * 24 * time.Hour},
		Logging: *logging.DefaultConfig(),
	}
}

func newServer(t *testing.T, cfg *config.Config, opts ...server.Option) *server.Server {
	t.Helper()
	opts = append([]server.Option{server.WithBaseDir(t.TempDir())}, opts...)
	srv, err := server.New(cfg, logging.Nop, opts...)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func overTLS(r *http.Request) { r.TLS = &tls.ConnectionState{} }

func panicRoute() server.Route {
	return server.Route{
		Operation: openapi.Operation{
			Method:      http.MethodGet,
			Path:        "/api/boom",
			OperationID: "boom",
			Hidden:      true,
		},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("database password leaked")
		}),
	}
}

func hiddenRoute(path string) server.Route {
	return server.Route{
		Operation: openapi.Operation{
			Method:      http.MethodGet,
			Path:        path,
			OperationID: "internal",
			Hidden:      true,
		},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("internal"))
		}),
	}
}

func TestHealthOverHTTPS(t *testing.T) {
	envs := []environment.Name{
		environment.Production,
		environment.Development,
		environment.Staging,
		environment.Parse("production"),
		environment.Parse("DEVELOPMENT"),
		environment.Parse("QA"),
	}
	for _, env := range envs {
		t.Run(env.String(), func(t *testing.T) {
			srv := newServer(t, testConfig(env))

			w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/health", overTLS)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, env.String(), w.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestHealthRedirectsPlainHTTP(t *testing.T) {
	srv := newServer(t, testConfig(environment.Production))

	w := do(t, srv.Handler(), http.MethodGet, "http://api.example.com/api/health?probe=1")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://api.example.com/api/health?probe=1", w.Header().Get("Location"))
}

func TestHealthWithoutHTTPSPort(t *testing.T) {
	cfg := testConfig(environment.Production)
	cfg.Server.HTTPSPort = 0
	srv := newServer(t, cfg)

	w := do(t, srv.Handler(), http.MethodGet, "http://api.example.com/api/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Production", w.Body.String())
}

func TestHealthHead(t *testing.T) {
	srv := newServer(t, testConfig(environment.Production))

	w := do(t, srv.Handler(), http.MethodHead, "https://api.example.com/api/health", overTLS)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPipelineOrder(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		srv := newServer(t, testConfig(environment.Development))
		assert.Equal(t, []string{
			"request-id", "request-logging", "developer-exception-page",
			"docs", "https-redirect", "routing",
		}, srv.Pipeline())
	})

	t.Run("production with cors", func(t *testing.T) {
		cfg := testConfig(environment.Production)
		cfg.CORS = config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}}
		srv := newServer(t, cfg)
		assert.Equal(t, []string{
			"request-id", "request-logging", "exception-handler", "hsts",
			"docs", "https-redirect", "cors", "routing",
		}, srv.Pipeline())
	})
}

func TestHSTS(t *testing.T) {
	t.Run("production secure request", func(t *testing.T) {
		srv := newServer(t, testConfig(environment.Production))
		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/health", overTLS)
		assert.Equal(t, "max-age=2592000", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("production localhost", func(t *testing.T) {
		srv := newServer(t, testConfig(environment.Production))
		w := do(t, srv.Handler(), http.MethodGet, "https://localhost/api/health", overTLS)
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("development", func(t *testing.T) {
		srv := newServer(t, testConfig(environment.Development))
		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/health", overTLS)
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})
}

func TestUnhandledPanic(t *testing.T) {
	t.Run("development shows details", func(t *testing.T) {
		srv := newServer(t, testConfig(environment.Development), server.WithRoutes(panicRoute()))

		w := do(t, srv.Handler(), http.MethodGet, "https://localhost/api/boom", overTLS)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "database password leaked")
		assert.Contains(t, w.Body.String(), "goroutine")
	})

	t.Run("production hides details", func(t *testing.T) {
		srv := newServer(t, testConfig(environment.Production), server.WithRoutes(panicRoute()))

		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/boom", overTLS)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
		assert.NotContains(t, w.Body.String(), "database password")
		assert.NotContains(t, w.Body.String(), "goroutine")
	})
}

func TestDocumentation(t *testing.T) {
	srv := newServer(t, testConfig(environment.Production))

	// Served over plain HTTP: docs run before the redirect.
	w := do(t, srv.Handler(), http.MethodGet, "http://api.example.com/swagger/v1/swagger.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			OperationID string   `json:"operationId"`
			Tags        []string `json:"tags"`
		} `json:"paths"`
	}
	require.NoError(t, jsonutil.Unmarshal(w.Body.Bytes(), &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "apitemplate", doc.Info.Title)
	assert.Equal(t, "v1", doc.Info.Version)
	require.Contains(t, doc.Paths, "/api/health")
	assert.Equal(t, "getHealth", doc.Paths["/api/health"]["get"].OperationID)
	assert.Equal(t, []string{"Health"}, doc.Paths["/api/health"]["get"].Tags)

	ui := do(t, srv.Handler(), http.MethodGet, "http://api.example.com/swagger/index.html")
	assert.Equal(t, http.StatusOK, ui.Code)
	assert.Contains(t, ui.Body.String(), "swagger.json")

	root := do(t, srv.Handler(), http.MethodGet, "http://api.example.com/swagger")
	assert.Equal(t, http.StatusMovedPermanently, root.Code)
}

func TestDocumentationHidesHiddenRoutes(t *testing.T) {
	srv := newServer(t, testConfig(environment.Production), server.WithRoutes(panicRoute()))

	assert.Len(t, srv.Routes(), 2)
	assert.Nil(t, srv.Document().Spec.Paths.Value("/api/boom"))
	assert.NotNil(t, srv.Document().Spec.Paths.Value("/api/health"))
}

func TestDocumentationComments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apitemplate.docs.yaml"), []byte(`
getHealth:
  summary: Is it up?
  responses:
    "200": The current environment
`), 0o600))

	srv := newServer(t, testConfig(environment.Production), server.WithBaseDir(dir))

	op := srv.Document().Spec.Paths.Value("/api/health").Get
	assert.Equal(t, "Is it up?", op.Summary)
	assert.Equal(t, "The current environment", *op.Responses.Status(200).Value.Description)
}

func TestNewFailsOnMalformedComments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apitemplate.docs.yaml"), []byte("getHealth: [unterminated"), 0o600))

	_, err := server.New(testConfig(environment.Production), logging.Nop, server.WithBaseDir(dir))
	require.Error(t, err)
	assert.True(t, errors.IsStartupError(err))
}

func TestNewFailsOnDuplicateRoutes(t *testing.T) {
	dup := server.Route{
		Operation: openapi.Operation{Method: http.MethodGet, Path: "/api/health", OperationID: "health2"},
		Handler:   http.NotFoundHandler(),
	}

	_, err := server.New(testConfig(environment.Production), logging.Nop,
		server.WithBaseDir(t.TempDir()), server.WithRoutes(dup))
	require.Error(t, err)
	assert.True(t, errors.IsStartupError(err))
}

func TestUnknownRoutes(t *testing.T) {
	srv := newServer(t, testConfig(environment.Production))

	t.Run("not found", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/nope", overTLS)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodDelete, "https://api.example.com/api/health", overTLS)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	})
}

func TestRequestValidation(t *testing.T) {
	cfg := testConfig(environment.Production)
	cfg.Docs.ValidateRequests = true
	srv := newServer(t, cfg, server.WithRoutes(hiddenRoute("/api/internal")))

	t.Run("documented route", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/health", overTLS)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Production", w.Body.String())
	})

	t.Run("head validated as get", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodHead, "https://api.example.com/api/health", overTLS)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("hidden route skips validation", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/internal", overTLS)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "internal", w.Body.String())
	})

	t.Run("unknown route still not found", func(t *testing.T) {
		w := do(t, srv.Handler(), http.MethodGet, "https://api.example.com/api/nope", overTLS)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestShippedSettings(t *testing.T) {
	for _, key := range environment.Variables {
		t.Setenv(key, "")
	}

	for _, env := range []string{"Production", "Development"} {
		t.Run(env, func(t *testing.T) {
			cfg, err := config.Load(config.LoadOptions{
				SearchPaths: []string{filepath.Join("..", "..")},
				Environment: env,
				EnvFiles:    []string{},
			})
			require.NoError(t, err)
			require.Len(t, cfg.Files, map[string]int{"Production": 1, "Development": 2}[env])
			srv := newServer(t, cfg)

			w := do(t, srv.Handler(), http.MethodGet, "http://example.com/api/health?x=1")
			assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
			assert.Equal(t, "https://example.com:5001/api/health?x=1", w.Header().Get("Location"))

			w = do(t, srv.Handler(), http.MethodHead, "https://example.com:5001/api/health", overTLS)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRedirectWithoutTLSListenerWarns(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		warn   bool
	}{
		{"no listener", func(c *config.Config) {}, true},
		{"tls listener", func(c *config.Config) {
			c.Server.TLSCertFile, c.Server.TLSKeyFile = "server.crt", "server.key"
		}, false},
		{"trusted proxy", func(c *config.Config) { c.Server.TrustForwardedProto = true }, false},
		{"redirect disabled", func(c *config.Config) { c.Server.HTTPSPort = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := logging.NewTestLogger(t)
			cfg := testConfig(environment.Production)
			tt.mutate(cfg)

			_, err := server.New(cfg, *tl.Logger, server.WithBaseDir(t.TempDir()))
			require.NoError(t, err)

			assert.Equal(t, tt.warn, tl.Contains("without a TLS listener"), tl.Output())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig(environment.Production)
	cfg.CORS = config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}}
	srv := newServer(t, cfg)

	w := do(t, srv.Handler(), http.MethodOptions, "https://api.example.com/api/health", overTLS, func(r *http.Request) {
		r.Header.Set("Origin", "https://app.example.com")
		r.Header.Set("Access-Control-Request-Method", "GET")
	})

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun(t *testing.T) {
	cfg := testConfig(environment.Production)
	cfg.Server.HTTPPort = 0
	srv := newServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRunFailsWithMissingCertificate(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(environment.Production)
	cfg.Server.HTTPPort = 0
	cfg.Server.HTTPSPort = freePort(t)
	cfg.Server.TLSCertFile = filepath.Join(dir, "missing.crt")
	cfg.Server.TLSKeyFile = filepath.Join(dir, "missing.key")
	srv := newServer(t, cfg)

	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsStartupError(err))
	assert.Contains(t, err.Error(), "missing.crt")
}
