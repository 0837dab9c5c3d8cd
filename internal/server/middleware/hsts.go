package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/unrolled/secure"
)

// HSTSOptions configures the Strict-Transport-Security stage.
type HSTSOptions struct {
	MaxAge            time.Duration
	IncludeSubDomains bool
	Preload           bool
	ExcludedHosts     []string
	TrustForwarded    bool
}

var loopbackHosts = []string{"localhost", "127.0.0.1", "::1"}

// forwardedProto marks a request as secure when a trusted proxy terminated TLS.
var forwardedProto = map[string]string{"X-Forwarded-Proto": "https"}

func proxyHeaders(trust bool) map[string]string {
	if trust {
		return forwardedProto
	}
	return nil
}

// HSTS adds Strict-Transport-Security to secure responses. Loopback hosts
// and the configured excluded hosts never receive the header. A zero
// MaxAge sends no header.
func HSTS(opts HSTSOptions) func(http.Handler) http.Handler {
	sts := secure.New(secure.Options{
		STSSeconds:           int64(opts.MaxAge / time.Second),
		STSIncludeSubdomains: opts.IncludeSubDomains,
		STSPreload:           opts.Preload,
		SSLProxyHeaders:      proxyHeaders(opts.TrustForwarded),
	})

	excluded := make(map[string]bool, len(loopbackHosts)+len(opts.ExcludedHosts))
	for _, h := range append(append([]string{}, loopbackHosts...), opts.ExcludedHosts...) {
		excluded[strings.ToLower(hostname(h))] = true
	}

	return func(next http.Handler) http.Handler {
		withHeader := sts.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if excluded[strings.ToLower(hostname(r.Host))] {
				next.ServeHTTP(w, r)
				return
			}
			withHeader.ServeHTTP(w, r)
		})
	}
}

// hostname returns r.Host without port or IPv6 brackets.
func hostname(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return strings.TrimSuffix(strings.TrimPrefix(hostport, "["), "]")
}
