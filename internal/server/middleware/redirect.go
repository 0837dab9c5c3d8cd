package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/unrolled/secure"
)

// RedirectOptions configures the HTTPS redirect stage.
type RedirectOptions struct {
	// Port is the HTTPS port clients are sent to. Zero disables the redirect.
	Port           int
	TrustForwarded bool
}

// HTTPSRedirect sends every insecure request to the same host, path and
// query over HTTPS with a 307. The port is omitted when it is 443. Without
// a port the stage passes requests through and logs one warning.
func HTTPSRedirect(opts RedirectOptions, logger *zerolog.Logger) func(http.Handler) http.Handler {
	hostFunc := secure.SSLHostFunc(func(host string) string {
		return HTTPSHost(host, opts.Port)
	})
	redirect := secure.New(secure.Options{
		SSLRedirect:          true,
		SSLTemporaryRedirect: true,
		SSLHostFunc:          &hostFunc,
		SSLProxyHeaders:      proxyHeaders(opts.TrustForwarded),
	})

	return func(next http.Handler) http.Handler {
		if opts.Port <= 0 {
			logger.Warn().Msg("Failed to determine the https port for redirect")
			return next
		}
		return redirect.Handler(next)
	}
}

// HTTPSHost returns host with its port replaced by port, omitting 443.
func HTTPSHost(host string, port int) string {
	name := hostname(host)
	if port == 443 {
		if ip := net.ParseIP(name); ip != nil && ip.To4() == nil {
			return "[" + name + "]"
		}
		return name
	}
	return net.JoinHostPort(name, strconv.Itoa(port))
}
