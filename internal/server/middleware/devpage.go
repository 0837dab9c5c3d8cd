package middleware

import (
	"fmt"
	"html/template"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/internal/server/response"
)

var developerPage = template.Must(template.New("developer-exception").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Internal Server Error</title>
<style>
body { font-family: -apple-system, Segoe UI, sans-serif; margin: 2em; color: #222; }
h1 { color: #b00020; font-weight: 400; }
pre { background: #f6f6f6; padding: 1em; overflow-x: auto; font-size: 13px; }
</style>
</head>
<body>
<h1>An unhandled exception occurred while processing the request.</h1>
<p><strong>{{.Method}} {{.Path}}</strong></p>
<h2>{{.Message}}</h2>
<h3>Stack</h3>
<pre>{{.Stack}}</pre>
</body>
</html>
`))

type developerPageData struct {
	Method  string
	Path    string
	Message string
	Stack   string
}

// DeveloperExceptionPage recovers from panics and answers with a 500 that
// shows the panic value and stack trace. Clients that accept text/html get
// a page; others get plain text.
func DeveloperExceptionPage(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := debug.Stack()
				logPanic(logger, r, rec, stack, "")
				if wrapped.wroteHeader {
					return
				}

				data := developerPageData{
					Method:  r.Method,
					Path:    r.URL.RequestURI(),
					Message: fmt.Sprint(rec),
					Stack:   string(stack),
				}
				wrapped.Header().Del("Content-Length")
				if response.AcceptsHTML(r) {
					wrapped.Header().Set("Content-Type", "text/html; charset=utf-8")
					wrapped.WriteHeader(http.StatusInternalServerError)
					_ = developerPage.Execute(wrapped, data)
					return
				}
				wrapped.Header().Set("Content-Type", response.ContentTypeText)
				wrapped.WriteHeader(http.StatusInternalServerError)
				_, _ = fmt.Fprintf(wrapped, "panic: %s\n\n%s %s\n\n%s", data.Message, data.Method, data.Path, data.Stack)
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
