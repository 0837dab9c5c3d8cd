// Package response provides HTTP response helpers for the API server.
// Errors are written as RFC 9457 problem documents; successful string
// results are negotiated between text/plain and JSON.
package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agentstation/apitemplate/pkg/errors"
	"github.com/agentstation/apitemplate/pkg/jsonutil"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// Content types written by this package.
const (
	ContentTypeJSON    = "application/json; charset=utf-8"
	ContentTypeProblem = "application/problem+json"
	ContentTypeText    = "text/plain; charset=utf-8"
)

const statusDocBaseURL = "https://httpstatuses.io"

// Problem is an RFC 9457 problem document.
type Problem struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	TraceID   string `json:"traceId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewProblem builds a problem for status. r may be nil when the request is
// not available to the caller.
func NewProblem(r *http.Request, status int, detail string) Problem {
	p := Problem{
		Type:      fmt.Sprintf("%s/%d", statusDocBaseURL, status),
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if r != nil {
		p.Instance = r.URL.RequestURI()
		p.TraceID = logging.RequestID(r.Context())
	}
	if p.TraceID == "" {
		p.TraceID = NewTraceID()
	}
	return p
}

// WriteProblem writes a problem document and returns it.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) Problem {
	p := NewProblem(r, status, detail)
	writeJSON(w, status, ContentTypeProblem, p)
	return p
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	// Headers are already sent, so an encoding failure cannot be reported.
	_ = jsonutil.Encode(w, v)
}

// NotFound writes a 404 problem for an unrouted path.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, errors.NewNotFoundError("route", r.URL.Path))
}

// MethodNotAllowed writes a 405 problem.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteProblem(w, r, http.StatusMethodNotAllowed,
		fmt.Sprintf("Method %s is not supported for %s", r.Method, r.URL.Path))
}

// InternalError writes a 500 problem without exposing err to the client.
func InternalError(w http.ResponseWriter, r *http.Request) Problem {
	return WriteProblem(w, r, http.StatusInternalServerError, "")
}

// Error maps typed errors to problem responses. r may be nil.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.IsNotFound(err):
		WriteProblem(w, r, http.StatusNotFound, err.Error())
	case errors.IsValidationError(err):
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
	default:
		InternalError(w, r)
	}
}
