package middleware

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"

	"github.com/agentstation/apitemplate/internal/server/response"
	"github.com/agentstation/apitemplate/pkg/errors"
)

type headRequestKey struct{}

// OpenAPIValidator rejects requests that do not match an operation in spec
// with a problem response. HEAD requests are validated as GET.
func OpenAPIValidator(spec *openapi3.T) func(http.Handler) http.Handler {
	// Validate against paths only; the listen address is not known here.
	validated := *spec
	validated.Servers = nil

	validate := oapiMW.OapiRequestValidatorWithOptions(&validated, &oapiMW.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
				return nil
			},
		},
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			if statusCode == http.StatusBadRequest {
				response.Error(w, nil, errors.NewValidationError("", nil, message))
				return
			}
			response.WriteProblem(w, nil, statusCode, message)
		},
	})

	return func(next http.Handler) http.Handler {
		checked := validate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if head, ok := r.Context().Value(headRequestKey{}).(*http.Request); ok {
				r = head
			}
			next.ServeHTTP(w, r)
		}))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodHead {
				checked.ServeHTTP(w, r)
				return
			}
			get := r.Clone(context.WithValue(r.Context(), headRequestKey{}, r))
			get.Method = http.MethodGet
			checked.ServeHTTP(w, get)
		})
	}
}
