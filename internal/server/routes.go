package server

import (
	"net/http"

	"github.com/agentstation/apitemplate/internal/openapi"
)

// Route is a documented operation and the handler that serves it.
type Route struct {
	openapi.Operation
	Handler http.Handler
}

// healthOperation documents GET /api/health.
var healthOperation = openapi.Operation{
	Method:      http.MethodGet,
	Path:        "/api/health",
	OperationID: "getHealth",
	Summary:     "Report service health",
	Description: "Returns the name of the environment the service is running in.",
	Tags:        []string{"Health"},
	Responses: []openapi.Response{
		openapi.StringResponse(http.StatusOK, "The environment name",
			"text/plain", "application/json"),
	},
}

func operations(routes []Route) []openapi.Operation {
	ops := make([]openapi.Operation, 0, len(routes))
	for _, r := range routes {
		ops = append(ops, r.Operation)
	}
	return ops
}
