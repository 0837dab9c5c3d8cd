package handlers

import (
	"net/http"

	"github.com/agentstation/apitemplate/internal/server/response"
	"github.com/agentstation/apitemplate/pkg/logging"
)

// HandleHealth handles GET /api/health. The body is the name of the
// environment the service runs in, as text or as a JSON string depending
// on the Accept header.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	logging.FromContext(r.Context()).Debug().
		Str("environment", h.env.String()).
		Msg("Health checked")
	response.String(w, r, http.StatusOK, h.env.String())
}
