package handlers

import (
	"net/http"

	"github.com/agentstation/apitemplate/pkg/constants"
)

const docsCacheControl = "public, max-age=3600"

// HandleOpenAPIJSON serves the generated document as JSON.
func (h *Handlers) HandleOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", docsCacheControl)
	_, _ = w.Write(h.doc.JSON)
}

// HandleOpenAPIYAML serves the generated document as YAML.
func (h *Handlers) HandleOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Cache-Control", docsCacheControl)
	_, _ = w.Write(h.doc.YAML)
}

// HandleSwaggerUI serves the browsable documentation page.
func (h *Handlers) HandleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.doc.UI)
}

// HandleSwaggerRoot redirects /swagger to the UI page.
func (h *Handlers) HandleSwaggerRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, constants.SwaggerUIPath, http.StatusMovedPermanently)
}

// DocsRoutes maps documentation paths to their handlers.
func (h *Handlers) DocsRoutes() map[string]http.Handler {
	return map[string]http.Handler{
		constants.SwaggerJSONPath:     http.HandlerFunc(h.HandleOpenAPIJSON),
		constants.SwaggerYAMLPath:     http.HandlerFunc(h.HandleOpenAPIYAML),
		constants.SwaggerPrefix:       http.HandlerFunc(h.HandleSwaggerRoot),
		constants.SwaggerPrefix + "/": http.HandlerFunc(h.HandleSwaggerUI),
		constants.SwaggerUIPath:       http.HandlerFunc(h.HandleSwaggerUI),
	}
}
