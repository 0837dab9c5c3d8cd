// Package handlers provides HTTP request handlers for the API server.
package handlers

import (
	"github.com/agentstation/apitemplate/internal/environment"
	"github.com/agentstation/apitemplate/internal/openapi"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	env environment.Name
	doc *openapi.Document
}

// New creates a new Handlers instance.
func New(env environment.Name, doc *openapi.Document) *Handlers {
	return &Handlers{
		env: env,
		doc: doc,
	}
}
