package openapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/agentstation/apitemplate/pkg/errors"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.0.3"

// Info names the API in the generated document.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Generator builds schema documents from operations.
type Generator struct {
	info     Info
	comments Comments
}

// Option configures a Generator.
type Option func(*Generator)

// WithComments merges exported documentation into generated operations.
func WithComments(c Comments) Option {
	return func(g *Generator) {
		g.comments = c
	}
}

// NewGenerator returns a Generator for the given API.
func NewGenerator(info Info, opts ...Option) *Generator {
	g := &Generator{info: info, comments: Comments{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build generates and validates the document for ops.
func (g *Generator) Build(ctx context.Context, ops []Operation) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       g.info.Title,
			Version:     g.info.Version,
			Description: g.info.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	seen := make(map[string]bool, len(ops))
	for _, op := range ops {
		if op.Hidden {
			continue
		}
		op = g.comments.apply(op)

		if op.OperationID != "" {
			if seen[op.OperationID] {
				return nil, errors.NewValidationError("operationId", op.OperationID, "duplicate operationId")
			}
			seen[op.OperationID] = true
		}

		item := doc.Paths.Value(op.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(op.Path, item)
		}
		if item.GetOperation(op.Method) != nil {
			return nil, errors.NewValidationError("path", op.Method+" "+op.Path, "route declared twice")
		}
		item.SetOperation(op.Method, buildOperation(op))
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid api document: %w", err)
	}
	return doc, nil
}

func buildOperation(op Operation) *openapi3.Operation {
	operation := openapi3.NewOperation()
	operation.OperationID = op.OperationID
	operation.Summary = op.Summary
	operation.Description = op.Description
	operation.Tags = op.Tags

	declared := op.Responses
	if len(declared) == 0 {
		declared = []Response{{Status: http.StatusOK, Description: http.StatusText(http.StatusOK)}}
	}

	responses := openapi3.NewResponsesWithCapacity(len(declared))
	for _, r := range declared {
		description := r.Description
		if description == "" {
			description = http.StatusText(r.Status)
		}
		response := openapi3.NewResponse().WithDescription(description)

		if len(r.ContentTypes) > 0 {
			content := openapi3.NewContent()
			for _, ct := range r.ContentTypes {
				media := openapi3.NewMediaType()
				if r.Schema != nil {
					media = media.WithSchema(r.Schema)
				}
				content[ct] = media
			}
			response = response.WithContent(content)
		}
		responses.Set(statusKey(r.Status), &openapi3.ResponseRef{Value: response})
	}
	operation.Responses = responses
	return operation
}

func statusKey(status int) string {
	return strconv.Itoa(status)
}
