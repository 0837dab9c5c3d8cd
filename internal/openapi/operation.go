package openapi

import "github.com/getkin/kin-openapi/openapi3"

// Operation describes one documented route.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Responses   []Response

	// Hidden operations are routed but left out of the document.
	Hidden bool
}

// Response describes one declared response of an operation.
type Response struct {
	Status       int
	Description  string
	ContentTypes []string
	Schema       *openapi3.Schema
}

// StringResponse is a response whose body is a single string in each of
// the given content types.
func StringResponse(status int, description string, contentTypes ...string) Response {
	return Response{
		Status:       status,
		Description:  description,
		ContentTypes: contentTypes,
		Schema:       openapi3.NewStringSchema(),
	}
}
