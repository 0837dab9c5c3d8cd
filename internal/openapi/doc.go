// Package openapi generates the API schema document from the route table.
//
// The generator walks the documented operations, merges in descriptions
// exported to a comments file, validates the result and renders it once
// as JSON and YAML together with a Swagger UI page that loads it.
package openapi
