package openapi

import (
	"bytes"
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/apitemplate/pkg/errors"
	"github.com/agentstation/apitemplate/pkg/jsonutil"
)

// Document is a generated schema rendered once for serving.
type Document struct {
	Spec *openapi3.T
	JSON []byte
	YAML []byte
	UI   []byte
}

// Render encodes spec as JSON and YAML and renders the UI page for it.
func Render(spec *openapi3.T, ui UIData) (*Document, error) {
	data, err := jsonutil.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, errors.WrapResource("render", "document", "json", err)
	}

	yamlData, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, errors.WrapResource("render", "document", "yaml", err)
	}

	var page bytes.Buffer
	if err := RenderUI(&page, ui); err != nil {
		return nil, errors.WrapResource("render", "document", "ui", err)
	}

	return &Document{
		Spec: spec,
		JSON: data,
		YAML: yamlData,
		UI:   page.Bytes(),
	}, nil
}

// Generate builds, validates and renders the document for ops in one step.
func Generate(ctx context.Context, info Info, ops []Operation, ui UIData, opts ...Option) (*Document, error) {
	spec, err := NewGenerator(info, opts...).Build(ctx, ops)
	if err != nil {
		return nil, err
	}
	return Render(spec, ui)
}
