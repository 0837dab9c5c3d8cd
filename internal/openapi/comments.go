package openapi

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/apitemplate/pkg/errors"
)

// Comments holds operation documentation exported alongside the binary,
// keyed by operationId.
type Comments map[string]OperationComment

// OperationComment overrides the in-code documentation of one operation.
// Response descriptions are keyed by status code.
type OperationComment struct {
	Summary     string            `yaml:"summary"`
	Description string            `yaml:"description"`
	Responses   map[string]string `yaml:"responses"`
}

// LoadComments reads a comments file. A missing file yields no comments;
// a malformed one is an error.
func LoadComments(path string) (Comments, error) {
	if path == "" {
		return Comments{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Comments{}, nil
		}
		return nil, errors.WrapResource("read", "comments file", path, err)
	}

	comments := Comments{}
	if err := yaml.Unmarshal(data, &comments); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return comments, nil
}

// apply returns op with any exported documentation merged in.
func (c Comments) apply(op Operation) Operation {
	comment, ok := c[op.OperationID]
	if !ok {
		return op
	}

	if comment.Summary != "" {
		op.Summary = comment.Summary
	}
	if comment.Description != "" {
		op.Description = comment.Description
	}
	if len(comment.Responses) > 0 {
		responses := make([]Response, len(op.Responses))
		copy(responses, op.Responses)
		for i, r := range responses {
			if d, ok := comment.Responses[statusKey(r.Status)]; ok && d != "" {
				responses[i].Description = d
			}
		}
		op.Responses = responses
	}
	return op
}
