// Package schema performs structural pre-validation of inbound payloads
// against a JSON Schema before any regime sees them.
package schema

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchema is the structural contract every payload must meet. It is
// deliberately permissive: regimes interpret domain sections themselves;
// this only rejects shapes the kernel cannot evaluate at all.
const payloadSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"action":          {"type": "string", "minLength": 1},
		"industry_id":     {"type": "string"},
		"profile_id":      {"type": "string"},
		"risk_indicators": {"type": "object"},
		"meta":            {"type": "object"}
	},
	"required": ["action"]
}`

// Result of a validation pass.
type Result struct {
	Valid  bool
	Errors []string
}

// Validator compiles the payload schema once and validates payloads.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the built-in payload schema.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	const url = "https://adra.schemas.local/payload.schema.json"
	if err := c.AddResource(url, strings.NewReader(payloadSchema)); err != nil {
		return nil, fmt.Errorf("schema: load payload schema: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema: compile payload schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks a payload's structure. It never mutates the payload and
// never fails the caller: structural problems come back in the Result so
// the artifact can record them.
func (v *Validator) Validate(payload map[string]any) *Result {
	if payload == nil {
		return &Result{Valid: false, Errors: []string{"payload is nil"}}
	}
	if err := v.schema.Validate(map[string]any(payload)); err != nil {
		return &Result{Valid: false, Errors: flatten(err)}
	}
	return &Result{Valid: true}
}

func flatten(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, cause := range ve.BasicOutput().Errors {
		if cause.Error != "" {
			loc := cause.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", loc, cause.Error))
		}
	}
	if len(out) == 0 {
		out = []string{ve.Error()}
	}
	return out
}
