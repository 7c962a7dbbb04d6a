// Package validation checks raw request payloads against the wire schemas.
package validation

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/scenebridge/scenebridge/application/schema"
	"github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/domain/ports"
)

// PayloadValidator implements validation using the generated JSON schemas.
type PayloadValidator struct {
	schemas map[string]*jsonschema.Schema
}

var _ ports.PayloadValidator = (*PayloadValidator)(nil)

// NewPayloadValidator compiles the named wire schemas. With no names every
// wire schema is compiled.
func NewPayloadValidator(names ...string) (*PayloadValidator, error) {
	if len(names) == 0 {
		names = schema.Names()
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	v := &PayloadValidator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		raw, err := schema.Wire(name)
		if err != nil {
			return nil, err
		}
		url := name + ".json"
		if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add schema resource for %s: %w", name, err)
		}
		sch, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("invalid schema for %s: %w", name, err)
		}
		v.schemas[name] = sch
	}
	return v, nil
}

// ValidatePayload checks that payload is JSON conforming to the named
// schema. Failures are returned as *errors.RequestError.
func (v *PayloadValidator) ValidatePayload(name string, payload []byte) error {
	sch, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("no schema compiled for %s", name)
	}

	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return &errors.RequestError{Reason: "malformed JSON body", Err: err}
	}

	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if stdErrors.As(err, &ve) {
			return &errors.RequestError{Reason: "body does not match " + name, Err: leaf(ve)}
		}
		return &errors.RequestError{Reason: "body does not match " + name, Err: err}
	}
	return nil
}

// leaf returns the most specific cause, which carries the useful message
// ("expected string, but got number") rather than the schema-level summary.
func leaf(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation != "" {
		return fmt.Errorf("%s: %s", ve.InstanceLocation, ve.Message)
	}
	return stdErrors.New(ve.Message)
}
