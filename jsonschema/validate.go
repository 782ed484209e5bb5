package jsonschema

import (
	"bytes"
	"errors"
	"fmt"

	j "github.com/goccy/go-json"
	sv "github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is a single validation failure located by JSON Pointer.
type Violation struct {
	Path    string
	Message string
}

// Validator is a compiled Schema.
type Validator struct {
	compiled *sv.Schema
}

// Compile compiles s under Draft 2020-12.
func Compile(s *Schema) (*Validator, error) {
	if s == nil {
		return nil, errors.New("jsonschema: nil schema")
	}
	doc, err := j.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal schema: %w", err)
	}
	compiler := sv.NewCompiler()
	compiler.Draft = sv.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("jsonschema: add resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: compile: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate checks v and returns the leaf violations, or nil when v conforms.
// v is first normalized to the encoding/json value shapes the validator
// understands, so typed slices and maps are accepted.
func (vd *Validator) Validate(v any) ([]Violation, error) {
	doc, err := canonical(v)
	if err != nil {
		return nil, err
	}
	err = vd.compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *sv.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var out []Violation
	var walk func(*sv.ValidationError)
	walk = func(e *sv.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, Violation{Path: loc, Message: e.Message})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out, nil
}

func canonical(v any) (any, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal instance: %w", err)
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("jsonschema: decode instance: %w", err)
	}
	return out, nil
}
