// Package jsonschema projects record classes into JSON Schema documents and
// validates init dicts against them.
package jsonschema

// Draft2020 is the dialect URI written into exported documents.
const Draft2020 = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	Dialect     string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core. Type is either a string or a []string (for nullable kinds).
	Type    any `json:"type,omitempty"`
	Const   any `json:"const,omitempty"`
	Default any `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}
