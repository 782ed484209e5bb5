package scidata

import (
	js "github.com/scidatatool/scidata/jsonschema"
)

// Kind is the declared type of a record field.
type Kind int

const (
	KindStr        Kind = iota // text
	KindFloat                  // optional float64
	KindInt                    // optional int
	KindBool                   // bool
	KindSymmetries             // axis -> symmetry descriptor mapping
	KindFloatList              // axis values
	KindRecordMap              // name -> nested record
)

// String returns the kind name used in type_mismatch issues.
func (k Kind) String() string {
	switch k {
	case KindStr:
		return "str"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindSymmetries:
		return "dict"
	case KindFloatList:
		return "ndarray"
	case KindRecordMap:
		return "{Record}"
	default:
		return "unknown"
	}
}

// Field declares one named, typed property of a class.
type Field struct {
	Name string
	Kind Kind
	Doc  string
}

// Class is the field table of a record type. Fields of Parent come first.
type Class struct {
	Name   string
	Parent *Class
	Doc    string
	Fields []Field
}

// AllFields returns the declared fields, inherited ones first.
func (c *Class) AllFields() []Field {
	if c == nil {
		return nil
	}
	if c.Parent == nil {
		return c.Fields
	}
	out := append([]Field{}, c.Parent.AllFields()...)
	return append(out, c.Fields...)
}

// Field looks up a declared field by name, inherited fields included.
func (c *Class) Field(name string) (Field, bool) {
	for _, f := range c.AllFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// JSONSchema projects the class into a JSON Schema document describing its
// dict form. Unknown keys are allowed because dict-mode construction ignores
// them.
func (c *Class) JSONSchema() *js.Schema {
	props := make(map[string]*js.Schema, len(c.AllFields())+1)
	for _, f := range c.AllFields() {
		s := kindSchema(f.Kind)
		s.Description = f.Doc
		props[f.Name] = s
	}
	props[ClassKey] = &js.Schema{Type: "string", Const: c.Name}
	return &js.Schema{
		Dialect:              js.Draft2020,
		Title:                c.Name,
		Description:          c.Doc,
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: true,
	}
}

// sentinel -1 is accepted wherever the dict boundary normalizes it to empty.
func orSentinel(s *js.Schema) *js.Schema {
	return &js.Schema{OneOf: []*js.Schema{s, {Const: -1}}}
}

func kindSchema(k Kind) *js.Schema {
	switch k {
	case KindStr:
		return &js.Schema{Type: []string{"string", "null"}}
	case KindFloat:
		return &js.Schema{Type: []string{"number", "null"}}
	case KindInt:
		return &js.Schema{Type: []string{"integer", "null"}}
	case KindBool:
		return &js.Schema{Type: []string{"boolean", "null"}}
	case KindSymmetries:
		return orSentinel(&js.Schema{
			Type: []string{"object", "null"},
			AdditionalProperties: &js.Schema{
				Type:                 "object",
				AdditionalProperties: &js.Schema{Type: "integer"},
			},
		})
	case KindFloatList:
		return orSentinel(&js.Schema{Type: []string{"array", "null"}, Items: &js.Schema{Type: "number"}})
	case KindRecordMap:
		return orSentinel(&js.Schema{
			Type:                 []string{"object", "null"},
			AdditionalProperties: &js.Schema{Type: "object", Required: []string{ClassKey}},
		})
	default:
		return &js.Schema{}
	}
}
