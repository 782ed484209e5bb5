package scidata

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// VectorFieldClass is the field table of VectorField.
var VectorFieldClass = &Class{
	Name: "VectorField",
	Doc:  "Class for 2D or 3D vector fields (time or frequency domain)",
	Fields: []Field{
		{Name: "name", Kind: KindStr, Doc: "Name of the vector field"},
		{Name: "symbol", Kind: KindStr, Doc: "Symbol of the vector field"},
		{Name: "components", Kind: KindRecordMap, Doc: "Dict of the components"},
	},
}

// VectorField groups named component records (radial, tangential, ...).
// Reading the components sets their parent to the field.
type VectorField struct {
	parent     any
	name       string
	symbol     string
	components map[string]Record
}

var _ Record = (*VectorField)(nil)

// NewVectorField builds a vector field from explicit values. The components
// map is copied; the records themselves are shared. Nil records are kept as
// empty entries.
func NewVectorField(name, symbol string, components map[string]Record) *VectorField {
	v := &VectorField{name: name, symbol: symbol, components: cloneComponents(components)}
	if v.components == nil {
		v.components = map[string]Record{}
	}
	return v
}

// cloneComponents copies m, storing typed-nil records as plain nil.
func cloneComponents(m map[string]Record) map[string]Record {
	if m == nil {
		return nil
	}
	out := make(map[string]Record, len(m))
	for k, c := range m {
		if isNilRecord(c) {
			c = nil
		}
		out[k] = c
	}
	return out
}

// VectorFieldFromDict builds a VectorField from an init dict. Component dicts
// are rebuilt through FromDict using their class tag.
func VectorFieldFromDict(init any) (*VectorField, error) {
	m, ok := init.(map[string]any)
	if !ok {
		return nil, malformedInitDict(VectorFieldClass.Name, init)
	}
	v := NewVectorField("", "", nil)
	var iss Issues
	for _, f := range VectorFieldClass.Fields {
		raw, ok := m[f.Name]
		if !ok {
			continue
		}
		if _, err := v.setField(f.Name, raw); err != nil {
			iss = appendErr(iss, err)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return v, nil
}

// VectorFieldFromPath loads the init dict stored at path and builds a
// VectorField.
func VectorFieldFromPath(ctx context.Context, path string, opts ...IOOption) (*VectorField, error) {
	return fromPath(ctx, path, opts, VectorFieldFromDict)
}

func (v *VectorField) Name() string       { return v.name }
func (v *VectorField) Symbol() string     { return v.symbol }
func (v *VectorField) SetName(s string)   { v.name = s }
func (v *VectorField) SetSymbol(s string) { v.symbol = s }

// Components returns the component map after pointing every component's
// parent at v.
func (v *VectorField) Components() map[string]Record {
	if v.components == nil {
		return nil
	}
	for _, c := range v.components {
		if c != nil {
			c.SetParent(v)
		}
	}
	return maps.Clone(v.components)
}

// Component returns one component, with its parent set to v.
func (v *VectorField) Component(name string) (Record, bool) {
	c, ok := v.components[name]
	if ok && c != nil {
		c.SetParent(v)
	}
	return c, ok
}

// SetComponents validates and replaces the components. It accepts a
// map[string]Record, a map of init dicts or records, nil, or the sentinel -1.
func (v *VectorField) SetComponents(value any) error {
	_, err := v.setField("components", value)
	return err
}

func (v *VectorField) Parent() any     { return v.parent }
func (v *VectorField) SetParent(p any) { v.parent = p }

func (v *VectorField) ClassName() string { return VectorFieldClass.Name }
func (v *VectorField) Class() *Class     { return VectorFieldClass }

func (v *VectorField) Get(field string) (any, error) {
	switch field {
	case "parent":
		return v.parent, nil
	case "name":
		return v.name, nil
	case "symbol":
		return v.symbol, nil
	case "components":
		return v.Components(), nil
	}
	return nil, unknownAttribute(VectorFieldClass.Name, field)
}

func (v *VectorField) Set(field string, value any) error {
	if ok, err := v.setField(field, value); ok {
		return err
	}
	return unknownAttribute(VectorFieldClass.Name, field)
}

func (v *VectorField) setField(field string, value any) (bool, error) {
	switch field {
	case "parent":
		v.parent = value
	case "name", "symbol":
		s, err := checkStr(field, value)
		if err != nil {
			return true, err
		}
		if field == "name" {
			v.name = s
		} else {
			v.symbol = s
		}
	case "components":
		c, err := checkComponents(field, value)
		if err != nil {
			return true, err
		}
		v.components = c
	default:
		return false, nil
	}
	return true, nil
}

func checkComponents(field string, value any) (map[string]Record, error) {
	if isSentinel(value) || value == nil {
		return map[string]Record{}, nil
	}
	switch t := value.(type) {
	case map[string]Record:
		return cloneComponents(t), nil
	case map[string]any:
		out := make(map[string]Record, len(t))
		var iss Issues
		for key, raw := range t {
			switch c := raw.(type) {
			case Record:
				if isNilRecord(c) {
					c = nil
				}
				out[key] = c
			case map[string]any:
				rec, err := FromDict(c)
				if err != nil {
					iss = appendErr(iss, rebase(fieldPath(field).field(key).pointer(), err))
					continue
				}
				out[key] = rec
			case nil:
				out[key] = nil
			default:
				iss = append(iss, typeMismatchAt(fieldPath(field).field(key), field, KindRecordMap, value)...)
			}
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	default:
		return nil, typeMismatch(field, KindRecordMap, value)
	}
}

// Equal compares the declared fields; components are compared with their own
// Equal.
func (v *VectorField) Equal(other any) bool {
	o, ok := other.(*VectorField)
	if !ok {
		return false
	}
	if v == nil || o == nil {
		return v == o
	}
	return v.name == o.name &&
		v.symbol == o.symbol &&
		maps.EqualFunc(v.components, o.components, func(a, b Record) bool {
			if a == nil || b == nil {
				return a == nil && b == nil
			}
			return a.Equal(b)
		})
}

func (v *VectorField) AsDict() map[string]any {
	m := map[string]any{
		"name":   v.name,
		"symbol": v.symbol,
	}
	if v.components == nil {
		m["components"] = nil
	} else {
		comps := make(map[string]any, len(v.components))
		for key, c := range v.components {
			if c == nil {
				comps[key] = nil
				continue
			}
			comps[key] = c.AsDict()
		}
		m["components"] = comps
	}
	m[ClassKey] = VectorFieldClass.Name
	return m
}

func (v *VectorField) SetNone() {
	v.name = ""
	v.symbol = ""
	v.components = nil
}

func (v *VectorField) String() string {
	b := &strings.Builder{}
	writeParent(b, v.parent)
	writeQuoted(b, "name", v.name)
	writeQuoted(b, "symbol", v.symbol)
	if v.components == nil {
		b.WriteString("components = None\n")
		return b.String()
	}
	keys := slices.Sorted(maps.Keys(v.components))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		name := "None"
		if c := v.components[k]; c != nil {
			name = c.ClassName()
		}
		parts = append(parts, fmt.Sprintf("%q: %s", k, name))
	}
	b.WriteString("components = {" + strings.Join(parts, ", ") + "}\n")
	return b.String()
}
