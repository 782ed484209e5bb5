package scidata

import (
	"context"
	"strings"
)

// DataClass is the field table of Data.
var DataClass = &Class{
	Name: "Data",
	Doc:  "Abstract class for all kinds of data",
	Fields: []Field{
		{Name: "symbol", Kind: KindStr, Doc: "Symbol of the variable (in latex syntax)"},
		{Name: "name", Kind: KindStr, Doc: "Name of the physical quantity (to be used in plots)"},
		{Name: "unit", Kind: KindStr, Doc: "Unit of the physical quantity (to be used in plots)"},
		{Name: "symmetries", Kind: KindSymmetries, Doc: "Dictionary of the symmetries along each axis, used to reduce storage"},
	},
}

// Data is the base record shared by every kind of data: a symbol, a name, a
// unit and the per-axis symmetries used to reduce storage.
//
// The zero value is usable and equals NewData().
type Data struct {
	parent     any
	symbol     string
	name       string
	unit       string
	symmetries Symmetries
}

var _ Record = (*Data)(nil)

// Option sets a field of Data (and of the records that embed it) at
// construction time.
type Option func(*Data)

// WithSymbol sets the symbol (in latex syntax).
func WithSymbol(s string) Option { return func(d *Data) { d.symbol = s } }

// WithName sets the name of the physical quantity.
func WithName(s string) Option { return func(d *Data) { d.name = s } }

// WithUnit sets the unit of the physical quantity.
func WithUnit(s string) Option { return func(d *Data) { d.unit = s } }

// WithSymmetries sets the symmetries. Omitting the option, or passing nil,
// leaves the empty mapping.
func WithSymmetries(s Symmetries) Option { return func(d *Data) { d.symmetries = s.Clone() } }

// NewData builds a Data from explicit field values.
func NewData(opts ...Option) *Data {
	d := &Data{symmetries: Symmetries{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DataFromDict builds a Data from an init dict. Unknown keys are ignored and
// missing keys keep their default.
func DataFromDict(init any) (*Data, error) {
	m, ok := init.(map[string]any)
	if !ok {
		return nil, malformedInitDict(DataClass.Name, init)
	}
	d := NewData()
	if err := d.load(m); err != nil {
		return nil, err
	}
	return d, nil
}

// DataFromPath loads the init dict stored at path and builds a Data from it.
func DataFromPath(ctx context.Context, path string, opts ...IOOption) (*Data, error) {
	return fromPath(ctx, path, opts, DataFromDict)
}

// load assigns the recognized Data keys of m through the validators,
// collecting every failure.
func (d *Data) load(m map[string]any) error {
	var iss Issues
	for _, f := range DataClass.Fields {
		v, ok := m[f.Name]
		if !ok {
			continue
		}
		if _, err := d.setField(f.Name, v); err != nil {
			iss = appendErr(iss, err)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (d *Data) Symbol() string { return d.symbol }
func (d *Data) Name() string   { return d.name }
func (d *Data) Unit() string   { return d.unit }

// Symmetries returns a copy of the symmetries mapping.
func (d *Data) Symmetries() Symmetries {
	if d.symmetries == nil {
		return nil
	}
	return d.symmetries.Clone()
}

func (d *Data) SetSymbol(s string) { d.symbol = s }
func (d *Data) SetName(s string)   { d.name = s }
func (d *Data) SetUnit(s string)   { d.unit = s }

// SetSymmetries replaces the symmetries; nil stores the empty mapping.
func (d *Data) SetSymmetries(s Symmetries) { d.symmetries = s.Clone() }

func (d *Data) Parent() any     { return d.parent }
func (d *Data) SetParent(p any) { d.parent = p }

func (d *Data) ClassName() string { return DataClass.Name }
func (d *Data) Class() *Class     { return DataClass }

// Get reads a declared field by name.
func (d *Data) Get(field string) (any, error) {
	if v, ok := d.getField(field); ok {
		return v, nil
	}
	return nil, unknownAttribute(DataClass.Name, field)
}

// Set validates and assigns a declared field by name.
func (d *Data) Set(field string, value any) error {
	if ok, err := d.setField(field, value); ok {
		return err
	}
	return unknownAttribute(DataClass.Name, field)
}

func (d *Data) getField(field string) (any, bool) {
	switch field {
	case "parent":
		return d.parent, true
	case "symbol":
		return d.symbol, true
	case "name":
		return d.name, true
	case "unit":
		return d.unit, true
	case "symmetries":
		return d.Symmetries(), true
	}
	return nil, false
}

// setField reports whether field belongs to Data, and the validation error
// when it does.
func (d *Data) setField(field string, value any) (bool, error) {
	switch field {
	case "parent":
		d.parent = value
	case "symbol", "name", "unit":
		s, err := checkStr(field, value)
		if err != nil {
			return true, err
		}
		switch field {
		case "symbol":
			d.symbol = s
		case "name":
			d.name = s
		default:
			d.unit = s
		}
	case "symmetries":
		s, err := checkSymmetries(field, value)
		if err != nil {
			return true, err
		}
		d.symmetries = s
	default:
		return false, nil
	}
	return true, nil
}

// Equal reports whether other is a *Data with the same declared fields.
func (d *Data) Equal(other any) bool {
	o, ok := other.(*Data)
	if !ok {
		return false
	}
	if d == nil || o == nil {
		return d == o
	}
	return d.equalFields(o)
}

func (d *Data) equalFields(o *Data) bool {
	return d.symbol == o.symbol &&
		d.name == o.name &&
		d.unit == o.unit &&
		d.symmetries.Equal(o.symmetries)
}

// AsDict exports the declared fields plus the class tag.
func (d *Data) AsDict() map[string]any {
	m := d.dict()
	m[ClassKey] = DataClass.Name
	return m
}

func (d *Data) dict() map[string]any {
	return map[string]any{
		"symbol":     d.symbol,
		"name":       d.name,
		"unit":       d.unit,
		"symmetries": d.symmetries.dict(),
	}
}

// SetNone clears every declared field. The parent is kept.
func (d *Data) SetNone() {
	d.symbol = ""
	d.name = ""
	d.unit = ""
	d.symmetries = nil
}

func (d *Data) String() string {
	b := &strings.Builder{}
	writeParent(b, d.parent)
	d.writeFields(b)
	return b.String()
}

func (d *Data) writeFields(b *strings.Builder) {
	writeQuoted(b, "symbol", d.symbol)
	writeQuoted(b, "name", d.name)
	writeQuoted(b, "unit", d.unit)
	b.WriteString("symmetries = " + renderValue(d.symmetries.dict()) + "\n")
}
