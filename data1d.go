package scidata

import (
	"context"
	"slices"
	"strconv"
	"strings"
)

// Data1DClass is the field table of Data1D.
var Data1DClass = &Class{
	Name:   "Data1D",
	Parent: DataClass,
	Doc:    "Class for axes defined as vectors",
	Fields: []Field{
		{Name: "values", Kind: KindFloatList, Doc: "List or ndarray of the axis values"},
		{Name: "is_components", Kind: KindBool, Doc: "Boolean indicating if the axis is components"},
	},
}

// Data1D is an axis given by its explicit values.
type Data1D struct {
	Data
	values       []float64
	isComponents bool
}

var _ Record = (*Data1D)(nil)

// NewData1D builds an axis from its values and the shared Data options.
func NewData1D(values []float64, opts ...Option) *Data1D {
	d := &Data1D{Data: *NewData(opts...), values: slices.Clone(values)}
	if d.values == nil {
		d.values = []float64{}
	}
	return d
}

// Data1DFromDict builds a Data1D from an init dict.
func Data1DFromDict(init any) (*Data1D, error) {
	m, ok := init.(map[string]any)
	if !ok {
		return nil, malformedInitDict(Data1DClass.Name, init)
	}
	d := NewData1D(nil)
	var iss Issues
	if err := d.Data.load(m); err != nil {
		iss = appendErr(iss, err)
	}
	for _, f := range Data1DClass.Fields {
		if v, ok := m[f.Name]; ok {
			if _, err := d.setField(f.Name, v); err != nil {
				iss = appendErr(iss, err)
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return d, nil
}

// Data1DFromPath loads the init dict stored at path and builds a Data1D.
func Data1DFromPath(ctx context.Context, path string, opts ...IOOption) (*Data1D, error) {
	return fromPath(ctx, path, opts, Data1DFromDict)
}

// Values returns a copy of the axis values.
func (d *Data1D) Values() []float64 { return slices.Clone(d.values) }

// SetValues replaces the axis values.
func (d *Data1D) SetValues(v []float64) {
	d.values = slices.Clone(v)
	if d.values == nil {
		d.values = []float64{}
	}
}

func (d *Data1D) IsComponents() bool     { return d.isComponents }
func (d *Data1D) SetIsComponents(b bool) { d.isComponents = b }

// Length is the number of axis values.
func (d *Data1D) Length() int { return len(d.values) }

func (d *Data1D) ClassName() string { return Data1DClass.Name }
func (d *Data1D) Class() *Class     { return Data1DClass }

func (d *Data1D) Get(field string) (any, error) {
	switch field {
	case "values":
		return d.Values(), nil
	case "is_components":
		return d.isComponents, nil
	}
	if v, ok := d.Data.getField(field); ok {
		return v, nil
	}
	return nil, unknownAttribute(Data1DClass.Name, field)
}

func (d *Data1D) Set(field string, value any) error {
	if ok, err := d.setField(field, value); ok {
		return err
	}
	return unknownAttribute(Data1DClass.Name, field)
}

func (d *Data1D) setField(field string, value any) (bool, error) {
	switch field {
	case "values":
		v, err := checkFloatList(field, value)
		if err != nil {
			return true, err
		}
		d.values = v
		return true, nil
	case "is_components":
		b, err := checkBool(field, value)
		if err != nil {
			return true, err
		}
		d.isComponents = b
		return true, nil
	}
	return d.Data.setField(field, value)
}

func (d *Data1D) Equal(other any) bool {
	o, ok := other.(*Data1D)
	if !ok {
		return false
	}
	if d == nil || o == nil {
		return d == o
	}
	return d.Data.equalFields(&o.Data) &&
		slices.Equal(d.values, o.values) &&
		d.isComponents == o.isComponents
}

func (d *Data1D) AsDict() map[string]any {
	m := d.Data.dict()
	if d.values == nil {
		m["values"] = nil
	} else {
		m["values"] = slices.Clone(d.values)
	}
	m["is_components"] = d.isComponents
	m[ClassKey] = Data1DClass.Name
	return m
}

func (d *Data1D) SetNone() {
	d.Data.SetNone()
	d.values = nil
	d.isComponents = false
}

func (d *Data1D) String() string {
	b := &strings.Builder{}
	writeParent(b, d.parent)
	d.Data.writeFields(b)
	if d.values == nil {
		b.WriteString("values = None\n")
	} else {
		b.WriteString("values = " + renderValue(d.values) + "\n")
	}
	b.WriteString("is_components = " + strconv.FormatBool(d.isComponents) + "\n")
	return b.String()
}
