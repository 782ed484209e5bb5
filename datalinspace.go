package scidata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrAxis reports an axis that cannot be rebuilt from its parameters.
var ErrAxis = errors.New("scidata: axis error")

// MaxLinspacePoints bounds the number of points Values will materialize.
const MaxLinspacePoints = 1 << 26

// DataLinspaceClass is the field table of DataLinspace.
var DataLinspaceClass = &Class{
	Name:   "DataLinspace",
	Parent: DataClass,
	Doc:    "Class for axes defined as linspaces",
	Fields: []Field{
		{Name: "initial", Kind: KindFloat, Doc: "First value"},
		{Name: "final", Kind: KindFloat, Doc: "Last value"},
		{Name: "step", Kind: KindFloat, Doc: "Step"},
		{Name: "number", Kind: KindInt, Doc: "Number of steps"},
		{Name: "include_endpoint", Kind: KindBool, Doc: "Boolean indicating if the endpoint must be included"},
		{Name: "is_components", Kind: KindBool, Doc: "Boolean indicating if the axis is components"},
	},
}

// Linspace holds the parameters of a DataLinspace axis. Unset parameters
// are nil. The endpoint is included unless ExcludeEndpoint is set.
type Linspace struct {
	Initial         *float64
	Final           *float64
	Step            *float64
	Number          *int
	ExcludeEndpoint bool
	IsComponents    bool
}

// Float returns a pointer to f, for filling Linspace literals.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n, for filling Linspace literals.
func Int(n int) *int { return &n }

// DataLinspace is an axis described by its first value, its step and either
// its last value or its number of points.
type DataLinspace struct {
	Data
	initial         *float64
	final           *float64
	step            *float64
	number          *int
	includeEndpoint bool
	isComponents    bool
}

var _ Record = (*DataLinspace)(nil)

// NewDataLinspace builds an axis from its parameters and the shared Data
// options.
func NewDataLinspace(l Linspace, opts ...Option) *DataLinspace {
	return &DataLinspace{
		Data:            *NewData(opts...),
		initial:         clonePtr(l.Initial),
		final:           clonePtr(l.Final),
		step:            clonePtr(l.Step),
		number:          clonePtr(l.Number),
		includeEndpoint: !l.ExcludeEndpoint,
		isComponents:    l.IsComponents,
	}
}

// DataLinspaceFromDict builds a DataLinspace from an init dict.
func DataLinspaceFromDict(init any) (*DataLinspace, error) {
	m, ok := init.(map[string]any)
	if !ok {
		return nil, malformedInitDict(DataLinspaceClass.Name, init)
	}
	d := NewDataLinspace(Linspace{})
	var iss Issues
	if err := d.Data.load(m); err != nil {
		iss = appendErr(iss, err)
	}
	for _, f := range DataLinspaceClass.Fields {
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

// DataLinspaceFromPath loads the init dict stored at path and builds a
// DataLinspace.
func DataLinspaceFromPath(ctx context.Context, path string, opts ...IOOption) (*DataLinspace, error) {
	return fromPath(ctx, path, opts, DataLinspaceFromDict)
}

// Linspace returns a copy of the axis parameters.
func (d *DataLinspace) Linspace() Linspace {
	return Linspace{
		Initial:         clonePtr(d.initial),
		Final:           clonePtr(d.final),
		Step:            clonePtr(d.step),
		Number:          clonePtr(d.number),
		ExcludeEndpoint: !d.includeEndpoint,
		IsComponents:    d.isComponents,
	}
}

// Values rebuilds the axis. A missing number is derived from the final value
// and the step; a missing final value from the number and the step.
func (d *DataLinspace) Values() ([]float64, error) {
	if d.initial == nil {
		return nil, fmt.Errorf("%w: initial is not set", ErrAxis)
	}
	initial := *d.initial
	var final float64
	var n int
	switch {
	case d.number == nil:
		if d.final == nil || d.step == nil {
			return nil, fmt.Errorf("%w: final and step are required when number is not set", ErrAxis)
		}
		if *d.step == 0 {
			return nil, fmt.Errorf("%w: step is zero", ErrAxis)
		}
		final = *d.final
		var ok bool
		if n, ok = truncCount((final - initial + *d.step) / *d.step); !ok {
			return nil, fmt.Errorf("%w: cannot derive number of points from initial=%g final=%g step=%g", ErrAxis, initial, final, *d.step)
		}
	case d.final == nil:
		if d.step == nil {
			return nil, fmt.Errorf("%w: step is required when final is not set", ErrAxis)
		}
		n = *d.number
		final = initial + float64(n-1)**d.step
	default:
		n = *d.number
		final = *d.final
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: number of points must be non-negative, got %d", ErrAxis, n)
	}
	if n > MaxLinspacePoints {
		return nil, fmt.Errorf("%w: number of points %d exceeds %d", ErrAxis, n, MaxLinspacePoints)
	}
	return linspace(initial, final, n, d.includeEndpoint), nil
}

// Length is the number of points of the rebuilt axis.
func (d *DataLinspace) Length() (int, error) {
	v, err := d.Values()
	if err != nil {
		return 0, err
	}
	return len(v), nil
}

// truncCount converts a computed point count to int, absorbing the rounding
// noise of (final-initial+step)/step before truncating. NaN, infinities and
// counts beyond MaxLinspacePoints are rejected.
func truncCount(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > MaxLinspacePoints+1 {
		return 0, false
	}
	if r := math.Round(f); math.Abs(f-r) < 1e-9 {
		return int(r), true
	}
	return int(f), true
}

func linspace(start, stop float64, n int, endpoint bool) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	div := n
	if endpoint {
		div = n - 1
	}
	if div == 0 {
		out[0] = start
		return out
	}
	delta := (stop - start) / float64(div)
	for i := range out {
		out[i] = start + float64(i)*delta
	}
	if endpoint {
		out[n-1] = stop
	}
	return out
}

func (d *DataLinspace) ClassName() string { return DataLinspaceClass.Name }
func (d *DataLinspace) Class() *Class     { return DataLinspaceClass }

func (d *DataLinspace) Get(field string) (any, error) {
	switch field {
	case "initial":
		return ptrValue(d.initial), nil
	case "final":
		return ptrValue(d.final), nil
	case "step":
		return ptrValue(d.step), nil
	case "number":
		return ptrValue(d.number), nil
	case "include_endpoint":
		return d.includeEndpoint, nil
	case "is_components":
		return d.isComponents, nil
	}
	if v, ok := d.Data.getField(field); ok {
		return v, nil
	}
	return nil, unknownAttribute(DataLinspaceClass.Name, field)
}

func (d *DataLinspace) Set(field string, value any) error {
	if ok, err := d.setField(field, value); ok {
		return err
	}
	return unknownAttribute(DataLinspaceClass.Name, field)
}

func (d *DataLinspace) setField(field string, value any) (bool, error) {
	var err error
	switch field {
	case "initial", "final", "step":
		var f *float64
		if f, err = checkFloat(field, value); err == nil {
			switch field {
			case "initial":
				d.initial = f
			case "final":
				d.final = f
			default:
				d.step = f
			}
		}
	case "number":
		var n *int
		if n, err = checkInt(field, value); err == nil {
			d.number = n
		}
	case "include_endpoint", "is_components":
		var b bool
		if b, err = checkBool(field, value); err == nil {
			if field == "include_endpoint" {
				d.includeEndpoint = b
			} else {
				d.isComponents = b
			}
		}
	default:
		return d.Data.setField(field, value)
	}
	return true, err
}

func (d *DataLinspace) Equal(other any) bool {
	o, ok := other.(*DataLinspace)
	if !ok {
		return false
	}
	if d == nil || o == nil {
		return d == o
	}
	return d.Data.equalFields(&o.Data) &&
		ptrEqual(d.initial, o.initial) &&
		ptrEqual(d.final, o.final) &&
		ptrEqual(d.step, o.step) &&
		ptrEqual(d.number, o.number) &&
		d.includeEndpoint == o.includeEndpoint &&
		d.isComponents == o.isComponents
}

func (d *DataLinspace) AsDict() map[string]any {
	m := d.Data.dict()
	m["initial"] = ptrValue(d.initial)
	m["final"] = ptrValue(d.final)
	m["step"] = ptrValue(d.step)
	m["number"] = ptrValue(d.number)
	m["include_endpoint"] = d.includeEndpoint
	m["is_components"] = d.isComponents
	m[ClassKey] = DataLinspaceClass.Name
	return m
}

func (d *DataLinspace) SetNone() {
	d.Data.SetNone()
	d.initial, d.final, d.step, d.number = nil, nil, nil, nil
	d.includeEndpoint = false
	d.isComponents = false
}

func (d *DataLinspace) String() string {
	b := &strings.Builder{}
	writeParent(b, d.parent)
	d.Data.writeFields(b)
	b.WriteString("initial = " + renderValue(ptrValue(d.initial)) + "\n")
	b.WriteString("final = " + renderValue(ptrValue(d.final)) + "\n")
	b.WriteString("step = " + renderValue(ptrValue(d.step)) + "\n")
	b.WriteString("number = " + renderValue(ptrValue(d.number)) + "\n")
	b.WriteString("include_endpoint = " + strconv.FormatBool(d.includeEndpoint) + "\n")
	b.WriteString("is_components = " + strconv.FormatBool(d.isComponents) + "\n")
	return b.String()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ptrValue unwraps p for the dict form; an unset parameter becomes nil.
func ptrValue[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
