package scidata

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	j "github.com/goccy/go-json"
)

// ClassKey is the reserved dict key naming the concrete class of a record.
const ClassKey = "__class__"

// Record is implemented by every generated data class.
type Record interface {
	fmt.Stringer

	// ClassName returns the declared class name written under ClassKey.
	ClassName() string
	// Class returns the field table of the record.
	Class() *Class

	// AsDict exports every declared field plus ClassKey. The result can be
	// fed back to FromDict.
	AsDict() map[string]any
	// Equal reports whether other has the same concrete type and equal
	// declared fields. The parent back-reference is ignored.
	Equal(other any) bool
	// SetNone resets every declared field to its empty value without
	// running the validators.
	SetNone()

	Parent() any
	SetParent(p any)

	// Get reads a declared field by name.
	Get(field string) (any, error)
	// Set validates and assigns a declared field by name. The field is left
	// unchanged on error.
	Set(field string, value any) error
}

// Factory builds a record from an init dict.
type Factory func(init map[string]any) (Record, error)

type registration struct {
	class   *Class
	factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = map[string]registration{}
)

// RegisterClass makes a class available to FromDict and Load under c.Name.
// Registering the same name again replaces the previous entry.
func RegisterClass(c *Class, fn Factory) {
	if c == nil || fn == nil {
		return
	}
	registryMu.Lock()
	registry[c.Name] = registration{class: c, factory: fn}
	registryMu.Unlock()
}

// LookupClass returns the registered field table for name.
func LookupClass(name string) (*Class, bool) {
	registryMu.RLock()
	r, ok := registry[name]
	registryMu.RUnlock()
	return r.class, ok
}

// Classes lists the registered class names in ascending order.
func Classes() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	registryMu.RUnlock()
	sort.Strings(names)
	return names
}

// FromDict rebuilds a record of the class named by the ClassKey entry of init.
func FromDict(init any) (Record, error) {
	m, ok := init.(map[string]any)
	if !ok {
		return nil, malformedInitDict("Record", init)
	}
	name, _ := m[ClassKey].(string)
	registryMu.RLock()
	r, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, Issues{{Path: fieldPath(ClassKey).pointer(), Code: CodeUnknownClass, Message: unknownClassMessage(name)}}
	}
	return r.factory(m)
}

// Copy returns a deep copy of r built through its dict form. The copy has no
// parent.
func Copy(r Record) (Record, error) {
	if isNilRecord(r) {
		return nil, singleIssue(CodeMalformedInitDict, "nil record")
	}
	return FromDict(r.AsDict())
}

// factoryOf adapts a typed dict constructor so a failed build yields a nil
// Record rather than a typed nil.
func factoryOf[T Record](fn func(any) (T, error)) Factory {
	return func(m map[string]any) (Record, error) {
		rec, err := fn(m)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

// isNilRecord reports a nil interface or a nil pointer of one of the
// built-in record types.
func isNilRecord(r Record) bool {
	if r == nil {
		return true
	}
	n, ok := r.(interface{ isNil() bool })
	return ok && n.isNil()
}

func (d *Data) isNil() bool         { return d == nil }
func (d *Data1D) isNil() bool       { return d == nil }
func (d *DataLinspace) isNil() bool { return d == nil }
func (v *VectorField) isNil() bool  { return v == nil }

func init() {
	RegisterClass(DataClass, factoryOf(DataFromDict))
	RegisterClass(Data1DClass, factoryOf(Data1DFromDict))
	RegisterClass(DataLinspaceClass, factoryOf(DataLinspaceFromDict))
	RegisterClass(VectorFieldClass, factoryOf(VectorFieldFromDict))
}

// ---- rendering helpers shared by the String methods ----

func writeParent(b *strings.Builder, parent any) {
	if parent == nil {
		b.WriteString("parent = None\n")
		return
	}
	fmt.Fprintf(b, "parent = %T object\n", parent)
}

func writeQuoted(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "%s = \"%s\"\n", name, value)
}

// renderValue prints maps and slices as canonical JSON (sorted keys).
func renderValue(v any) string {
	if v == nil {
		return "None"
	}
	out, err := j.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	if string(out) == "null" {
		return "None"
	}
	return string(out)
}
