package scidata

import (
	"maps"
)

// Symmetry describes the periodicity of one axis, for example
// {"period": 4} or {"antiperiod": 2}.
type Symmetry map[string]int

// Symmetries maps axis names to their symmetry descriptor. A nil map and an
// empty map are equivalent.
type Symmetries map[string]Symmetry

// Clone deep-copies s. The result is never nil.
func (s Symmetries) Clone() Symmetries {
	out := make(Symmetries, len(s))
	for axis, sym := range s {
		out[axis] = maps.Clone(sym)
	}
	return out
}

// Equal compares two symmetry mappings axis by axis.
func (s Symmetries) Equal(o Symmetries) bool {
	return maps.EqualFunc(s, o, func(a, b Symmetry) bool { return maps.Equal(a, b) })
}

// dict renders s in its init dict form. A reset (nil) mapping renders as nil.
func (s Symmetries) dict() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s))
	for axis, sym := range s {
		d := make(map[string]any, len(sym))
		for k, v := range sym {
			d[k] = v
		}
		out[axis] = d
	}
	return out
}

// checkSymmetries validates a dict-boundary symmetries value. The sentinel -1
// is rewritten to an empty mapping before the type check, and so is nil: the
// field always holds a mapping after assignment.
func checkSymmetries(field string, v any) (Symmetries, error) {
	if isSentinel(v) {
		v = Symmetries{}
	}
	switch t := v.(type) {
	case nil:
		return Symmetries{}, nil
	case Symmetries:
		return t.Clone(), nil
	case map[string]Symmetry:
		return Symmetries(t).Clone(), nil
	case map[string]map[string]int:
		out := make(Symmetries, len(t))
		for axis, sym := range t {
			out[axis] = maps.Clone(Symmetry(sym))
		}
		return out, nil
	case map[string]any:
		out := make(Symmetries, len(t))
		for axis, raw := range t {
			sym, ok := toSymmetry(raw)
			if !ok {
				return nil, typeMismatchAt(fieldPath(field).field(axis), field, KindSymmetries, v)
			}
			out[axis] = sym
		}
		return out, nil
	default:
		return nil, typeMismatch(field, KindSymmetries, v)
	}
}

func toSymmetry(v any) (Symmetry, bool) {
	switch t := v.(type) {
	case Symmetry:
		return maps.Clone(t), true
	case map[string]int:
		return maps.Clone(Symmetry(t)), true
	case map[string]any:
		out := make(Symmetry, len(t))
		for k, raw := range t {
			n, ok := toInt(raw)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
		return out, true
	default:
		return nil, false
	}
}
