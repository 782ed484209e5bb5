package scidata

import (
	"encoding/json"
	"math"
	"slices"
)

// Dict-boundary validators. A nil input yields the field's reset value;
// any other value of the wrong type yields a type_mismatch issue.

func checkStr(field string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		return "", typeMismatch(field, KindStr, v)
	}
}

func checkBool(field string, v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	default:
		return false, typeMismatch(field, KindBool, v)
	}
}

func checkFloat(field string, v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, typeMismatch(field, KindFloat, v)
	}
	return &f, nil
}

func checkInt(field string, v any) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, typeMismatch(field, KindInt, v)
	}
	return &n, nil
}

// checkFloatList accepts typed slices and []any of numbers. The sentinel -1
// becomes an empty slice.
func checkFloatList(field string, v any) ([]float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []float64:
		return slices.Clone(t), nil
	case []int:
		out := make([]float64, len(t))
		for i, n := range t {
			out[i] = float64(n)
		}
		return out, nil
	case []any:
		out := make([]float64, len(t))
		for i, e := range t {
			f, ok := toFloat(e)
			if !ok {
				return nil, typeMismatch(field, KindFloatList, v)
			}
			out[i] = f
		}
		return out, nil
	}
	if isSentinel(v) {
		return []float64{}, nil
	}
	return nil, typeMismatch(field, KindFloatList, v)
}

// isSentinel reports whether v is the integer -1 that stands for "use the
// empty default" in init dicts.
func isSentinel(v any) bool {
	n, ok := toInt(v)
	return ok && n == -1
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// toInt accepts integer kinds and integral floats (JSON and YAML decoders may
// hand back 4.0 for 4).
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		if t < math.MinInt || t > math.MaxInt {
			return 0, false
		}
		return int(t), true
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return fromUint(uint64(t))
	case uint64:
		return fromUint(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return toInt(n)
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(t)
	case float32:
		return integral(float64(t))
	default:
		return 0, false
	}
}

// fromUint rejects values above MaxInt instead of letting them wrap negative.
func fromUint(u uint64) (int, bool) {
	if u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}

// integral accepts whole floats that fit in an int. The upper bound is
// exclusive since float64(MaxInt) rounds up to 2^63.
func integral(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}
