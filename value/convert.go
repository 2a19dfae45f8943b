package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// FromGo builds a Value tree from plain Go data: nil, bool, integers,
// floats, string, []byte, json.Number, []any, and string-keyed maps.
// It is the bridge the transcoder codecs use after unmarshalling a foreign
// format into interface form.
func FromGo(in any) (*Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		// Same fold the wire decoder applies to UInt64 payloads.
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("value: bad number %q: %w", x.String(), err)
		}
		return Float(f), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case []any:
		arr := NewArray()
		for _, e := range x {
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			if err := arr.Append(ev); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case map[string]any:
		obj := NewObject()
		for k, e := range x {
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			if err := obj.Set(k, ev); err != nil {
				return nil, err
			}
		}
		obj.SortKeys()
		return obj, nil
	case map[any]any:
		// CBOR decoders hand maps back in this shape.
		obj := NewObject()
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("value: non-string object key %T", k)
			}
			ev, err := FromGo(e)
			if err != nil {
				return nil, err
			}
			if err := obj.Set(ks, ev); err != nil {
				return nil, err
			}
		}
		obj.SortKeys()
		return obj, nil
	default:
		return nil, fmt.Errorf("value: unsupported Go type %T", in)
	}
}

// Interface lowers a Value tree into plain Go data: nil, bool, int64,
// float64, string, []byte, []any, map[string]any. The inverse of FromGo up
// to map ordering.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return v.raw
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// IntegralFloat reports whether f carries an integer value that fits int64
// exactly. Transcoders for formats without an integer type use it to map
// whole numbers back to KindInt.
func IntegralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
