// Package value implements the JSON-like value tree that BOS documents
// decode into: null, booleans, 64-bit integers and floats, strings, raw
// byte blobs, ordered arrays, and string-keyed objects.
//
// Objects remember key insertion order and Set is last-write-wins: setting
// an existing key replaces its value in place without moving the key.
// A Value tree is not safe for concurrent mutation; hand a finished tree
// to one goroutine at a time or synchronize externally.
package value

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a node in a BOS value tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
	arr  []*Value
	keys []string
	obj  map[string]*Value
}

var null = &Value{kind: KindNull}

// Null returns the shared null value. It is immutable and safe to share.
func Null() *Value { return null }

func Bool(b bool) *Value     { return &Value{kind: KindBool, b: b} }
func Int(i int64) *Value     { return &Value{kind: KindInt, i: i} }
func Float(f float64) *Value { return &Value{kind: KindFloat, f: f} }
func String(s string) *Value { return &Value{kind: KindString, s: s} }

// Bytes wraps b without copying. The caller must not mutate b afterwards.
func Bytes(b []byte) *Value { return &Value{kind: KindBytes, raw: b} }

func NewArray() *Value { return &Value{kind: KindArray} }

func NewObject() *Value {
	return &Value{kind: KindObject, obj: make(map[string]*Value)}
}

func (v *Value) Kind() Kind   { return v.kind }
func (v *Value) IsNull() bool { return v.kind == KindNull }

// BoolVal reports the boolean payload; false for any other kind.
func (v *Value) BoolVal() bool { return v.kind == KindBool && v.b }

// Int64 returns the integer payload, or 0 if the kind is not Int.
func (v *Value) Int64() int64 {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// Float64 returns the float payload. An Int is widened so numeric callers
// can read either numeric kind through one accessor.
func (v *Value) Float64() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	default:
		return 0
	}
}

// Str returns the string payload, or "" if the kind is not String.
func (v *Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// BytesVal returns the raw payload without copying, or nil if the kind is
// not Bytes.
func (v *Value) BytesVal() []byte {
	if v.kind != KindBytes {
		return nil
	}
	return v.raw
}

// Len returns the element count of an array, the entry count of an object,
// and 0 for every other kind.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.keys)
	default:
		return 0
	}
}

// Index returns the i-th array element, or nil if out of range or not an
// array.
func (v *Value) Index(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Get returns the value bound to key, or nil when absent or not an object.
func (v *Value) Get(key string) *Value {
	if v.kind != KindObject {
		return nil
	}
	return v.obj[key]
}

// Keys returns object keys in insertion order. The slice is shared; do not
// mutate it.
func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.keys
}

// Append adds elem to the end of an array.
func (v *Value) Append(elem *Value) error {
	if v.kind != KindArray {
		return fmt.Errorf("value: append on %s", v.kind)
	}
	if elem == nil {
		elem = null
	}
	v.arr = append(v.arr, elem)
	return nil
}

// Set binds key to elem. An existing key keeps its position and has its
// value replaced (last write wins).
func (v *Value) Set(key string, elem *Value) error {
	if v.kind != KindObject {
		return fmt.Errorf("value: set on %s", v.kind)
	}
	if elem == nil {
		elem = null
	}
	if _, ok := v.obj[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.obj[key] = elem
	return nil
}

// Delete removes key from an object. Removing an absent key is a no-op.
func (v *Value) Delete(key string) {
	if v.kind != KindObject {
		return
	}
	if _, ok := v.obj[key]; !ok {
		return
	}
	delete(v.obj, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Equal reports deep structural equality. Int and Float compare as distinct
// kinds even when numerically equal; object key order is ignored; NaN floats
// compare equal to each other so round-trip tests can use them.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBytes:
		if len(v.raw) != len(o.raw) {
			return false
		}
		for i := range v.raw {
			if v.raw[i] != o.raw[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, ve := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortKeys reorders object keys lexicographically. Useful before encoding
// when a deterministic byte output is needed.
func (v *Value) SortKeys() {
	if v.kind == KindObject {
		sort.Strings(v.keys)
	}
}
