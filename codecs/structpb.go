package codecs

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/bos/value"
)

// Structpb transcodes value trees through google.protobuf.Value, the
// schemaless protobuf representation. The zero value is ready to use.
//
// Fidelity caveats inherited from the Struct well-known type: all numbers
// travel as doubles, and Bytes values become base64 strings. With
// CoerceIntegers set, decoded numbers that hold an exact integer are
// mapped back to Int; floats that merely happen to be whole (e.g. 2.0)
// are then indistinguishable from integers, so leave it off when the
// Int/Float split matters.
type Structpb struct {
	CoerceIntegers bool
}

var _ Transcoder = Structpb{}

func (Structpb) Encode(v *value.Value) ([]byte, error) {
	pv, err := structpb.NewValue(v.Interface())
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

func (s Structpb) Decode(b []byte) (*value.Value, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(b, &pv); err != nil {
		return nil, err
	}
	v, err := value.FromGo(pv.AsInterface())
	if err != nil {
		return nil, err
	}
	if s.CoerceIntegers {
		v = coerceIntegers(v)
	}
	return v, nil
}

// coerceIntegers rebuilds the tree with integral floats lowered to Int.
func coerceIntegers(v *value.Value) *value.Value {
	switch v.Kind() {
	case value.KindFloat:
		if i, ok := value.IntegralFloat(v.Float64()); ok {
			return value.Int(i)
		}
		return v
	case value.KindArray:
		out := value.NewArray()
		for i := 0; i < v.Len(); i++ {
			_ = out.Append(coerceIntegers(v.Index(i)))
		}
		return out
	case value.KindObject:
		out := value.NewObject()
		for _, k := range v.Keys() {
			_ = out.Set(k, coerceIntegers(v.Get(k)))
		}
		return out
	default:
		return v
	}
}
