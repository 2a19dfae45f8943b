package bos

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/unkn0wn-root/bos/value"
)

// Serialize encodes a value tree into a complete envelope: the 4-byte
// little-endian total size followed by one encoded value. The output always
// satisfies Valid and round-trips through Deserialize.
//
// Integers are written in the smallest fitting width, unsigned tags for
// non-negative values and signed tags otherwise. Floats are always written
// as Float64. Object entries follow key insertion order; call
// Value.SortKeys first when deterministic bytes are needed.
func Serialize(v *value.Value) ([]byte, error) {
	body, err := appendValue(make([]byte, 0, 64), v)
	if err != nil {
		return nil, err
	}
	total := uint64(len(body)) + headerLen
	if total > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	out := make([]byte, headerLen, total)
	binary.LittleEndian.PutUint32(out, uint32(total))
	return append(out, body...), nil
}

func appendValue(dst []byte, v *value.Value) ([]byte, error) {
	if v == nil {
		return append(dst, tagNull), nil
	}
	switch v.Kind() {
	case value.KindNull:
		return append(dst, tagNull), nil
	case value.KindBool:
		if v.BoolVal() {
			return append(dst, tagBool, 1), nil
		}
		return append(dst, tagBool, 0), nil
	case value.KindInt:
		return appendInt(dst, v.Int64()), nil
	case value.KindFloat:
		dst = append(dst, tagFloat64)
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v.Float64())), nil
	case value.KindString:
		s := v.Str()
		dst = append(dst, tagString)
		dst = appendUvarint(dst, uint64(len(s)))
		return append(dst, s...), nil
	case value.KindBytes:
		b := v.BytesVal()
		dst = append(dst, tagBytes)
		dst = appendUvarint(dst, uint64(len(b)))
		return append(dst, b...), nil
	case value.KindArray:
		dst = append(dst, tagArray)
		dst = appendUvarint(dst, uint64(v.Len()))
		var err error
		for i := 0; i < v.Len(); i++ {
			if dst, err = appendValue(dst, v.Index(i)); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case value.KindObject:
		dst = append(dst, tagObject)
		keys := v.Keys()
		dst = appendUvarint(dst, uint64(len(keys)))
		var err error
		for _, k := range keys {
			dst = appendUvarint(dst, uint64(len(k)))
			dst = append(dst, k...)
			if dst, err = appendValue(dst, v.Get(k)); err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("bos: cannot encode %s value", v.Kind())
	}
}

// appendInt picks the narrowest tag that represents i exactly.
func appendInt(dst []byte, i int64) []byte {
	if i >= 0 {
		switch {
		case i <= math.MaxUint8:
			return append(dst, tagUint8, byte(i))
		case i <= math.MaxUint16:
			dst = append(dst, tagUint16)
			return binary.LittleEndian.AppendUint16(dst, uint16(i))
		case i <= math.MaxUint32:
			dst = append(dst, tagUint32)
			return binary.LittleEndian.AppendUint32(dst, uint32(i))
		default:
			dst = append(dst, tagInt64)
			return binary.LittleEndian.AppendUint64(dst, uint64(i))
		}
	}
	switch {
	case i >= math.MinInt8:
		return append(dst, tagInt8, byte(int8(i)))
	case i >= math.MinInt16:
		dst = append(dst, tagInt16)
		return binary.LittleEndian.AppendUint16(dst, uint16(int16(i)))
	case i >= math.MinInt32:
		dst = append(dst, tagInt32)
		return binary.LittleEndian.AppendUint32(dst, uint32(int32(i)))
	default:
		dst = append(dst, tagInt64)
		return binary.LittleEndian.AppendUint64(dst, uint64(i))
	}
}
