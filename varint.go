package bos

import "encoding/binary"

// Lengths and counts use a self-describing little-endian uvarint: a single
// byte holds 0..252 directly, while 0xFD, 0xFE and 0xFF announce a 16-, 32-
// or 64-bit little-endian continuation. This mapping is the wire contract
// shared with every existing BOS producer and consumer.
const (
	uvarint16 = 0xFD
	uvarint32 = 0xFE
	uvarint64 = 0xFF
)

func (r *reader) uvarint() (uint64, error) {
	t, err := r.byte1()
	if err != nil {
		return 0, err
	}
	switch t {
	case uvarint16:
		p, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(p)), nil
	case uvarint32:
		p, err := r.take(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(p)), nil
	case uvarint64:
		p, err := r.take(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(p), nil
	default:
		return uint64(t), nil
	}
}

// appendUvarint writes v in its minimal width, the form existing producers
// emit.
func appendUvarint(dst []byte, v uint64) []byte {
	switch {
	case v < uvarint16:
		return append(dst, byte(v))
	case v <= 0xFFFF:
		return append(dst, uvarint16, byte(v), byte(v>>8))
	case v <= 0xFFFFFFFF:
		dst = append(dst, uvarint32)
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	default:
		dst = append(dst, uvarint64)
		return binary.LittleEndian.AppendUint64(dst, v)
	}
}

// uvarintLen reports the encoded byte length of v.
func uvarintLen(v uint64) int {
	switch {
	case v < uvarint16:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}
