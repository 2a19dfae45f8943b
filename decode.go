package bos

import (
	"encoding/binary"
	"math"

	"github.com/unkn0wn-root/bos/value"
)

// Type tags, one byte on the wire. The numeric order is the wire contract
// and must never be renumbered.
const (
	tagNull byte = iota
	tagBool
	tagInt8
	tagInt16
	tagInt32
	tagInt64
	tagUint8
	tagUint16
	tagUint32
	tagUint64
	tagFloat32
	tagFloat64
	tagString
	tagBytes
	tagArray
	tagObject
)

// DefaultMaxDepth bounds container nesting when Decoder.MaxDepth is zero.
// Deep enough for any sane document, shallow enough that the recursive
// walk cannot exhaust the stack on adversarial input.
const DefaultMaxDepth = 1024

// Decoder deserializes and validates BOS envelopes. The zero value is ready
// to use. Decoders are stateless and safe for concurrent use.
type Decoder struct {
	// MaxDepth caps container nesting in both Deserialize and Valid.
	// 0 means DefaultMaxDepth.
	MaxDepth int

	// StrictTags makes Deserialize reject type tags above 0x0F instead of
	// decoding them to null. Valid always rejects them. The permissive
	// default matches the historical decoder, which treats unknown tags as
	// a forward-compatibility fallback; turn StrictTags on to make
	// Deserialize succeed exactly when Valid accepts.
	StrictTags bool
}

func (d *Decoder) maxDepth() int {
	if d.MaxDepth > 0 {
		return d.MaxDepth
	}
	return DefaultMaxDepth
}

// Deserialize decodes one envelope with a zero-value Decoder.
func Deserialize(buf []byte) (*value.Value, error) {
	var d Decoder
	return d.Deserialize(buf)
}

// Deserialize turns an encoded envelope into a value tree. Every read is
// bounds-checked against the declared size, so it is safe on untrusted
// input without a prior Valid call; running Valid first is purely an
// optimization for callers that want to reject garbage before allocating.
//
// The returned tree is fully owned by the caller and shares no memory with
// buf. On error no tree is returned.
//
// UInt64 payloads are folded bit-for-bit into the model's signed integer,
// so values at or above 1<<63 surface negative. Producers needing the full
// unsigned range should carry such values as Bytes.
func (d *Decoder) Deserialize(buf []byte) (*value.Value, error) {
	r, err := newReader(buf)
	if err != nil {
		return nil, err
	}
	return d.readValue(&r, d.maxDepth())
}

func (d *Decoder) readValue(r *reader, depth int) (*value.Value, error) {
	if depth <= 0 {
		return nil, errInvalid(r.off, "nesting exceeds maximum depth %d", d.maxDepth())
	}
	tag, err := r.byte1()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNull:
		return value.Null(), nil
	case tagBool:
		b, err := r.byte1()
		if err != nil {
			return nil, err
		}
		return value.Bool(b != 0), nil
	case tagInt8:
		b, err := r.byte1()
		if err != nil {
			return nil, err
		}
		return value.Int(int64(int8(b))), nil
	case tagInt16:
		p, err := r.take(2)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(int16(binary.LittleEndian.Uint16(p)))), nil
	case tagInt32:
		p, err := r.take(4)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(int32(binary.LittleEndian.Uint32(p)))), nil
	case tagInt64:
		p, err := r.take(8)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(binary.LittleEndian.Uint64(p))), nil
	case tagUint8:
		b, err := r.byte1()
		if err != nil {
			return nil, err
		}
		return value.Int(int64(b)), nil
	case tagUint16:
		p, err := r.take(2)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(binary.LittleEndian.Uint16(p))), nil
	case tagUint32:
		p, err := r.take(4)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(binary.LittleEndian.Uint32(p))), nil
	case tagUint64:
		p, err := r.take(8)
		if err != nil {
			return nil, err
		}
		// Bit fold; see Deserialize doc.
		return value.Int(int64(binary.LittleEndian.Uint64(p))), nil
	case tagFloat32:
		p, err := r.take(4)
		if err != nil {
			return nil, err
		}
		return value.Float(float64(math.Float32frombits(binary.LittleEndian.Uint32(p)))), nil
	case tagFloat64:
		p, err := r.take(8)
		if err != nil {
			return nil, err
		}
		return value.Float(math.Float64frombits(binary.LittleEndian.Uint64(p))), nil
	case tagString:
		s, err := d.readString(r)
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case tagBytes:
		return d.readBytes(r)
	case tagArray:
		return d.readArray(r, depth)
	case tagObject:
		return d.readObject(r, depth)
	default:
		if d.StrictTags {
			return nil, errInvalid(r.off-1, "unknown type tag 0x%02X", tag)
		}
		return value.Null(), nil
	}
}

// readString reads a varint length then that many raw bytes. Zero length
// consumes nothing further. The bytes are copied out of the envelope by the
// string conversion; no UTF-8 check is performed at this layer.
func (d *Decoder) readString(r *reader) (string, error) {
	n, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if n > uint64(r.remaining()) {
		return "", errTruncated(r.off, "string length %d exceeds %d remaining bytes", n, r.remaining())
	}
	p, err := r.take(uint32(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}

func (d *Decoder) readBytes(r *reader) (*value.Value, error) {
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return value.Bytes(nil), nil
	}
	if n > uint64(r.remaining()) {
		return nil, errTruncated(r.off, "bytes length %d exceeds %d remaining bytes", n, r.remaining())
	}
	p, err := r.take(uint32(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(p))
	copy(out, p)
	return value.Bytes(out), nil
}

// readArray decodes count then elements in wire order. The count is checked
// against the remaining bytes up front: every element occupies at least its
// tag byte, so a larger count can never complete and is rejected before any
// element is built.
func (d *Decoder) readArray(r *reader, depth int) (*value.Value, error) {
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.remaining()) {
		return nil, errTruncated(r.off, "array count %d exceeds %d remaining bytes", n, r.remaining())
	}
	arr := value.NewArray()
	for i := uint64(0); i < n; i++ {
		elem, err := d.readValue(r, depth-1)
		if err != nil {
			return nil, err
		}
		if err := arr.Append(elem); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// readObject decodes count then key/value pairs. Keys are raw
// varint-prefixed strings with no tag byte. Duplicate keys resolve last
// write wins through Set; uniqueness is not enforced on the wire.
func (d *Decoder) readObject(r *reader, depth int) (*value.Value, error) {
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.remaining()) {
		return nil, errTruncated(r.off, "object count %d exceeds %d remaining bytes", n, r.remaining())
	}
	obj := value.NewObject()
	for i := uint64(0); i < n; i++ {
		key, err := d.readString(r)
		if err != nil {
			return nil, err
		}
		elem, err := d.readValue(r, depth-1)
		if err != nil {
			return nil, err
		}
		if err := obj.Set(key, elem); err != nil {
			return nil, err
		}
	}
	return obj, nil
}
