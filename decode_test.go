package bos

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/unkn0wn-root/bos/value"
)

// envelope prepends the little-endian size header covering itself.
func envelope(body ...byte) []byte {
	buf := make([]byte, headerLen, headerLen+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(headerLen+len(body)))
	return append(buf, body...)
}

func mustDeserialize(t *testing.T, b []byte) *value.Value {
	t.Helper()
	v, err := Deserialize(b)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	return v
}

func TestWireFixtures(t *testing.T) {
	// Exact byte sequences shared with other BOS implementations.
	boolTrue := []byte{0x06, 0x00, 0x00, 0x00, 0x01, 0x01}
	if v := mustDeserialize(t, boolTrue); v.Kind() != value.KindBool || !v.BoolVal() {
		t.Fatalf("want true, got %v (%s)", v.Interface(), v.Kind())
	}

	null := []byte{0x05, 0x00, 0x00, 0x00, 0x00}
	if v := mustDeserialize(t, null); !v.IsNull() {
		t.Fatalf("want null, got %s", v.Kind())
	}

	hi := []byte{0x08, 0x00, 0x00, 0x00, 0x0C, 0x02, 0x68, 0x69}
	if v := mustDeserialize(t, hi); v.Str() != "hi" {
		t.Fatalf("want %q, got %v (%s)", "hi", v.Interface(), v.Kind())
	}
}

func TestScalars(t *testing.T) {
	cases := []struct {
		name string
		body []byte
		want *value.Value
	}{
		{"bool false", []byte{tagBool, 0x00}, value.Bool(false)},
		{"int8 -1", []byte{tagInt8, 0xFF}, value.Int(-1)},
		{"int16 -300", []byte{tagInt16, 0xD4, 0xFE}, value.Int(-300)},
		{"int32 -2147483640", []byte{tagInt32, 0x08, 0x00, 0x00, 0x80}, value.Int(-2147483640)},
		{"int64 min", []byte{tagInt64, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, value.Int(math.MinInt64)},
		{"uint8 254", []byte{tagUint8, 0xFE}, value.Int(254)},
		{"uint16 4000", []byte{tagUint16, 0xA0, 0x0F}, value.Int(4000)},
		{"uint32 max", []byte{tagUint32, 0xFF, 0xFF, 0xFF, 0xFF}, value.Int(math.MaxUint32)},
		// UInt64 values at or above 1<<63 fold into negative integers.
		{"uint64 max folds", []byte{tagUint64, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, value.Int(-1)},
		{"float32 1.5", []byte{tagFloat32, 0x00, 0x00, 0xC0, 0x3F}, value.Float(1.5)},
		{"float64 -2.25", []byte{tagFloat64, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0xC0}, value.Float(-2.25)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustDeserialize(t, envelope(tc.body...))
			if !got.Equal(tc.want) {
				t.Fatalf("got %v (%s), want %v", got.Interface(), got.Kind(), tc.want.Interface())
			}
		})
	}
}

func TestEmptyStringAndBytes(t *testing.T) {
	// Zero length consumes no payload bytes and expects no terminator:
	// these envelopes end right after the length varint.
	s := mustDeserialize(t, envelope(tagString, 0x00))
	if s.Kind() != value.KindString || s.Str() != "" {
		t.Fatalf("want empty string, got %v (%s)", s.Interface(), s.Kind())
	}
	b := mustDeserialize(t, envelope(tagBytes, 0x00))
	if b.Kind() != value.KindBytes || len(b.BytesVal()) != 0 {
		t.Fatalf("want empty bytes, got %v (%s)", b.Interface(), b.Kind())
	}
}

func TestArrayOrderAndDuplicates(t *testing.T) {
	// [1, "x", 1]
	v := mustDeserialize(t, envelope(
		tagArray, 0x03,
		tagUint8, 0x01,
		tagString, 0x01, 'x',
		tagUint8, 0x01,
	))
	if v.Len() != 3 {
		t.Fatalf("len = %d, want 3", v.Len())
	}
	if v.Index(0).Int64() != 1 || v.Index(1).Str() != "x" || v.Index(2).Int64() != 1 {
		t.Fatalf("wrong elements: %v", v.Interface())
	}
}

func TestDuplicateObjectKeysLastWins(t *testing.T) {
	v := mustDeserialize(t, envelope(
		tagObject, 0x02,
		0x01, 'a', tagUint8, 0x01,
		0x01, 'a', tagUint8, 0x02,
	))
	if v.Len() != 1 {
		t.Fatalf("len = %d, want 1", v.Len())
	}
	if got := v.Get("a").Int64(); got != 2 {
		t.Fatalf("a = %d, want 2 (last write wins)", got)
	}
}

func TestUnknownTag(t *testing.T) {
	buf := envelope(0x10)

	// Permissive default maps unknown tags to null.
	if v := mustDeserialize(t, buf); !v.IsNull() {
		t.Fatalf("permissive decode: want null, got %s", v.Kind())
	}

	// StrictTags closes the asymmetry with Valid.
	strict := Decoder{StrictTags: true}
	if _, err := strict.Deserialize(buf); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("strict decode: want ErrInvalidFormat, got %v", err)
	}
	if Valid(buf) {
		t.Fatalf("Valid must reject unknown tags")
	}
}

func TestNestedContainers(t *testing.T) {
	// {"a": [null, {"b": true}], "c": "d"}
	v := mustDeserialize(t, envelope(
		tagObject, 0x02,
		0x01, 'a', tagArray, 0x02,
		tagNull,
		tagObject, 0x01, 0x01, 'b', tagBool, 0x01,
		0x01, 'c', tagString, 0x01, 'd',
	))
	if v.Get("c").Str() != "d" {
		t.Fatalf("c = %v", v.Get("c").Interface())
	}
	arr := v.Get("a")
	if arr.Len() != 2 || !arr.Index(0).IsNull() {
		t.Fatalf("a = %v", arr.Interface())
	}
	if !arr.Index(1).Get("b").BoolVal() {
		t.Fatalf("a[1].b = %v", arr.Index(1).Interface())
	}
}

func nestedArrays(depth int) []byte {
	body := make([]byte, 0, 2*depth+1)
	for i := 0; i < depth; i++ {
		body = append(body, tagArray, 0x01)
	}
	return envelope(append(body, tagNull)...)
}

func TestNestingWithinLimit(t *testing.T) {
	v := mustDeserialize(t, nestedArrays(100))
	for i := 0; i < 100; i++ {
		if v.Kind() != value.KindArray || v.Len() != 1 {
			t.Fatalf("level %d: %s len %d", i, v.Kind(), v.Len())
		}
		v = v.Index(0)
	}
	if !v.IsNull() {
		t.Fatalf("innermost: %s", v.Kind())
	}
}

func TestDeepNestingFailsCleanly(t *testing.T) {
	buf := nestedArrays(100_000)
	if _, err := Deserialize(buf); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("want ErrInvalidFormat past max depth, got %v", err)
	}
	if Valid(buf) {
		t.Fatalf("Valid must reject past max depth")
	}

	// A raised limit decodes the same buffer.
	d := Decoder{MaxDepth: 200_000}
	if _, err := d.Deserialize(buf); err != nil {
		t.Fatalf("raised limit: %v", err)
	}
	if !d.Valid(buf) {
		t.Fatalf("raised limit: Valid = false")
	}
}

func TestTruncatedPayloads(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
	}{
		{"string body short", envelope(tagString, 0x05, 'a')},
		{"bytes body short", envelope(tagBytes, 0x03)},
		{"int64 payload short", envelope(tagInt64, 0x01, 0x02)},
		{"array count beyond envelope", envelope(tagArray, 0x05)},
		{"object count beyond envelope", envelope(tagObject, 0x04)},
		{"varint continuation short", envelope(tagString, 0xFD, 0x01)},
		{"missing bool payload", envelope(tagBool)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deserialize(tc.buf)
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("want ErrTruncated, got %v", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("want *DecodeError, got %T", err)
			}
			if de.Offset < headerLen {
				t.Fatalf("offset %d inside header", de.Offset)
			}
			if Valid(tc.buf) {
				t.Fatalf("Valid accepted truncated input")
			}
		})
	}
}

func TestEnvelopeChecks(t *testing.T) {
	// Four actual bytes, header claiming five.
	short := []byte{0x05, 0x00, 0x00, 0x00}
	if Valid(short) {
		t.Fatalf("Valid accepted declared size beyond supplied bytes")
	}
	if _, err := Deserialize(short); !errors.Is(err, ErrTruncated) {
		t.Fatalf("want ErrTruncated, got %v", err)
	}

	// Declared size below the minimum envelope.
	tiny := []byte{0x04, 0x00, 0x00, 0x00, 0x00}
	if Valid(tiny) {
		t.Fatalf("Valid accepted undersized declaration")
	}
	if _, err := Deserialize(tiny); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("want ErrInvalidFormat, got %v", err)
	}

	// Declared size bounds reads even when the buffer has more real bytes:
	// the string needs 2 payload bytes but the envelope claims to end first.
	overhang := []byte{0x06, 0x00, 0x00, 0x00, tagString, 0x02, 'h', 'i'}
	if Valid(overhang) {
		t.Fatalf("Valid read past declared size")
	}
	if _, err := Deserialize(overhang); !errors.Is(err, ErrTruncated) {
		t.Fatalf("want ErrTruncated, got %v", err)
	}

	// Trailing bytes inside the declared size are tolerated.
	padded := []byte{0x07, 0x00, 0x00, 0x00, tagNull, 0xAA, 0xBB}
	if !Valid(padded) {
		t.Fatalf("Valid rejected padded envelope")
	}
	if v := mustDeserialize(t, padded); !v.IsNull() {
		t.Fatalf("padded envelope: got %s", v.Kind())
	}
}

func TestDecodedTreeOwnsItsBytes(t *testing.T) {
	buf := envelope(tagBytes, 0x03, 1, 2, 3)
	v := mustDeserialize(t, buf)
	buf[6] = 0xEE
	if got := v.BytesVal(); got[0] != 1 {
		t.Fatalf("decoded bytes alias the input buffer")
	}
}
