package codecs

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/bos/value"
)

// CBOR transcodes value trees using fxamacker/cbor. The zero value is NOT
// ready to use. Construct with NewCBOR or MustCBOR.
//
// CBOR carries every BOS kind faithfully: integers stay integers, byte
// blobs stay binary. Use deterministic=true for canonical encoding
// (RFC 8949 Core Deterministic) when byte-for-byte stable output matters,
// e.g. hashing or content addressing.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Transcoder = CBOR{}

// NewCBOR constructs a CBOR transcoder.
//   - deterministic true uses CoreDetEncOptions (RFC 8949).
//   - Otherwise PreferredUnsortedEncOptions (smaller/faster defaults).
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error. Handy for package-level
// variables in tests and examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Encode(v *value.Value) ([]byte, error) {
	return c.enc.Marshal(v.Interface())
}

func (c CBOR) Decode(b []byte) (*value.Value, error) {
	var raw any
	if err := c.dec.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return value.FromGo(raw)
}
