// Package codecs transcodes BOS value trees to and from common interchange
// formats: CBOR, JSON, MsgPack and protobuf Struct. A transcoder pairs with
// bos.Serialize/bos.Deserialize to move documents across format boundaries
// without hand-written mapping code.
//
// Fidelity varies by target format and is documented per transcoder; the
// usual casualties are the Bytes kind (formats without a binary type fall
// back to base64 strings) and the Int/Float split (formats with one number
// type return floats).
package codecs

import (
	"fmt"

	"github.com/unkn0wn-root/bos/value"
)

// Transcoder re-encodes a BOS value tree in another serialization format
// and back.
type Transcoder interface {
	Encode(*value.Value) ([]byte, error)
	Decode([]byte) (*value.Value, error)
}

// Limit wraps another transcoder to enforce a maximum payload size at
// Decode time. Encode is forwarded to Inner unchanged. If MaxDecode <= 0,
// size limiting is disabled.
//
// Typical use: protect against oversized inputs arriving from a shared
// store or untrusted source before the inner format parser runs.
type Limit struct {
	Inner     Transcoder
	MaxDecode int
}

func (l Limit) Encode(v *value.Value) ([]byte, error) { return l.Inner.Encode(v) }

func (l Limit) Decode(b []byte) (*value.Value, error) {
	if l.MaxDecode > 0 && len(b) > l.MaxDecode {
		return nil, fmt.Errorf("codecs: payload too large: %d > %d", len(b), l.MaxDecode)
	}
	return l.Inner.Decode(b)
}
