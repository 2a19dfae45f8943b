package codecs

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/bos/value"
)

// Msgpack transcodes value trees using vmihailenco/msgpack/v5. The zero
// value is ready to use.
//
// MsgPack keeps integers and binary payloads intact, making it a faithful
// target for every BOS kind, like CBOR.
type Msgpack struct{}

var _ Transcoder = Msgpack{}

func (Msgpack) Encode(v *value.Value) ([]byte, error) {
	return msgpack.Marshal(v.Interface())
}

func (Msgpack) Decode(b []byte) (*value.Value, error) {
	var raw any
	if err := msgpack.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return value.FromGo(raw)
}
