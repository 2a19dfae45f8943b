package codecs

import (
	"bytes"
	"encoding/json"

	"github.com/unkn0wn-root/bos/value"
)

// JSON transcodes value trees using encoding/json. The zero value is ready
// to use.
//
// Numbers are parsed with json.Number, so integers survive the round trip
// instead of collapsing to float64. Bytes values encode to base64 strings
// and come back as String, JSON having no binary type.
type JSON struct{}

var _ Transcoder = JSON{}

func (JSON) Encode(v *value.Value) ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (JSON) Decode(b []byte) (*value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return value.FromGo(raw)
}
