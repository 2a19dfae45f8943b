package bos

import "encoding/binary"

// DeclaredSize returns the total size an envelope claims for itself: the
// 4-byte little-endian header value, which counts the header bytes too.
// It returns 0 when fewer than 4 bytes are supplied.
//
// The result is advisory. Nothing about the rest of the buffer is
// inspected; only Valid and Deserialize rule on well-formedness.
func DeclaredSize(buf []byte) uint32 {
	if len(buf) < headerLen {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}
