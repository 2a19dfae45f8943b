package bos

import "encoding/binary"

const (
	headerLen   = 4 // little-endian u32 total size, counted in that total
	minEnvelope = 5 // header plus at least a one-byte value
)

// reader is a cursor over one encoded envelope. All reads go through take,
// which is bounds-checked against the declared size, so neither the decoder
// nor the validator can read past what the header claims or what the caller
// actually supplied.
type reader struct {
	buf  []byte // caller-owned buffer, borrowed for the duration of one call
	size uint32 // declared total size from the header
	off  uint32 // bytes consumed so far, header included
}

// newReader checks the envelope (buffer holds at least 5 bytes, declared
// size is at least 5 and does not exceed the buffer) and positions the
// cursor after the header.
func newReader(buf []byte) (reader, error) {
	if len(buf) < minEnvelope {
		return reader{}, errTruncated(0, "envelope needs at least %d bytes, have %d", minEnvelope, len(buf))
	}
	size := binary.LittleEndian.Uint32(buf)
	if size < minEnvelope {
		return reader{}, errInvalid(0, "declared size %d below minimum envelope", size)
	}
	if uint64(size) > uint64(len(buf)) {
		return reader{}, errTruncated(0, "declared size %d exceeds supplied %d bytes", size, len(buf))
	}
	return reader{buf: buf, size: size, off: headerLen}, nil
}

// remaining reports how many declared bytes are left to read.
// off <= size holds at all times, so the subtraction cannot wrap.
func (r *reader) remaining() uint32 { return r.size - r.off }

// take returns the next n bytes as a subslice of the caller's buffer and
// advances the cursor. The slice aliases the input; callers that retain
// payload bytes must copy them.
func (r *reader) take(n uint32) ([]byte, error) {
	if n > r.remaining() {
		return nil, errTruncated(r.off, "need %d bytes, %d left in envelope", n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// byte1 reads a single byte; the common case for tags and bool payloads.
func (r *reader) byte1() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}
