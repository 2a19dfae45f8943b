package bos

// Valid reports whether buf holds a well-formed envelope, using a
// zero-value Decoder.
func Valid(buf []byte) bool {
	var d Decoder
	return d.Valid(buf)
}

// Valid re-walks the grammar without building a value tree and reports a
// verdict only. It is stricter than Deserialize in one respect: type tags
// above 0x0F are always rejected here, while the permissive decoder maps
// them to null unless StrictTags is set.
//
// Checks performed before the walk: the buffer holds at least 5 bytes, the
// declared size is at least 5, and the declared size does not exceed the
// supplied length. During the walk every fixed-width read, varint
// continuation and declared payload length is checked against the declared
// size, and nesting is capped at MaxDepth.
func (d *Decoder) Valid(buf []byte) bool {
	r, err := newReader(buf)
	if err != nil {
		return false
	}
	return d.validValue(&r, d.maxDepth())
}

func (d *Decoder) validValue(r *reader, depth int) bool {
	if depth <= 0 {
		return false
	}
	tag, err := r.byte1()
	if err != nil {
		return false
	}
	switch tag {
	case tagNull:
		return true
	case tagBool, tagInt8, tagUint8:
		return r.skip(1)
	case tagInt16, tagUint16:
		return r.skip(2)
	case tagInt32, tagUint32, tagFloat32:
		return r.skip(4)
	case tagInt64, tagUint64, tagFloat64:
		return r.skip(8)
	case tagString, tagBytes:
		return d.validBlob(r)
	case tagArray:
		return d.validArray(r, depth)
	case tagObject:
		return d.validObject(r, depth)
	default:
		return false
	}
}

// skip advances past n bytes, reporting whether they were available.
func (r *reader) skip(n uint32) bool {
	_, err := r.take(n)
	return err == nil
}

// validBlob covers strings and byte blobs: both are a varint length
// followed by that many raw bytes.
func (d *Decoder) validBlob(r *reader) bool {
	n, err := r.uvarint()
	if err != nil {
		return false
	}
	if n > uint64(r.remaining()) {
		return false
	}
	return r.skip(uint32(n))
}

func (d *Decoder) validArray(r *reader, depth int) bool {
	n, err := r.uvarint()
	if err != nil {
		return false
	}
	if n > uint64(r.remaining()) {
		return false
	}
	for i := uint64(0); i < n; i++ {
		if !d.validValue(r, depth-1) {
			return false
		}
	}
	return true
}

func (d *Decoder) validObject(r *reader, depth int) bool {
	n, err := r.uvarint()
	if err != nil {
		return false
	}
	if n > uint64(r.remaining()) {
		return false
	}
	for i := uint64(0); i < n; i++ {
		if !d.validBlob(r) {
			return false
		}
		if !d.validValue(r, depth-1) {
			return false
		}
	}
	return true
}
