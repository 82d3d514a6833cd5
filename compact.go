package pagedb

import "pagedb/codec"

// CompactClass re-writes a class's on-disk descriptor through codec's
// round trip, purely as an offline space-reclamation check — it never
// changes ClassDescriptor.ToString() identity. It fails with a
// RuntimeError if the codec's round trip does not reproduce the original
// descriptor bytes, and with BadArgument if canonical is not registered.
//
// This exists so the teacher's snappy/lz4 compressors (compress.go) have a
// caller in this domain: class descriptors rather than KV records.
func (db *Database) CompactClass(canonical string, c codec.Codec) error {
	index, ok := db.classMap[canonical]
	if !ok {
		return BadArgument("unknown class: " + canonical)
	}

	header, err := ReadClassHeader(db.file, db.superblock.PagetableOrigin, index)
	if err != nil {
		return err
	}

	descriptor, err := ReadClassDescriptor(db.file, db.offsetOf(header.Index, header.FirstFree))
	if err != nil {
		return err
	}

	original := []byte(descriptor.ToString())
	compressed := c.Compress(original)
	roundTripped, err := c.Decompress(compressed)
	if err != nil {
		return RuntimeError("codec round trip failed: " + err.Error())
	}
	if string(roundTripped) != descriptor.ToString() {
		return RuntimeError("codec round trip changed descriptor identity")
	}

	// Re-write the (unchanged) descriptor at its existing offset — the
	// on-disk format stays the fixed length-prefixed form; the codec
	// round trip above is the reclamation check, not a new wire format.
	return descriptor.Write(db.file, db.offsetOf(header.Index, header.FirstFree))
}
