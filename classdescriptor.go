package pagedb

import "encoding/binary"

// ClassDescriptor is the canonical textual serialization of a schema
// (spec.md §4.5). Two descriptors are equal iff their canonical strings
// are equal; that string is the descriptor's only identity.
type ClassDescriptor struct {
	canonical string
	live      ClassLike
}

// NewClassDescriptor builds a descriptor from a live class value.
func NewClassDescriptor(c ClassLike) ClassDescriptor {
	return ClassDescriptor{canonical: c.CanonicalString(), live: c}
}

// Size returns the serialized size: a 4-byte length prefix plus the UTF-8
// canonical string.
func (d ClassDescriptor) Size() int {
	return 4 + len(d.canonical)
}

// ToString returns the canonical string — the descriptor's identity.
func (d ClassDescriptor) ToString() string { return d.canonical }

// Contains delegates to the underlying class's structural containment
// predicate. A descriptor read fresh from disk has no live class attached;
// it falls back to the registered typesystem parser, and reports false if
// none is registered.
func (d ClassDescriptor) Contains(other ClassLike) bool {
	if d.live != nil {
		return d.live.Contains(other)
	}
	if ParseClass == nil {
		return false
	}
	parsed, err := ParseClass(d.canonical)
	if err != nil {
		return false
	}
	return parsed.Contains(other)
}

// Write writes a length-prefixed UTF-8 encoding of the canonical string at
// offset.
func (d ClassDescriptor) Write(f File, offset Offset) error {
	s := []byte(d.canonical)
	buf := make([]byte, 4+len(s))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(s)))
	copy(buf[4:], s)
	if _, err := f.WriteAt(buf, uint64(offset)); err != nil {
		return StructureError("write class descriptor: " + err.Error())
	}
	return nil
}

// ReadClassDescriptor reads the length prefix, then that many bytes,
// reconstructing a descriptor. Fails with StructureError on truncation.
func ReadClassDescriptor(f File, offset Offset) (ClassDescriptor, error) {
	lenBuf := make([]byte, 4)
	if n, err := f.ReadAt(lenBuf, uint64(offset)); err != nil || n < 4 {
		return ClassDescriptor{}, StructureError("truncated class descriptor length")
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	strBuf := make([]byte, n)
	read, err := f.ReadAt(strBuf, uint64(offset)+4)
	if err != nil || uint32(read) < n {
		return ClassDescriptor{}, StructureError("truncated class descriptor")
	}
	return ClassDescriptor{canonical: string(strBuf)}, nil
}
