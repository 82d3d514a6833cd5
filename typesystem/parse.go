package typesystem

import (
	"strings"

	"pagedb"
)

func init() {
	pagedb.RegisterParser(func(canonical string) (pagedb.ClassLike, error) {
		return ParseCanonical(canonical)
	})
}

// ParseCanonical reconstructs a ClassLike from its canonical string,
// inverting (*class).CanonicalString. It backs ClassDescriptor.Contains
// for descriptors read fresh from disk, where no live class value is
// available.
func ParseCanonical(s string) (pagedb.ClassLike, error) {
	c, pos, err := parseOne(s, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(s) {
		return nil, pagedb.StructureError("trailing data after class descriptor")
	}
	return c, nil
}

func parseOne(s string, pos int) (*class, int, error) {
	if pos >= len(s) || s[pos] != '_' {
		return nil, 0, pagedb.StructureError("malformed class descriptor")
	}
	pos++

	at := strings.IndexByte(s[pos:], '@')
	if at < 0 {
		return nil, 0, pagedb.StructureError("malformed class descriptor: missing '@'")
	}
	kind := Kind(s[pos : pos+at])
	pos += at + 1

	under := strings.IndexByte(s[pos:], '_')
	if under < 0 {
		return nil, 0, pagedb.StructureError("malformed class descriptor: missing name terminator")
	}
	name := s[pos : pos+under]
	pos += under + 1

	if kind != KindStruct {
		return &class{kind: kind, name: name}, pos, nil
	}

	if pos >= len(s) || s[pos] != '<' {
		return nil, 0, pagedb.StructureError("malformed struct descriptor: missing '<'")
	}
	pos++

	var children []*class
	for pos < len(s) && s[pos] != '>' {
		child, next, err := parseOne(s, pos)
		if err != nil {
			return nil, 0, err
		}
		children = append(children, child)
		pos = next
	}
	if pos >= len(s) || s[pos] != '>' {
		return nil, 0, pagedb.StructureError("malformed struct descriptor: missing '>'")
	}
	pos++

	return &class{kind: kind, name: name, children: children}, pos, nil
}
