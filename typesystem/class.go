// Package typesystem is the TypeSystem collaborator named in spec.md §6: it
// produces canonical class descriptors and the concrete ClassLike variants
// (Primitive, String, Struct) the core's ClassDescriptor wraps. Node value
// storage is explicitly out of the core's scope (spec.md §1); node.go here
// stays a thin capability interface rather than a full codec.
package typesystem

import (
	"strings"

	"pagedb"
)

// Kind names a primitive or struct kind in the canonical grammar
// (spec.md §6).
type Kind string

const (
	KindString       Kind = "string"
	KindInt          Kind = "int"
	KindUnsignedLong Kind = "unsignedlong"
	KindBool         Kind = "bool"
	KindStruct       Kind = "struct"
)

// class is the structural representation backing every concrete ClassLike
// value produced by this package, and what ParseCanonical reconstructs
// from a stored canonical string.
type class struct {
	kind     Kind
	name     string
	children []*class
}

// CanonicalString renders the class per spec.md §6's grammar:
// "_<kind>@<name>_" for primitives, "_struct@<name>_<children...>" for
// structs, where children are each field's CanonicalString concatenated in
// declaration order.
func (c *class) CanonicalString() string {
	if c.kind != KindStruct {
		return "_" + string(c.kind) + "@" + c.name + "_"
	}
	var b strings.Builder
	b.WriteString("_struct@")
	b.WriteString(c.name)
	b.WriteString("_<")
	for _, child := range c.children {
		b.WriteString(child.CanonicalString())
	}
	b.WriteString(">")
	return b.String()
}

// DescriptorSize reports the wire size of this class's descriptor.
func (c *class) DescriptorSize() int {
	return pagedb.NewClassDescriptor(c).Size()
}

// WriteDescriptor writes this class's descriptor at offset.
func (c *class) WriteDescriptor(f pagedb.File, offset pagedb.Offset) error {
	return pagedb.NewClassDescriptor(c).Write(f, offset)
}

// ReadDescriptor reads a descriptor at offset and replaces c's structure
// with the parsed result.
func (c *class) ReadDescriptor(f pagedb.File, offset pagedb.Offset) error {
	d, err := pagedb.ReadClassDescriptor(f, offset)
	if err != nil {
		return err
	}
	parsed, err := ParseCanonical(d.ToString())
	if err != nil {
		return err
	}
	*c = *(parsed.(*class))
	return nil
}

// Contains reports whether other matches one of this class's immediate
// fields by both kind and name — a direct, non-recursive field lookup, as
// illustrated by spec.md §8's Metadata scenario (a struct "contains" a
// field iff a direct child's canonical string equals the queried class's).
func (c *class) Contains(other pagedb.ClassLike) bool {
	target := other.CanonicalString()
	for _, child := range c.children {
		if child.CanonicalString() == target {
			return true
		}
	}
	return false
}

func newPrimitive(kind Kind, name string) (pagedb.ClassLike, error) {
	if err := ValidateIdentifier(name); err != nil {
		return nil, err
	}
	return &class{kind: kind, name: name}, nil
}

// NewString builds a validated string-kind class.
func NewString(name string) (pagedb.ClassLike, error) { return newPrimitive(KindString, name) }

// NewInt builds a validated int-kind class.
func NewInt(name string) (pagedb.ClassLike, error) { return newPrimitive(KindInt, name) }

// NewUnsignedLong builds a validated unsignedlong-kind class.
func NewUnsignedLong(name string) (pagedb.ClassLike, error) {
	return newPrimitive(KindUnsignedLong, name)
}

// NewBool builds a validated bool-kind class.
func NewBool(name string) (pagedb.ClassLike, error) { return newPrimitive(KindBool, name) }

// NewStruct builds a validated struct class from its fields, in
// declaration order.
func NewStruct(name string, fields ...pagedb.ClassLike) (pagedb.ClassLike, error) {
	if err := ValidateIdentifier(name); err != nil {
		return nil, err
	}
	children := make([]*class, 0, len(fields))
	for _, field := range fields {
		c, ok := field.(*class)
		if !ok {
			return nil, pagedb.BadArgument("struct field is not a typesystem class")
		}
		children = append(children, c)
	}
	return &class{kind: KindStruct, name: name, children: children}, nil
}
