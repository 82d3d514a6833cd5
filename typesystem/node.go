package typesystem

import "pagedb"

// Node is the minimal capability for an instance of a class. Node bodies —
// primitive value storage, struct field marshaling, cross-page spanning —
// are out of the core's scope per spec.md §1; this interface exists only
// so call sites that need to name "an instance of some class" have a type
// to reference.
type Node interface {
	Class() pagedb.ClassLike
	String() string
}
