package pagedb

// ClassLike is the capability a schema value must provide (spec.md §6): a
// canonical identity string, wire size, descriptor read/write, and a
// structural containment predicate used only by tests. Concrete variants
// (Primitive, String, Struct) live in the typesystem package, an external
// collaborator per spec.md §1 — the core only depends on this interface.
type ClassLike interface {
	CanonicalString() string
	DescriptorSize() int
	WriteDescriptor(f File, offset Offset) error
	ReadDescriptor(f File, offset Offset) error
	Contains(other ClassLike) bool
}

// ParseClass reconstructs a ClassLike from its canonical string. The core
// never implements the typesystem grammar itself; typesystem installs this
// hook from its package init via RegisterParser — the same registration
// pattern database/sql drivers use to stay decoupled from the package that
// consumes them. Only ClassDescriptor.Contains needs it, and only for
// descriptors read fresh from disk (spec.md §4.5, "used only by tests").
var ParseClass func(canonical string) (ClassLike, error)

// RegisterParser installs the canonical-string parser.
func RegisterParser(parse func(canonical string) (ClassLike, error)) {
	ParseClass = parse
}
