package pagedb

import "github.com/pkg/errors"

// Sentinel error kinds, checked with errors.Is, matching the taxonomy of
// spec.md §7. Each operation that fails wraps one of these with
// errors.Wrap so the message carries context while the kind stays testable.
var (
	// ErrStructure signals an invalid on-disk layout: bad magic, an
	// unaligned file, or a truncated record. Recoverable only by
	// reinitialization.
	ErrStructure = errors.New("structure error")

	// ErrBadArgument signals an out-of-range index or malformed
	// identifier supplied by the caller.
	ErrBadArgument = errors.New("bad argument")

	// ErrRuntime signals an invariant violation detectable at call
	// time: double-free, duplicate class registration.
	ErrRuntime = errors.New("runtime error")

	// ErrNotImplemented signals a case the core does not cover, such as
	// a class descriptor larger than a page.
	ErrNotImplemented = errors.New("not implemented")

	// ErrType signals that the typesystem rejected an identifier or
	// shape.
	ErrType = errors.New("type error")
)

// StructureError wraps ErrStructure with context.
func StructureError(msg string) error {
	return errors.Wrap(ErrStructure, msg)
}

// BadArgument wraps ErrBadArgument with context.
func BadArgument(msg string) error {
	return errors.Wrap(ErrBadArgument, msg)
}

// RuntimeError wraps ErrRuntime with context.
func RuntimeError(msg string) error {
	return errors.Wrap(ErrRuntime, msg)
}

// NotImplementedError wraps ErrNotImplemented with context.
func NotImplementedError(msg string) error {
	return errors.Wrap(ErrNotImplemented, msg)
}

// TypeErrorf wraps ErrType with context.
func TypeErrorf(msg string) error {
	return errors.Wrap(ErrType, msg)
}
