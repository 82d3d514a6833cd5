package pagedb

// File is the byte-level block-device abstraction the core consumes; it is
// an external collaborator per spec.md §1/§6; the storage package supplies a
// concrete implementation. The interface is defined here, by the consumer,
// so pagedb never imports storage and storage never imports pagedb.
type File interface {
	// Size returns the current file size in bytes.
	Size() (uint64, error)
	// Extend appends delta zero bytes to the file.
	Extend(delta uint64) error
	// Clear truncates the file to zero length.
	Clear() error
	// ReadAt reads len(buf) bytes starting at offset.
	ReadAt(buf []byte, offset uint64) (int, error)
	// WriteAt writes buf starting at offset.
	WriteAt(buf []byte, offset uint64) (int, error)
	// Filename returns the path backing this File, for diagnostics.
	Filename() string
}
