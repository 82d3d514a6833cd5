// Package storage supplies the File collaborator named in spec.md §6: a
// flat byte store with byte-range read/write at offset, extend, size, and
// clear. It is deliberately thin — the on-disk invariants live in the
// pagedb core, not here — grounded on the teacher's os.File handling in
// db.go's Open/init and the flock-based locking in sys.go.
package storage

import (
	"os"

	"github.com/pkg/errors"
)

// MappedFile backs pagedb.File with a plain *os.File opened for
// read/write. Despite the name, it does not mmap — the core reads/writes
// explicit byte ranges via ReadAt/WriteAt, which is the portable
// equivalent of the teacher's mmap'd buffer without depending on the
// process's native struct layout (see SPEC_FULL.md §6).
type MappedFile struct {
	f    *os.File
	path string
}

// Open opens (creating if necessary) the file at path for use as a
// pagedb.File backing store.
func Open(path string, mode os.FileMode) (*MappedFile, error) {
	flag := os.O_RDWR | os.O_CREATE
	f, err := os.OpenFile(path, flag, mode)
	if err != nil {
		return nil, errors.Wrap(err, "open backing file")
	}
	return &MappedFile{f: f, path: path}, nil
}

// Size returns the current file size in bytes.
func (m *MappedFile) Size() (uint64, error) {
	info, err := m.f.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "stat backing file")
	}
	return uint64(info.Size()), nil
}

// Extend appends delta zero bytes to the end of the file.
func (m *MappedFile) Extend(delta uint64) error {
	size, err := m.Size()
	if err != nil {
		return err
	}
	if err := m.f.Truncate(int64(size + delta)); err != nil {
		return errors.Wrap(err, "extend backing file")
	}
	return nil
}

// Clear truncates the file to zero length.
func (m *MappedFile) Clear() error {
	if err := m.f.Truncate(0); err != nil {
		return errors.Wrap(err, "clear backing file")
	}
	if _, err := m.f.Seek(0, 0); err != nil {
		return errors.Wrap(err, "seek backing file")
	}
	return nil
}

// ReadAt reads len(buf) bytes starting at offset.
func (m *MappedFile) ReadAt(buf []byte, offset uint64) (int, error) {
	n, err := m.f.ReadAt(buf, int64(offset))
	if err != nil {
		return n, errors.Wrap(err, "read backing file")
	}
	return n, nil
}

// WriteAt writes buf starting at offset.
func (m *MappedFile) WriteAt(buf []byte, offset uint64) (int, error) {
	n, err := m.f.WriteAt(buf, int64(offset))
	if err != nil {
		return n, errors.Wrap(err, "write backing file")
	}
	return n, nil
}

// Filename returns the path backing this file.
func (m *MappedFile) Filename() string { return m.path }

// Close closes the underlying file descriptor. Database.Close does not do
// this for the caller (spec.md §4.7): the File outlives any one handle.
func (m *MappedFile) Close() error {
	return m.f.Close()
}

// Sync flushes the file to stable storage.
func (m *MappedFile) Sync() error {
	return m.f.Sync()
}
