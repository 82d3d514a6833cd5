package pagedb

import "time"

// OpenMode selects how Open treats the backing file, per spec.md §4.7.
type OpenMode uint8

const (
	// Default attempts Read; on StructureError or BadArgument it
	// silently falls back to Write, since an unreadable file is
	// treated as "not yet a database".
	Default OpenMode = iota
	// Read validates an existing superblock and fails if it is absent
	// or malformed.
	Read
	// Write clears the file and initializes a fresh superblock.
	Write
)

func (m OpenMode) String() string {
	switch m {
	case Default:
		return "Default"
	case Read:
		return "Read"
	case Write:
		return "Write"
	default:
		return "Unknown"
	}
}

// PrintMode selects the source Database.PrintAllClasses reads from
// (spec.md §4.7's Cache/File modes, renamed with a Print prefix since
// File already names the backing-store interface in this package).
type PrintMode uint8

const (
	// PrintCache iterates the in-memory class_map.
	PrintCache PrintMode = iota
	// PrintFile iterates the on-disk class-list, reading each
	// descriptor fresh.
	PrintFile
)

// Options configures Open, in the teacher's bolt-derived style
// (db.go's Options/DefaultOptions).
type Options struct {
	// Timeout is carried in Options but Open does not read it: Open takes
	// no file lock. Waiting for a lock with a timeout is done by
	// storage.MappedFile.WaitLock, which takes its timeout as an argument.
	Timeout time.Duration

	// ReadOnly makes Open reject Write mode. Open takes no lock for it, and
	// it does not stop Default mode from reinitializing a file whose
	// superblock cannot be read.
	ReadOnly bool
}

// DefaultOptions is used when Open is called with a nil *Options.
var DefaultOptions = &Options{
	Timeout:  0,
	ReadOnly: false,
}
