package pagedb

import (
	"strconv"

	"github.com/pkg/errors"
)

// Database is the top-level handle: it owns the File, the in-memory
// Superblock mirror, the two PageLists, the PageAllocator, and the class
// registry (spec.md §3, "Lifecycle").
type Database struct {
	file       File
	logger     Logger
	superblock Superblock
	alloc      *PageAllocator
	freeList   *PageList
	classList  *PageList
	classMap   map[string]PageIndex
}

// Open constructs a Database over file under mode, per spec.md §4.7.
func Open(file File, mode OpenMode, opts *Options, logger Logger) (*Database, error) {
	if logger == nil {
		logger = NoopLogger{}
	}
	if opts == nil {
		opts = DefaultOptions
	}
	if opts.ReadOnly && mode == Write {
		return nil, BadArgument("cannot open in Write mode with ReadOnly option set")
	}

	db := &Database{file: file, logger: logger}

	var sb Superblock
	var err error
	switch mode {
	case Read:
		logger.Debug("OpenMode: Read")
		sb, err = ReadSuperblock(file)
		if err != nil {
			return nil, err
		}
	case Write:
		logger.Debug("OpenMode: Write")
		if err := file.Clear(); err != nil {
			return nil, errors.Wrap(ErrStructure, "clear file: "+err.Error())
		}
		sb, err = InitSuperblock(file)
		if err != nil {
			return nil, err
		}
	default: // Default
		logger.Debug("OpenMode: Default")
		sb, err = ReadSuperblock(file)
		if err != nil {
			logger.Error("can't open file in Read mode, rewriting..")
			if err := file.Clear(); err != nil {
				return nil, errors.Wrap(ErrStructure, "clear file: "+err.Error())
			}
			sb, err = InitSuperblock(file)
			if err != nil {
				return nil, err
			}
		}
	}
	db.superblock = sb

	alloc, err := NewPageAllocator(file, sb.PagetableOrigin, logger)
	if err != nil {
		return nil, err
	}
	db.alloc = alloc
	logger.Info("alloc initialized")

	db.freeList = NewPageList(alloc, FreeListSentinelOffset, logger)
	logger.Info("free list initialized")

	db.classList = NewPageList(alloc, ClassListSentinelOffset, logger)
	logger.Info("class list initialized")

	if err := db.initializeClassMap(); err != nil {
		return nil, err
	}

	return db, nil
}

// offsetOf computes the absolute file offset of the byte virtOffset bytes
// from the start of page index (header included).
func (db *Database) offsetOf(index PageIndex, virtOffset PageOffset) Offset {
	return db.superblock.PagetableOrigin + Offset(index)*PageSize + Offset(virtOffset)
}

func (db *Database) initializeClassMap() error {
	db.logger.Info("initializing class map..")
	db.classMap = make(map[string]PageIndex)
	return db.classList.ForEach(func(p PageHeader) error {
		descriptor, err := ReadClassDescriptor(db.file, db.offsetOf(p.Index, p.FirstFree))
		if err != nil {
			return err
		}
		db.logger.Debug("initialized: " + descriptor.ToString())
		db.classMap[descriptor.ToString()] = p.Index
		return nil
	})
}

// allocatePage implements the allocation policy of spec.md §4.7: pop from
// the free-list if non-empty, otherwise extend via the allocator.
func (db *Database) allocatePage() (PageIndex, error) {
	empty, err := db.freeList.IsEmpty()
	if err != nil {
		return 0, err
	}
	if !empty {
		return db.freeList.PopBack()
	}
	return db.alloc.AllocatePage()
}

// FreePage pushes index onto the free-list, rejecting an already-free page
// as a double-free.
func (db *Database) FreePage(index PageIndex) error {
	header, err := db.freeList.IteratorTo(index)
	if err != nil {
		return err
	}
	if header.Type == PageFree {
		return RuntimeError("double free")
	}
	return db.freeList.PushBack(index, PageFree)
}

// AddClass registers new_class, failing if its canonical string is already
// present or its descriptor doesn't fit in a page (spec.md §4.7).
func (db *Database) AddClass(newClass ClassLike) error {
	descriptor := NewClassDescriptor(newClass)

	if _, exists := db.classMap[descriptor.ToString()]; exists {
		return RuntimeError("Class already present in database")
	}

	if descriptor.Size() > PageSize-ClassHeaderSize {
		return NotImplementedError("Too complex class")
	}

	db.logger.Info("adding class")
	db.logger.Debug(descriptor.ToString())

	index, err := db.allocatePage()
	if err != nil {
		return err
	}
	db.logger.Debug("index allocated")

	if err := db.classList.PushBack(index, PageClassHeader); err != nil {
		return err
	}

	header, err := InitClassHeader(db.file, db.superblock.PagetableOrigin, index, PageOffset(descriptor.Size()))
	if err != nil {
		return err
	}

	if err := descriptor.Write(db.file, db.offsetOf(header.Index, header.FirstFree)); err != nil {
		return err
	}

	db.classMap[descriptor.ToString()] = header.Index
	return nil
}

// PrintAllClasses renders every registered class as "[index] : canonical",
// one per line, reading from either the in-memory cache or a fresh walk of
// the on-disk class-list (spec.md §4.7).
func (db *Database) PrintAllClasses(mode PrintMode) ([]string, error) {
	switch mode {
	case PrintCache:
		lines := make([]string, 0, len(db.classMap))
		for canonical, index := range db.classMap {
			lines = append(lines, formatClassLine(index, canonical))
		}
		return lines, nil
	case PrintFile:
		var lines []string
		err := db.classList.ForEach(func(p PageHeader) error {
			descriptor, err := ReadClassDescriptor(db.file, db.offsetOf(p.Index, p.FirstFree))
			if err != nil {
				return err
			}
			lines = append(lines, formatClassLine(p.Index, descriptor.ToString()))
			return nil
		})
		return lines, err
	default:
		return nil, BadArgument("unknown print mode")
	}
}

func formatClassLine(index PageIndex, canonical string) string {
	return "[" + strconv.FormatUint(uint64(index), 10) + "] : " + canonical
}

// ClassCount returns the number of registered classes, per the in-memory
// cache.
func (db *Database) ClassCount() int { return len(db.classMap) }

// Close writes the superblock back to disk. It does not close the
// underlying File — that remains the caller's concern, per spec.md §4.7.
//
// The counters and sentinels db.superblock was built from at Open time go
// stale the moment the allocator or either PageList mutates: both write
// their changes straight through to disk at fixed offsets, never back into
// this struct. Writing that stale snapshot here would clobber every mutation
// made since Open, so Close re-reads the current on-disk superblock first.
func (db *Database) Close() error {
	db.logger.Info("closing database")
	fresh, err := ReadSuperblock(db.file)
	if err != nil {
		return err
	}
	db.superblock = fresh
	return WriteSuperblock(db.file, db.superblock)
}
