package pagedb

import "github.com/pkg/errors"

// PageAllocator hands out new pages by extending the file and swaps pages
// by index, per spec.md §4.3. It owns pagetable_origin and a local mirror
// of pages_count, kept in sync with the superblock's copy.
type PageAllocator struct {
	pagetableOrigin Offset
	pagesCount      uint64
	file            File
	logger          Logger
}

// NewPageAllocator constructs an allocator bound to pagetableOrigin,
// reading the current pages_count from disk.
func NewPageAllocator(f File, pagetableOrigin Offset, logger Logger) (*PageAllocator, error) {
	if logger == nil {
		logger = NoopLogger{}
	}
	count, err := readUint64(f, PagesCountOffset)
	if err != nil {
		return nil, err
	}
	return &PageAllocator{
		pagetableOrigin: pagetableOrigin,
		pagesCount:      count,
		file:            f,
		logger:          logger,
	}, nil
}

// PagesCount returns the total number of pages ever allocated.
func (a *PageAllocator) PagesCount() uint64 { return a.pagesCount }

// PagetableOrigin returns the absolute offset of page 0.
func (a *PageAllocator) PagetableOrigin() Offset { return a.pagetableOrigin }

// AllocatePage extends the file by one page, writes a fresh header for it,
// persists the new pages_count, and returns the new index.
func (a *PageAllocator) AllocatePage() (PageIndex, error) {
	size, err := a.file.Size()
	if err != nil {
		return 0, err
	}
	if (size-uint64(a.pagetableOrigin))%PageSize != 0 {
		a.logger.Error("unaligned file")
		return 0, StructureError("unaligned file")
	}

	newOffset := size
	a.logger.Debug("allocating page")

	if err := a.file.Extend(PageSize); err != nil {
		return 0, errors.Wrap(ErrStructure, "extend file: "+err.Error())
	}

	index := PageIndex(a.pagesCount)
	header := NewPageHeader(index)
	if _, err := a.file.WriteAt(header.MarshalBinary(), newOffset); err != nil {
		return 0, errors.Wrap(ErrStructure, "write new page header: "+err.Error())
	}

	a.pagesCount++
	if err := writeUint64(a.file, PagesCountOffset, a.pagesCount); err != nil {
		return 0, err
	}

	a.logger.Debug("successful allocation")
	return index, nil
}

// SwapPages swaps the identity fields (index, prev, next) of two pages,
// leaving their payloads in place. Used to enable future compaction.
//
// As in the original source, this does not patch the two pages' neighbors'
// prev/next pointers — a correct compaction scheme would need to (see
// DESIGN.md / spec.md §9, flagged as a known, intentionally-unfixed bug).
func (a *PageAllocator) SwapPages(first, second PageIndex) error {
	if uint64(first) >= a.pagesCount || uint64(second) >= a.pagesCount {
		return BadArgument("page index exceeds pages count")
	}

	firstAddr := PageAddress(a.pagetableOrigin, first)
	secondAddr := PageAddress(a.pagetableOrigin, second)

	firstHeader, err := readPageHeader(a.file, firstAddr)
	if err != nil {
		return err
	}
	secondHeader, err := readPageHeader(a.file, secondAddr)
	if err != nil {
		return err
	}

	firstHeader.Index, secondHeader.Index = secondHeader.Index, firstHeader.Index
	firstHeader.PrevIndex, secondHeader.PrevIndex = secondHeader.PrevIndex, firstHeader.PrevIndex
	firstHeader.NextIndex, secondHeader.NextIndex = secondHeader.NextIndex, firstHeader.NextIndex

	if err := writePageHeader(a.file, firstAddr, firstHeader); err != nil {
		return err
	}
	if err := writePageHeader(a.file, secondAddr, secondHeader); err != nil {
		return err
	}
	return nil
}
