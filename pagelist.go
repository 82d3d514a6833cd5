package pagedb

import "github.com/pkg/errors"

// PageList is an intrusive doubly-linked ring over pages, anchored by a
// sentinel stored in the superblock (spec.md §4.4). The "count" lives in
// the word immediately following the sentinel header at its offset.
//
// A neighbor index of DummyIndex means "the sentinel", which lives at
// sentinelOffset rather than in the pagetable; readAt/writeAt below hide
// that distinction from callers.
type PageList struct {
	alloc          *PageAllocator
	sentinelOffset Offset
	logger         Logger
}

// NewPageList constructs a PageList rooted at the sentinel stored at
// sentinelOffset within the superblock region.
func NewPageList(alloc *PageAllocator, sentinelOffset Offset, logger Logger) *PageList {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &PageList{alloc: alloc, sentinelOffset: sentinelOffset, logger: logger}
}

func (l *PageList) countOffset() Offset { return l.sentinelOffset + PageHeaderSize }

func (l *PageList) readAt(index PageIndex) (PageHeader, error) {
	if index == DummyIndex {
		return readPageHeader(l.alloc.file, l.sentinelOffset)
	}
	return readPageHeader(l.alloc.file, PageAddress(l.alloc.pagetableOrigin, index))
}

func (l *PageList) writeAt(index PageIndex, h PageHeader) error {
	if index == DummyIndex {
		return writePageHeader(l.alloc.file, l.sentinelOffset, h)
	}
	return writePageHeader(l.alloc.file, PageAddress(l.alloc.pagetableOrigin, index), h)
}

func (l *PageList) count() (uint64, error) {
	return readUint64(l.alloc.file, l.countOffset())
}

func (l *PageList) setCount(n uint64) error {
	return writeUint64(l.alloc.file, l.countOffset(), n)
}

// IsEmpty reports whether the ring is empty: the sentinel's next points
// back to itself.
func (l *PageList) IsEmpty() (bool, error) {
	sentinel, err := l.readAt(DummyIndex)
	if err != nil {
		return false, err
	}
	return sentinel.NextIndex == DummyIndex, nil
}

// PushBack splices idx between the old tail and the sentinel, setting its
// type to pageType, and increments the count. It is the caller's
// responsibility to pick the right pageType for the list (PageFree for the
// free-list, PageClassHeader for the class-list) — the list itself is
// agnostic to which ring it anchors.
func (l *PageList) PushBack(idx PageIndex, pageType PageType) error {
	sentinel, err := l.readAt(DummyIndex)
	if err != nil {
		return err
	}
	newHeader, err := l.readAt(idx)
	if err != nil {
		return err
	}

	oldTail := sentinel.PrevIndex
	newHeader.PrevIndex = oldTail
	newHeader.NextIndex = DummyIndex
	newHeader.Type = pageType
	if err := l.writeAt(idx, newHeader); err != nil {
		return err
	}

	if oldTail == DummyIndex {
		sentinel.NextIndex = idx
	} else {
		oldTailHeader, err := l.readAt(oldTail)
		if err != nil {
			return err
		}
		oldTailHeader.NextIndex = idx
		if err := l.writeAt(oldTail, oldTailHeader); err != nil {
			return err
		}
	}
	sentinel.PrevIndex = idx
	if err := l.writeAt(DummyIndex, sentinel); err != nil {
		return err
	}

	n, err := l.count()
	if err != nil {
		return err
	}
	return l.setCount(n + 1)
}

// PopBack detaches the tail, self-links it, decrements the count, and
// returns its index. Fails if the list is empty.
func (l *PageList) PopBack() (PageIndex, error) {
	empty, err := l.IsEmpty()
	if err != nil {
		return 0, err
	}
	if empty {
		return 0, RuntimeError("pop from empty list")
	}

	sentinel, err := l.readAt(DummyIndex)
	if err != nil {
		return 0, err
	}
	tailIdx := sentinel.PrevIndex
	tailHeader, err := l.readAt(tailIdx)
	if err != nil {
		return 0, err
	}

	newTail := tailHeader.PrevIndex
	if newTail == DummyIndex {
		sentinel.NextIndex = DummyIndex
		sentinel.PrevIndex = DummyIndex
	} else {
		newTailHeader, err := l.readAt(newTail)
		if err != nil {
			return 0, err
		}
		newTailHeader.NextIndex = DummyIndex
		if err := l.writeAt(newTail, newTailHeader); err != nil {
			return 0, err
		}
		sentinel.PrevIndex = newTail
	}
	if err := l.writeAt(DummyIndex, sentinel); err != nil {
		return 0, err
	}

	tailHeader.PrevIndex = tailIdx
	tailHeader.NextIndex = tailIdx
	if err := l.writeAt(tailIdx, tailHeader); err != nil {
		return 0, err
	}

	n, err := l.count()
	if err != nil {
		return 0, err
	}
	if err := l.setCount(n - 1); err != nil {
		return 0, err
	}
	return tailIdx, nil
}

// Back returns the tail's index. Fails if the list is empty.
func (l *PageList) Back() (PageIndex, error) {
	empty, err := l.IsEmpty()
	if err != nil {
		return 0, err
	}
	if empty {
		return 0, RuntimeError("back of empty list")
	}
	sentinel, err := l.readAt(DummyIndex)
	if err != nil {
		return 0, err
	}
	return sentinel.PrevIndex, nil
}

// IteratorTo reads the page header at idx. If idx is not actually linked
// into this list the result is unspecified, per spec.md §4.4 — callers
// must ensure membership.
func (l *PageList) IteratorTo(idx PageIndex) (PageHeader, error) {
	return l.readAt(idx)
}

// ForEach walks the ring from the sentinel's next pointer forward,
// invoking fn with a freshly-read header for every member page, stopping
// early if fn returns an error. Not restartable after an underlying
// mutation, as with any lazy traversal over mutable linked storage.
func (l *PageList) ForEach(fn func(PageHeader) error) error {
	sentinel, err := l.readAt(DummyIndex)
	if err != nil {
		return err
	}
	for cur := sentinel.NextIndex; cur != DummyIndex; {
		header, err := l.readAt(cur)
		if err != nil {
			return err
		}
		if err := fn(header); err != nil {
			return err
		}
		cur = header.NextIndex
	}
	return nil
}

// All collects every member page header via ForEach.
func (l *PageList) All() ([]PageHeader, error) {
	var out []PageHeader
	err := l.ForEach(func(h PageHeader) error {
		out = append(out, h)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "page list iteration")
	}
	return out, nil
}
