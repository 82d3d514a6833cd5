package pagedb

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// PageSize is the fixed size, in bytes, of every page in the pagetable.
// It is a compile-time constant rather than an OS page-size query so that a
// database file written on one machine opens correctly on another.
const PageSize = 4096

// PageIndex identifies a page within the pagetable. DummyIndex is the
// reserved value used as the index of the sentinels embedded in the
// superblock, and as the neighbor index that designates a list's sentinel.
type PageIndex uint64

// DummyIndex is the reserved PageIndex of sentinels. A detached page is
// self-linked to its own index instead (see Detached).
const DummyIndex PageIndex = math.MaxUint64

// PageOffset is a byte offset measured from the start of a page, header
// included; the first byte past a plain page header is at PageHeaderSize.
type PageOffset uint32

// Offset is an absolute byte offset within the backing file.
type Offset uint64

// PageType identifies the role a page currently plays.
type PageType uint8

const (
	PageEmpty PageType = iota
	PageFree
	PageSentinel
	PageClassHeader
	PageNode
)

func (t PageType) String() string {
	switch t {
	case PageEmpty:
		return "Empty"
	case PageFree:
		return "Free"
	case PageSentinel:
		return "Sentinel"
	case PageClassHeader:
		return "ClassHeader"
	case PageNode:
		return "Node"
	default:
		return "Unknown"
	}
}

// PageHeaderSize is the serialized size of a PageHeader.
const PageHeaderSize = 8 + 1 + 8 + 8 + 4 + 4

// PageHeader is the fixed layout stored at the start of every page,
// including the sentinel headers embedded in the superblock.
type PageHeader struct {
	Index      PageIndex
	Type       PageType
	PrevIndex  PageIndex
	NextIndex  PageIndex
	FirstFree  PageOffset
	ActualSize PageOffset
}

// NewPageHeader returns a freshly detached Empty page header for index.
func NewPageHeader(index PageIndex) PageHeader {
	return PageHeader{
		Index:      index,
		Type:       PageEmpty,
		PrevIndex:  index,
		NextIndex:  index,
		FirstFree:  PageHeaderSize,
		ActualSize: 0,
	}
}

// NewSentinel returns a self-linked sentinel header, as embedded in the
// superblock to anchor a PageList ring.
func NewSentinel() PageHeader {
	return PageHeader{
		Index:      DummyIndex,
		Type:       PageSentinel,
		PrevIndex:  DummyIndex,
		NextIndex:  DummyIndex,
		FirstFree:  PageHeaderSize,
		ActualSize: 0,
	}
}

// Detached reports whether the page is not linked into any list.
func (h PageHeader) Detached() bool {
	return h.PrevIndex == h.Index && h.NextIndex == h.Index
}

// PageAddress computes the absolute file offset of page index within the
// pagetable that begins at pagetableOrigin.
func PageAddress(pagetableOrigin Offset, index PageIndex) Offset {
	return pagetableOrigin + Offset(index)*PageSize
}

// MarshalBinary writes the header in the fixed, platform-neutral layout
// used on disk: little-endian, fixed-width fields, in declaration order.
func (h PageHeader) MarshalBinary() []byte {
	buf := make([]byte, PageHeaderSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(h.Index))
	buf[8] = byte(h.Type)
	binary.LittleEndian.PutUint64(buf[9:17], uint64(h.PrevIndex))
	binary.LittleEndian.PutUint64(buf[17:25], uint64(h.NextIndex))
	binary.LittleEndian.PutUint32(buf[25:29], uint32(h.FirstFree))
	binary.LittleEndian.PutUint32(buf[29:33], uint32(h.ActualSize))
	return buf
}

// UnmarshalPageHeader reconstructs a PageHeader from its on-disk encoding.
func UnmarshalPageHeader(buf []byte) (PageHeader, error) {
	if len(buf) < PageHeaderSize {
		return PageHeader{}, errors.Wrap(ErrStructure, "truncated page header")
	}
	return PageHeader{
		Index:      PageIndex(binary.LittleEndian.Uint64(buf[0:8])),
		Type:       PageType(buf[8]),
		PrevIndex:  PageIndex(binary.LittleEndian.Uint64(buf[9:17])),
		NextIndex:  PageIndex(binary.LittleEndian.Uint64(buf[17:25])),
		FirstFree:  PageOffset(binary.LittleEndian.Uint32(buf[25:29])),
		ActualSize: PageOffset(binary.LittleEndian.Uint32(buf[29:33])),
	}, nil
}

// readPageHeader reads a PageHeader from f at the given absolute offset.
func readPageHeader(f File, offset Offset) (PageHeader, error) {
	buf := make([]byte, PageHeaderSize)
	if _, err := f.ReadAt(buf, uint64(offset)); err != nil {
		return PageHeader{}, errors.Wrap(ErrStructure, "read page header: "+err.Error())
	}
	return UnmarshalPageHeader(buf)
}

// writePageHeader writes h to f at the given absolute offset.
func writePageHeader(f File, offset Offset, h PageHeader) error {
	if _, err := f.WriteAt(h.MarshalBinary(), uint64(offset)); err != nil {
		return errors.Wrap(ErrStructure, "write page header: "+err.Error())
	}
	return nil
}

// readUint64 / writeUint64 are small helpers for the bare counters stored
// alongside sentinels in the superblock and class headers.
func readUint64(f File, offset Offset) (uint64, error) {
	buf := make([]byte, 8)
	if _, err := f.ReadAt(buf, uint64(offset)); err != nil {
		return 0, errors.Wrap(ErrStructure, "read counter: "+err.Error())
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func writeUint64(f File, offset Offset, v uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	if _, err := f.WriteAt(buf, uint64(offset)); err != nil {
		return errors.Wrap(ErrStructure, "write counter: "+err.Error())
	}
	return nil
}
