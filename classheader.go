package pagedb

import "encoding/binary"

// ClassHeaderSize is the serialized size of a ClassHeader: the common page
// header plus its three extra fields.
const ClassHeaderSize = PageHeaderSize + PageHeaderSize + 8 + 8

// ClassHeader extends PageHeader with class-list membership bookkeeping: a
// node-list sentinel anchoring this class's own intrusive node list, plus
// node counters (spec.md §4.6). Node storage itself is out of this core's
// scope; the counters and sentinel exist so a future TypeSystem-aware layer
// has somewhere to link node pages.
type ClassHeader struct {
	PageHeader
	NodeListSentinel PageHeader
	NodePagesCount   uint64
	Nodes            uint64
}

// NewClassHeader returns a ClassHeader for index with a fresh, self-linked
// node-list sentinel and zeroed counters.
func NewClassHeader(index PageIndex, size PageOffset) ClassHeader {
	h := NewPageHeader(index)
	h.Type = PageClassHeader
	h.ActualSize = size
	h.FirstFree = ClassHeaderSize
	return ClassHeader{
		PageHeader:       h,
		NodeListSentinel: NewSentinel(),
		NodePagesCount:   0,
		Nodes:            0,
	}
}

// MarshalBinary serializes the class header in the fixed on-disk layout.
func (c ClassHeader) MarshalBinary() []byte {
	buf := make([]byte, ClassHeaderSize)
	copy(buf[0:PageHeaderSize], c.PageHeader.MarshalBinary())
	copy(buf[PageHeaderSize:2*PageHeaderSize], c.NodeListSentinel.MarshalBinary())
	off := 2 * PageHeaderSize
	binary.LittleEndian.PutUint64(buf[off:off+8], c.NodePagesCount)
	binary.LittleEndian.PutUint64(buf[off+8:off+16], c.Nodes)
	return buf
}

// UnmarshalClassHeader reconstructs a ClassHeader from its on-disk
// encoding.
func UnmarshalClassHeader(buf []byte) (ClassHeader, error) {
	if len(buf) < ClassHeaderSize {
		return ClassHeader{}, StructureError("truncated class header")
	}
	ph, err := UnmarshalPageHeader(buf[0:PageHeaderSize])
	if err != nil {
		return ClassHeader{}, err
	}
	sentinel, err := UnmarshalPageHeader(buf[PageHeaderSize : 2*PageHeaderSize])
	if err != nil {
		return ClassHeader{}, err
	}
	off := 2 * PageHeaderSize
	return ClassHeader{
		PageHeader:       ph,
		NodeListSentinel: sentinel,
		NodePagesCount:   binary.LittleEndian.Uint64(buf[off : off+8]),
		Nodes:            binary.LittleEndian.Uint64(buf[off+8 : off+16]),
	}, nil
}

// ReadClassHeader reads the class header stored at index within the
// pagetable rooted at pagetableOrigin.
func ReadClassHeader(f File, pagetableOrigin Offset, index PageIndex) (ClassHeader, error) {
	addr := PageAddress(pagetableOrigin, index)
	buf := make([]byte, ClassHeaderSize)
	if _, err := f.ReadAt(buf, uint64(addr)); err != nil {
		return ClassHeader{}, StructureError("read class header: " + err.Error())
	}
	return UnmarshalClassHeader(buf)
}

// InitClassHeader (re)initializes the class-specific fields of the header
// at index: type, actual_size, first_free, node-list sentinel and counters.
// It first reads the header already on disk and keeps its PageHeader
// Index/Prev/Next as-is, since index was just linked into the class list by
// PushBack — building a fresh self-linked PageHeader here, as NewClassHeader
// does, would sever that link.
func InitClassHeader(f File, pagetableOrigin Offset, index PageIndex, size PageOffset) (ClassHeader, error) {
	h, err := ReadClassHeader(f, pagetableOrigin, index)
	if err != nil {
		return ClassHeader{}, err
	}
	h.Type = PageClassHeader
	h.ActualSize = size
	h.FirstFree = ClassHeaderSize
	h.NodeListSentinel = NewSentinel()
	h.NodePagesCount = 0
	h.Nodes = 0

	if err := WriteClassHeader(f, pagetableOrigin, h); err != nil {
		return ClassHeader{}, err
	}
	return h, nil
}

// WriteClassHeader writes h back to its page.
func WriteClassHeader(f File, pagetableOrigin Offset, h ClassHeader) error {
	addr := PageAddress(pagetableOrigin, h.Index)
	if _, err := f.WriteAt(h.MarshalBinary(), uint64(addr)); err != nil {
		return StructureError("write class header: " + err.Error())
	}
	return nil
}
