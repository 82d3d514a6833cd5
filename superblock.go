package pagedb

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Magic is the constant stored at file offset 0 identifying a valid
// database file.
const Magic uint64 = 0xDEADBEEF

// Named offsets within the superblock region, derived exactly as in
// spec.md §6: each is the absolute file offset of the named field.
const (
	MagicSize = 8

	FreeListSentinelOffset Offset = MagicSize
	FreePagesCountOffset   Offset = FreeListSentinelOffset + PageHeaderSize
	PagetableOffsetOffset  Offset = FreePagesCountOffset + 8
	PagesCountOffset       Offset = PagetableOffsetOffset + 8
	ClassListSentinelOffset Offset = PagesCountOffset + 8
	ClassListCountOffset   Offset = ClassListSentinelOffset + PageHeaderSize

	// SuperblockSize is the total size of the superblock region,
	// magic included; it equals the default pagetable_origin.
	SuperblockSize = ClassListCountOffset + 8
)

// Superblock is the in-memory mirror of the on-disk region at file offset
// 0: magic, global counters, the two intrusive-list sentinels, and the
// pagetable origin.
type Superblock struct {
	FreeListSentinel  PageHeader
	FreePagesCount    uint64
	PagetableOrigin   Offset
	PagesCount        uint64
	ClassListSentinel PageHeader
	ClassListCount    uint64
}

// CheckConsistency reads the magic at offset 0 and fails with a
// StructureError if it is absent, short, or mismatched.
func CheckConsistency(f File) error {
	buf := make([]byte, MagicSize)
	n, err := f.ReadAt(buf, 0)
	if err != nil || n < MagicSize {
		return StructureError("can't open database from this file: " + f.Filename())
	}
	if binary.LittleEndian.Uint64(buf) != Magic {
		return StructureError("can't open database from this file: " + f.Filename())
	}
	return nil
}

// ReadSuperblock checks consistency, then reads the full superblock struct
// from disk.
func ReadSuperblock(f File) (Superblock, error) {
	if err := CheckConsistency(f); err != nil {
		return Superblock{}, err
	}

	freeSentinel, err := readPageHeader(f, FreeListSentinelOffset)
	if err != nil {
		return Superblock{}, err
	}
	freeCount, err := readUint64(f, FreePagesCountOffset)
	if err != nil {
		return Superblock{}, err
	}
	pagetableOrigin, err := readUint64(f, PagetableOffsetOffset)
	if err != nil {
		return Superblock{}, err
	}
	pagesCount, err := readUint64(f, PagesCountOffset)
	if err != nil {
		return Superblock{}, err
	}
	classSentinel, err := readPageHeader(f, ClassListSentinelOffset)
	if err != nil {
		return Superblock{}, err
	}
	classCount, err := readUint64(f, ClassListCountOffset)
	if err != nil {
		return Superblock{}, err
	}

	return Superblock{
		FreeListSentinel:  freeSentinel,
		FreePagesCount:    freeCount,
		PagetableOrigin:   Offset(pagetableOrigin),
		PagesCount:        pagesCount,
		ClassListSentinel: classSentinel,
		ClassListCount:    classCount,
	}, nil
}

// InitSuperblock writes a fresh superblock: magic, self-linked sentinels,
// zeroed counters, pagetable_origin = sizeof(magic) + sizeof(Superblock).
func InitSuperblock(f File) (Superblock, error) {
	magicBuf := make([]byte, MagicSize)
	binary.LittleEndian.PutUint64(magicBuf, Magic)
	if _, err := f.WriteAt(magicBuf, 0); err != nil {
		return Superblock{}, errors.Wrap(ErrStructure, "write magic: "+err.Error())
	}

	sb := Superblock{
		FreeListSentinel:  NewSentinel(),
		FreePagesCount:    0,
		PagetableOrigin:   Offset(SuperblockSize),
		PagesCount:        0,
		ClassListSentinel: NewSentinel(),
		ClassListCount:    0,
	}

	if err := WriteSuperblock(f, sb); err != nil {
		return Superblock{}, err
	}
	return sb, nil
}

// WriteSuperblock verifies the magic is still present, then writes sb back
// to disk field by field at its canonical offsets.
func WriteSuperblock(f File, sb Superblock) error {
	if err := CheckConsistency(f); err != nil {
		return err
	}
	if err := writePageHeader(f, FreeListSentinelOffset, sb.FreeListSentinel); err != nil {
		return err
	}
	if err := writeUint64(f, FreePagesCountOffset, sb.FreePagesCount); err != nil {
		return err
	}
	if err := writeUint64(f, PagetableOffsetOffset, uint64(sb.PagetableOrigin)); err != nil {
		return err
	}
	if err := writeUint64(f, PagesCountOffset, sb.PagesCount); err != nil {
		return err
	}
	if err := writePageHeader(f, ClassListSentinelOffset, sb.ClassListSentinel); err != nil {
		return err
	}
	if err := writeUint64(f, ClassListCountOffset, sb.ClassListCount); err != nil {
		return err
	}
	return nil
}
