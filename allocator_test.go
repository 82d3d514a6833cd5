package pagedb

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func newAllocator(t *testing.T) (*PageAllocator, *stubFile, func()) {
	t.Helper()
	f, cleanup := tempFile(t)
	sb, err := InitSuperblock(f)
	if err != nil {
		cleanup()
		t.Fatalf("init superblock: %v", err)
	}
	alloc, err := NewPageAllocator(f, sb.PagetableOrigin, nil)
	if err != nil {
		cleanup()
		t.Fatalf("new allocator: %v", err)
	}
	return alloc, f, cleanup
}

func TestAllocatePageIncrementsCount(t *testing.T) {
	assert := assertion.New(t)
	alloc, _, cleanup := newAllocator(t)
	defer cleanup()

	idx, err := alloc.AllocatePage()
	assert.NoError(err)
	assert.Equal(PageIndex(0), idx)
	assert.Equal(uint64(1), alloc.PagesCount())

	idx2, err := alloc.AllocatePage()
	assert.NoError(err)
	assert.Equal(PageIndex(1), idx2)
	assert.Equal(uint64(2), alloc.PagesCount())
}

func TestAllocatePagePersistsCountAcrossAllocators(t *testing.T) {
	assert := assertion.New(t)
	alloc, f, cleanup := newAllocator(t)
	defer cleanup()

	_, err := alloc.AllocatePage()
	assert.NoError(err)

	reopened, err := NewPageAllocator(f, alloc.PagetableOrigin(), nil)
	assert.NoError(err)
	assert.Equal(uint64(1), reopened.PagesCount())
}

func TestSwapPagesRejectsOutOfRange(t *testing.T) {
	assert := assertion.New(t)
	alloc, _, cleanup := newAllocator(t)
	defer cleanup()

	_, err := alloc.AllocatePage()
	assert.NoError(err)

	err = alloc.SwapPages(0, 5)
	assert.Error(err)
}

func TestSwapPagesExchangesIdentity(t *testing.T) {
	assert := assertion.New(t)
	alloc, f, cleanup := newAllocator(t)
	defer cleanup()

	a, err := alloc.AllocatePage()
	assert.NoError(err)
	b, err := alloc.AllocatePage()
	assert.NoError(err)

	assert.NoError(alloc.SwapPages(a, b))

	headerA, err := readPageHeader(f, PageAddress(alloc.PagetableOrigin(), a))
	assert.NoError(err)
	headerB, err := readPageHeader(f, PageAddress(alloc.PagetableOrigin(), b))
	assert.NoError(err)
	assert.Equal(b, headerA.Index)
	assert.Equal(a, headerB.Index)
}
