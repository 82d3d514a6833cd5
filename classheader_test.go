package pagedb

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestClassHeaderMarshalRoundTrip(t *testing.T) {
	assert := assertion.New(t)

	h := NewClassHeader(3, 40)
	got, err := UnmarshalClassHeader(h.MarshalBinary())
	assert.NoError(err)
	assert.Equal(h, got)
}

func TestUnmarshalClassHeaderTruncated(t *testing.T) {
	assert := assertion.New(t)
	_, err := UnmarshalClassHeader(make([]byte, ClassHeaderSize-1))
	assert.Error(err)
}

func TestInitClassHeaderPreservesListLinkage(t *testing.T) {
	assert := assertion.New(t)
	alloc, f, cleanup := newAllocator(t)
	defer cleanup()

	classList := NewPageList(alloc, ClassListSentinelOffset, nil)

	a, err := alloc.AllocatePage()
	assert.NoError(err)
	b, err := alloc.AllocatePage()
	assert.NoError(err)

	assert.NoError(classList.PushBack(a, PageClassHeader))
	assert.NoError(classList.PushBack(b, PageClassHeader))

	// b is now linked behind a in the class list. Initializing its class
	// header must not sever that link — this is the bug InitClassHeader
	// fixes relative to building a fresh self-linked header from scratch.
	header, err := InitClassHeader(f, alloc.PagetableOrigin(), b, 10)
	assert.NoError(err)
	assert.Equal(a, header.PrevIndex)
	assert.Equal(DummyIndex, header.NextIndex)
	assert.False(header.Detached())

	onDisk, err := ReadClassHeader(f, alloc.PagetableOrigin(), b)
	assert.NoError(err)
	assert.Equal(a, onDisk.PrevIndex)
}

func TestInitClassHeaderSetsClassFields(t *testing.T) {
	assert := assertion.New(t)
	alloc, f, cleanup := newAllocator(t)
	defer cleanup()

	classList := NewPageList(alloc, ClassListSentinelOffset, nil)
	idx, err := alloc.AllocatePage()
	assert.NoError(err)
	assert.NoError(classList.PushBack(idx, PageClassHeader))

	header, err := InitClassHeader(f, alloc.PagetableOrigin(), idx, 55)
	assert.NoError(err)
	assert.Equal(PageClassHeader, header.Type)
	assert.Equal(PageOffset(55), header.ActualSize)
	assert.Equal(PageOffset(ClassHeaderSize), header.FirstFree)
	assert.True(header.NodeListSentinel.Detached())
	assert.Equal(uint64(0), header.Nodes)
}
