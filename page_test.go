package pagedb

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestPageHeaderRoundTrip(t *testing.T) {
	assert := assertion.New(t)

	h := PageHeader{
		Index:      7,
		Type:       PageClassHeader,
		PrevIndex:  3,
		NextIndex:  9,
		FirstFree:  82,
		ActualSize: 40,
	}
	got, err := UnmarshalPageHeader(h.MarshalBinary())
	assert.NoError(err)
	assert.Equal(h, got)
}

func TestPageHeaderMarshalSize(t *testing.T) {
	assert := assertion.New(t)
	h := NewPageHeader(0)
	assert.Len(h.MarshalBinary(), PageHeaderSize)
}

func TestUnmarshalPageHeaderTruncated(t *testing.T) {
	assert := assertion.New(t)
	_, err := UnmarshalPageHeader(make([]byte, PageHeaderSize-1))
	assert.Error(err)
}

func TestNewSentinelSelfLinked(t *testing.T) {
	assert := assertion.New(t)
	s := NewSentinel()
	assert.Equal(DummyIndex, s.Index)
	assert.True(s.Detached())
}

func TestDetached(t *testing.T) {
	assert := assertion.New(t)
	h := NewPageHeader(5)
	assert.True(h.Detached())
	h.NextIndex = 6
	assert.False(h.Detached())
}

func TestPageAddress(t *testing.T) {
	assert := assertion.New(t)
	assert.Equal(Offset(100), PageAddress(100, 0))
	assert.Equal(Offset(100+PageSize), PageAddress(100, 1))
}
