package codec

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestSnappyCodecRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	original := []byte("_struct@person_<_string@name__int@age_>")

	compressed := SnappyCodec.Compress(original)
	got, err := SnappyCodec.Decompress(compressed)
	assert.NoError(err)
	assert.Equal(original, got)
}

func TestLZ4CodecRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	original := []byte("_struct@person_<_string@name__int@age_>")

	compressed := LZ4Codec.Compress(original)
	got, err := LZ4Codec.Decompress(compressed)
	assert.NoError(err)
	assert.Equal(original, got)
}

func TestCodecsHaveDistinctNames(t *testing.T) {
	assert := assertion.New(t)
	assert.NotEqual(SnappyCodec.Name, LZ4Codec.Name)
}
