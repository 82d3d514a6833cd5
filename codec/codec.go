// Package codec supplies pluggable compressors for the optional class
// descriptor compaction helper (SPEC_FULL.md §5). It carries over the
// teacher's compress.go shape — a Compressor/Decompressor function pair per
// algorithm — applied here to class descriptors instead of KV records.
package codec

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses a byte slice.
type Compressor func([]byte) []byte

// Decompressor reverses a Compressor.
type Decompressor func([]byte) ([]byte, error)

// Codec pairs a compressor with its decompressor under a name, so
// Database.CompactClass can round-trip a descriptor through it.
type Codec struct {
	Name     string
	Compress Compressor
	Decompress Decompressor
}

// SnappyCodec compresses with github.com/golang/snappy.
var SnappyCodec = Codec{
	Name: "snappy",
	Compress: func(in []byte) []byte {
		return snappy.Encode(nil, in)
	},
	Decompress: func(in []byte) ([]byte, error) {
		return snappy.Decode(nil, in)
	},
}

// LZ4Codec compresses with github.com/pierrec/lz4/v4.
var LZ4Codec = Codec{
	Name: "lz4",
	Compress: func(in []byte) []byte {
		buf := &bytes.Buffer{}
		w := lz4.NewWriter(buf)
		if _, err := w.Write(in); err != nil {
			panic(err)
		}
		if err := w.Close(); err != nil {
			panic(err)
		}
		return buf.Bytes()
	},
	Decompress: func(in []byte) ([]byte, error) {
		buf := &bytes.Buffer{}
		r := lz4.NewReader(bytes.NewReader(in))
		if _, err := io.Copy(buf, r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
}
