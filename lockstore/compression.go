package lockstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how a framed payload is compressed.
type Compression uint8

const (
	// CompressionNone stores the encoded selection as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd at the default level.
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps a name ("none", "lz4", "zstd") to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("lockstore: unknown compression %q", name)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// blockHeaderSize is [UncompressedSize uint32][CompressedSize uint32].
// A CompressedSize of 0 means the block is stored uncompressed.
const blockHeaderSize = 8

// maxBlockSize bounds the decompressed size accepted from a header.
const maxBlockSize = 64 << 20

var errCorruptBlock = errors.New("lockstore: corrupt compressed block")

func compress(c Compression, data []byte) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	var payload []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		payload = buf[:n] // n == 0: incompressible
	case CompressionZstd:
		enc := getZstdEncoder()
		payload = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("lockstore: unsupported compression %s", c)
	}

	out := make([]byte, blockHeaderSize, blockHeaderSize+len(data))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(data))) //nolint:gosec // bounded by maxBlockSize on read

	// Store raw when compression does not pay off.
	if len(payload) == 0 || len(payload) >= len(data) {
		return append(out, data...), nil
	}
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload))) //nolint:gosec // smaller than len(data)
	return append(out, payload...), nil
}

func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionLZ4, CompressionZstd:
	default:
		return nil, fmt.Errorf("lockstore: unsupported compression %s", c)
	}
	if len(data) < blockHeaderSize {
		return nil, errCorruptBlock
	}

	size := binary.LittleEndian.Uint32(data[0:4])
	csize := binary.LittleEndian.Uint32(data[4:8])
	body := data[blockHeaderSize:]
	if size > maxBlockSize {
		return nil, errCorruptBlock
	}
	if csize == 0 {
		if uint32(len(body)) != size { //nolint:gosec // len bounded by store payload
			return nil, errCorruptBlock
		}
		return body, nil
	}
	if uint32(len(body)) != csize { //nolint:gosec // len bounded by store payload
		return nil, errCorruptBlock
	}

	switch c {
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
		if uint32(n) != size { //nolint:gosec // n <= size
			return nil, errCorruptBlock
		}
		return out, nil
	default: // CompressionZstd
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
		if uint32(len(out)) != size { //nolint:gosec // checked against header
			return nil, errCorruptBlock
		}
		return out, nil
	}
}
