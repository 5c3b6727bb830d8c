package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/idxsort"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression algorithm.
type Compression uint8

const (
	// CompressionNone stores blocks raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD Compression = 2
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return "Unknown"
	}
}

var (
	// ErrRecordWidthMismatch is returned when an appended record does not
	// match the builder's record width.
	ErrRecordWidthMismatch = errors.New("store: record width mismatch")
	// ErrCorruptBlock is returned when a block's header disagrees with its
	// payload.
	ErrCorruptBlock = errors.New("store: corrupt block")
)

// Block header layout: [UncompressedSize uint32][CompressedSize uint32][payload].
// CompressedSize 0 means the payload is stored raw.
const blockHeaderSize = 8

// ZSTD codec pools. EncodeAll/DecodeAll are cheap on a reused codec and the
// pool keeps the window buffers off the steady-state allocation path.
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

// compressBlock frames data as a block, compressing it if that pays off.
// Blocks that compress to more than 90% of their raw size are stored raw.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte

	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		// CompressionNone, stored raw below.
	}

	if len(compressed) == 0 || len(compressed) > len(data)*9/10 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

// decompressBlock reverses compressBlock into dst, which must have capacity
// for the uncompressed size.
func decompressBlock(block []byte, c Compression, dst []byte) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, ErrCorruptBlock
	}
	rawLen := int(binary.LittleEndian.Uint32(block[0:]))
	compLen := int(binary.LittleEndian.Uint32(block[4:]))
	payload := block[blockHeaderSize:]

	if compLen == 0 {
		if len(payload) != rawLen {
			return nil, ErrCorruptBlock
		}
		return append(dst[:0], payload...), nil
	}
	if len(payload) != compLen {
		return nil, ErrCorruptBlock
	}

	switch c {
	case CompressionLZ4:
		dst = dst[:cap(dst)]
		if len(dst) < rawLen {
			dst = make([]byte, rawLen)
		}
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, ErrCorruptBlock
		}
		return dst[:n], nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, dst[:0])
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, err
		}
		if len(out) != rawLen {
			return nil, ErrCorruptBlock
		}
		return out, nil
	default:
		return nil, fmt.Errorf("store: compressed payload with compression %s", c)
	}
}

// Block is a Store holding records in compressed blocks. It trades a
// per-access decompression cost for a much smaller resident footprint,
// which is what makes 10^7-record datasets practical to keep around.
//
// Record returns a copy of the record bytes, so views stay valid regardless
// of which block is decompressed next. Safe for concurrent use.
type Block struct {
	width    int
	perBlock int
	n        int
	comp     Compression
	blocks   [][]byte

	mu       sync.Mutex
	cacheIdx int
	cache    []byte
}

// Len returns the number of records.
func (b *Block) Len() int { return b.n }

// RecordWidth returns the fixed record width.
func (b *Block) RecordWidth() int { return b.width }

// Compression returns the block compression in use.
func (b *Block) Compression() Compression { return b.comp }

// Record returns a copy of the record at pos.
func (b *Block) Record(pos int) ([]byte, error) {
	if pos < 0 || pos >= b.n {
		return nil, &idxsort.ErrPositionOutOfRange{Position: pos, Length: b.n}
	}
	blockIdx := pos / b.perBlock
	recIdx := pos % b.perBlock

	b.mu.Lock()
	if blockIdx != b.cacheIdx {
		// The cache buffer is reused as the decompression target, so it no
		// longer holds the previous block once decompression starts.
		b.cacheIdx = -1
		raw, err := decompressBlock(b.blocks[blockIdx], b.comp, b.cache)
		if err != nil {
			b.mu.Unlock()
			return nil, err
		}
		b.cache = raw
		b.cacheIdx = blockIdx
	}
	off := recIdx * b.width
	out := make([]byte, b.width)
	copy(out, b.cache[off:off+b.width])
	b.mu.Unlock()

	return out, nil
}

// Close drops all blocks.
func (b *Block) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocks = nil
	b.cache = nil
	b.cacheIdx = -1
	b.n = 0
	return nil
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCompression selects the block compression. Default is LZ4.
func WithCompression(c Compression) BuilderOption {
	return func(b *Builder) {
		b.comp = c
	}
}

// WithRecordsPerBlock sets how many records share one compressed block.
// Larger blocks compress better but cost more per cache miss. Default 1024.
func WithRecordsPerBlock(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.perBlock = n
		}
	}
}

// Builder accumulates fixed-width records into a Block store.
type Builder struct {
	width    int
	perBlock int
	comp     Compression

	buf    []byte
	blocks [][]byte
	n      int
}

// NewBuilder creates a Builder for records of the given width.
func NewBuilder(width int, opts ...BuilderOption) (*Builder, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	b := &Builder{
		width:    width,
		perBlock: 1024,
		comp:     CompressionLZ4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Append adds one record. The record is copied.
func (b *Builder) Append(record []byte) error {
	if len(record) != b.width {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrRecordWidthMismatch, len(record), b.width)
	}
	b.buf = append(b.buf, record...)
	b.n++
	if b.n%b.perBlock == 0 {
		return b.flush()
	}
	return nil
}

func (b *Builder) flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	block, err := compressBlock(b.buf, b.comp)
	if err != nil {
		return err
	}
	b.blocks = append(b.blocks, block)
	b.buf = b.buf[:0]
	return nil
}

// Build flushes any partial block and returns the finished store.
// The Builder must not be used afterwards.
func (b *Builder) Build() (*Block, error) {
	if err := b.flush(); err != nil {
		return nil, err
	}
	blk := &Block{
		width:    b.width,
		perBlock: b.perBlock,
		n:        b.n,
		comp:     b.comp,
		blocks:   b.blocks,
		cacheIdx: -1,
	}
	b.blocks = nil
	b.buf = nil
	return blk, nil
}
