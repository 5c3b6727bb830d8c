package store

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/hupe1980/idxsort"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBlockStore(t *testing.T, values []uint64, opts ...BuilderOption) *Block {
	t.Helper()
	b, err := NewBuilder(8, opts...)
	require.NoError(t, err)

	buf := make([]byte, 8)
	for _, v := range values {
		binary.BigEndian.PutUint64(buf, v)
		require.NoError(t, b.Append(buf))
	}

	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func TestBlockRoundTrip(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(comp.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(31))
			values := make([]uint64, 3000)
			for i := range values {
				values[i] = uint64(rng.Intn(100)) // repetitive, compresses well
			}

			s := buildBlockStore(t, values, WithCompression(comp), WithRecordsPerBlock(256))
			defer s.Close()

			require.Equal(t, len(values), s.Len())
			assert.Equal(t, comp, s.Compression())

			// Scattered access across block boundaries.
			for _, pos := range []int{0, 255, 256, 511, 1000, 2999} {
				rec, err := s.Record(pos)
				require.NoError(t, err)
				assert.Equal(t, values[pos], binary.BigEndian.Uint64(rec), "pos %d", pos)
			}
		})
	}
}

func TestBlockRecordIsStable(t *testing.T) {
	values := make([]uint64, 600)
	for i := range values {
		values[i] = uint64(i)
	}
	s := buildBlockStore(t, values, WithRecordsPerBlock(100))
	defer s.Close()

	// Records from different blocks must stay valid side by side even
	// though fetching the second evicts the first block from the cache.
	a, err := s.Record(10)
	require.NoError(t, err)
	b, err := s.Record(510)
	require.NoError(t, err)

	assert.Equal(t, uint64(10), binary.BigEndian.Uint64(a))
	assert.Equal(t, uint64(510), binary.BigEndian.Uint64(b))
}

func TestBlockSortAndSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	values := make([]uint64, 5000)
	for i := range values {
		values[i] = uint64(rng.Intn(2500))
	}

	s := buildBlockStore(t, values, WithCompression(CompressionZSTD))
	defer s.Close()

	seq := idxsort.Identity(s.Len())
	cmp := Positions(s)
	require.NoError(t, idxsort.Sort(seq, cmp))

	ok, err := idxsort.IsSorted(seq, cmp)
	require.NoError(t, err)
	assert.True(t, ok)

	key := Key(s)
	buf := make([]byte, 8)
	for i := 0; i < len(values); i += 101 {
		binary.BigEndian.PutUint64(buf, values[i])
		pos, err := idxsort.Search(seq, buf, key)
		require.NoError(t, err)
		require.GreaterOrEqual(t, pos, 0)
	}
}

func TestBuilderValidation(t *testing.T) {
	_, err := NewBuilder(0)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	b, err := NewBuilder(4)
	require.NoError(t, err)

	err = b.Append([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrRecordWidthMismatch)
}

func TestBuilderEmpty(t *testing.T) {
	b, err := NewBuilder(8)
	require.NoError(t, err)

	s, err := b.Build()
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 0, s.Len())

	_, err = s.Record(0)
	var oor *idxsort.ErrPositionOutOfRange
	assert.ErrorAs(t, err, &oor)
}

func TestBlockIncompressibleFallsBackToRaw(t *testing.T) {
	rng := rand.New(rand.NewSource(33))
	values := make([]uint64, 500)
	for i := range values {
		values[i] = rng.Uint64() // high entropy
	}

	s := buildBlockStore(t, values, WithCompression(CompressionLZ4), WithRecordsPerBlock(64))
	defer s.Close()

	for _, pos := range []int{0, 63, 64, 499} {
		rec, err := s.Record(pos)
		require.NoError(t, err)
		assert.Equal(t, values[pos], binary.BigEndian.Uint64(rec))
	}
}
