package store

import (
	"encoding/binary"
	"testing"

	"github.com/hupe1980/idxsort"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeRecords packs uint64 values as big-endian fixed-width records, so
// bytes.Compare agrees with numeric order.
func encodeRecords(values []uint64) []byte {
	slab := make([]byte, 8*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint64(slab[i*8:], v)
	}
	return slab
}

func TestNewMemory(t *testing.T) {
	slab := encodeRecords([]uint64{5, 3, 4})

	s, err := NewMemory(slab, 8)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 8, s.RecordWidth())

	rec, err := s.Record(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), binary.BigEndian.Uint64(rec))
}

func TestNewMemoryValidation(t *testing.T) {
	_, err := NewMemory([]byte{1, 2, 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = NewMemory([]byte{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrMisalignedData)
}

func TestMemoryRecordBounds(t *testing.T) {
	s, err := NewMemory(encodeRecords([]uint64{1, 2}), 8)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Record(-1)
	var oor *idxsort.ErrPositionOutOfRange
	require.ErrorAs(t, err, &oor)

	_, err = s.Record(2)
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 2, oor.Position)
	assert.Equal(t, 2, oor.Length)
}

func TestMemorySortAndSearch(t *testing.T) {
	values := []uint64{5, 3, 4, 1, 2}
	s, err := NewMemory(encodeRecords(values), 8)
	require.NoError(t, err)
	defer s.Close()

	seq := idxsort.Identity(s.Len())
	require.NoError(t, idxsort.Sort(seq, Positions(s)))
	assert.Equal(t, []int{3, 4, 1, 2, 0}, seq)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, 4)
	pos, err := idxsort.Search(seq, key, Key(s))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
}
