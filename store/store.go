// Package store supplies the backing datasets an index sequence points into.
//
// A Store holds fixed-width records addressed by position. The sort and
// search algorithms never see the store directly; they see comparators built
// over it by Positions and Key. Records must stay immutable for the full
// duration of any sort or search against them, which every implementation
// here guarantees by being read-only after construction.
package store

import (
	"bytes"
	"io"

	"github.com/hupe1980/idxsort"
)

// Store is a read-only, positionally addressed record collection.
//
// Implementations are safe for concurrent Record calls. The returned slice
// is read-only and remains valid until Close is called.
type Store interface {
	// Len returns the number of records.
	Len() int

	// RecordWidth returns the fixed byte width of every record.
	RecordWidth() int

	// Record returns the record at pos, or *idxsort.ErrPositionOutOfRange
	// if pos is outside [0, Len()).
	Record(pos int) ([]byte, error)

	io.Closer
}

// Positions returns a PositionComparator ordering records lexicographically
// by their raw bytes.
func Positions(s Store) idxsort.PositionComparator {
	return PositionsFunc(s, bytes.Compare)
}

// PositionsFunc returns a PositionComparator using a caller-supplied record
// ordering. cmp receives the raw record bytes of the two positions.
func PositionsFunc(s Store, cmp func(a, b []byte) int) idxsort.PositionComparator {
	return func(i, j int) (int, error) {
		ra, err := s.Record(i)
		if err != nil {
			return 0, err
		}
		rb, err := s.Record(j)
		if err != nil {
			return 0, err
		}
		return cmp(ra, rb), nil
	}
}

// Key returns a KeyComparator matching the ordering of Positions: the query
// is raw record bytes compared lexicographically.
func Key(s Store) idxsort.KeyComparator[[]byte] {
	return KeyFunc(s, bytes.Compare)
}

// KeyFunc returns a KeyComparator using a caller-supplied ordering. It must
// agree with the PositionsFunc ordering used to sort.
func KeyFunc(s Store, cmp func(key, record []byte) int) idxsort.KeyComparator[[]byte] {
	return func(key []byte, pos int) (int, error) {
		r, err := s.Record(pos)
		if err != nil {
			return 0, err
		}
		return cmp(key, r), nil
	}
}
