package idxsort

import (
	"errors"
	"fmt"
)

var (
	// ErrNilComparator is returned when a nil comparator is passed to Sort or Search.
	ErrNilComparator = errors.New("idxsort: nil comparator")
)

// ErrPositionOutOfRange indicates that an index sequence entry dereferences
// outside the valid record range of the backing dataset. It is a caller
// defect: the sequence referenced a position the dataset does not hold.
//
// Comparators constructed by this module (OrderBy, KeyBy, the store adapters)
// fail fast with this error instead of panicking.
type ErrPositionOutOfRange struct {
	Position int // offending position
	Length   int // number of records in the backing dataset
}

func (e *ErrPositionOutOfRange) Error() string {
	return fmt.Sprintf("idxsort: position %d out of range [0, %d)", e.Position, e.Length)
}
