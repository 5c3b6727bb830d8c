package idxsort

import "cmp"

// PositionComparator compares two index positions by the records they
// reference. It returns a negative value if the record at position i sorts
// before the record at position j, zero if they tie, and a positive value
// otherwise.
//
// The comparator must define a strict weak ordering over the positions
// actually present in the sequence; this is a precondition and is not
// verified. An inconsistent comparator yields an unspecified order, but the
// sequence always remains a valid permutation.
type PositionComparator func(i, j int) (int, error)

// KeyComparator compares an external query value against the record
// referenced by one index position. It returns a negative value if key sorts
// before the record, zero on a match, and a positive value otherwise.
//
// It must agree with whatever ordering was used to sort the sequence;
// keeping the two consistent is the caller's responsibility.
type KeyComparator[Q any] func(key Q, pos int) (int, error)

// OrderBy returns a PositionComparator over a slice of ordered values.
// Positions outside [0, len(values)) fail with *ErrPositionOutOfRange.
func OrderBy[T cmp.Ordered](values []T) PositionComparator {
	return func(i, j int) (int, error) {
		if i < 0 || i >= len(values) {
			return 0, &ErrPositionOutOfRange{Position: i, Length: len(values)}
		}
		if j < 0 || j >= len(values) {
			return 0, &ErrPositionOutOfRange{Position: j, Length: len(values)}
		}
		return cmp.Compare(values[i], values[j]), nil
	}
}

// KeyBy returns a KeyComparator over a slice of ordered values, compatible
// with the ordering produced by OrderBy on the same slice.
func KeyBy[T cmp.Ordered](values []T) KeyComparator[T] {
	return func(key T, pos int) (int, error) {
		if pos < 0 || pos >= len(values) {
			return 0, &ErrPositionOutOfRange{Position: pos, Length: len(values)}
		}
		return cmp.Compare(key, values[pos]), nil
	}
}

// Reverse returns a comparator with the opposite ordering.
func Reverse(c PositionComparator) PositionComparator {
	return func(i, j int) (int, error) {
		r, err := c(j, i)
		return r, err
	}
}

// TieBreak returns a comparator that orders by primary and falls back to
// secondary when the primary ties. Sort is not stable; composing TieBreak
// with ByPosition is how callers obtain a deterministic order for tied
// records.
func TieBreak(primary, secondary PositionComparator) PositionComparator {
	return func(i, j int) (int, error) {
		r, err := primary(i, j)
		if err != nil || r != 0 {
			return r, err
		}
		return secondary(i, j)
	}
}

// ByPosition returns a comparator over the positions themselves. It is the
// usual final discriminant for TieBreak.
func ByPosition() PositionComparator {
	return func(i, j int) (int, error) {
		return cmp.Compare(i, j), nil
	}
}
