package idxsort

// Search locates key in an index sequence previously sorted by an ordering
// compatible with cmp. It is an iterative binary search: O(log n)
// comparisons, O(1) auxiliary space, indirection through seq at every step.
//
// If a matching position exists, Search returns the leftmost one; ties among
// duplicate keys therefore resolve deterministically. If no position matches,
// Search returns EncodeNotFound(p) where p is the insertion point, the
// position at which key would have to be spliced in to keep the sequence
// sorted. Decode with DecodeNotFound.
//
// The sequence must already be sorted consistently with cmp; this is not
// verified. Violating it yields an unspecified (but in-range) result.
func Search[Q any](seq []int, key Q, cmp KeyComparator[Q]) (int, error) {
	if cmp == nil {
		return 0, ErrNilComparator
	}
	lo, hi := 0, len(seq)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1) // avoids overflow on huge sequences
		r, err := cmp(key, seq[mid])
		if err != nil {
			return 0, err
		}
		if r > 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is now the leftmost position whose record does not sort before key.
	if lo < len(seq) {
		r, err := cmp(key, seq[lo])
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return lo, nil
		}
	}
	return EncodeNotFound(lo), nil
}

// EncodeNotFound encodes insertion point p as the negative value -(p)-1.
// The encoding is always negative, so a non-negative Search result is a
// match and a negative one is a miss carrying its insertion point.
func EncodeNotFound(p int) int {
	return -p - 1
}

// DecodeNotFound is the exact inverse of EncodeNotFound. For a non-negative
// Search result it returns (result, true); for a negative one it returns the
// decoded insertion point and false.
func DecodeNotFound(result int) (pos int, found bool) {
	if result >= 0 {
		return result, true
	}
	return -result - 1, false
}
