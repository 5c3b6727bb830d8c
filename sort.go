package idxsort

// Identity returns the identity permutation of length n: seq[i] == i.
// It is the usual starting point before the first Sort.
func Identity(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}

// Sort reorders seq in place so that for all i < j, the record referenced by
// seq[i] sorts at or before the record referenced by seq[j] under cmp.
//
// The algorithm is an introsort: quicksort with median-of-three pivot
// selection, a recursion depth bound of 2*ceil(lg(n+1)) that falls back to
// heapsort, and insertion sort below a small cutoff. Average O(n log n) time,
// O(log n) auxiliary space, no allocation proportional to n or to record
// size. It is not stable; see TieBreak.
//
// If cmp returns an error the sort stops and the error propagates unchanged.
// The sequence is then partially reordered but still a permutation of its
// original contents, since entries are only ever swapped or rotated.
func Sort(seq []int, cmp PositionComparator) error {
	if cmp == nil {
		return ErrNilComparator
	}
	n := len(seq)
	if n < 2 {
		return nil
	}
	return quickSort(seq, 0, n, maxDepth(n), cmp)
}

// IsSorted reports whether seq is already ordered under cmp.
func IsSorted(seq []int, cmp PositionComparator) (bool, error) {
	if cmp == nil {
		return false, ErrNilComparator
	}
	for i := len(seq) - 1; i > 0; i-- {
		r, err := cmp(seq[i], seq[i-1])
		if err != nil {
			return false, err
		}
		if r < 0 {
			return false, nil
		}
	}
	return true, nil
}

// insertionCutoff is the range length below which insertion sort beats
// partitioning. 12 matches the classic quicksort implementations.
const insertionCutoff = 12

// maxDepth returns 2*ceil(lg(n+1)), the depth at which quicksort switches
// to heapsort.
func maxDepth(n int) int {
	var depth int
	for i := n; i > 0; i >>= 1 {
		depth++
	}
	return depth * 2
}

func less(seq []int, i, j int, cmp PositionComparator) (bool, error) {
	r, err := cmp(seq[i], seq[j])
	return r < 0, err
}

func quickSort(seq []int, a, b, depth int, cmp PositionComparator) error {
	for b-a > insertionCutoff {
		if depth == 0 {
			return heapSort(seq, a, b, cmp)
		}
		depth--
		p, err := partition(seq, a, b, cmp)
		if err != nil {
			return err
		}
		// Recurse into the smaller half and loop on the larger to keep
		// stack growth at O(log n).
		if p+1-a < b-(p+1) {
			if err := quickSort(seq, a, p+1, depth, cmp); err != nil {
				return err
			}
			a = p + 1
		} else {
			if err := quickSort(seq, p+1, b, depth, cmp); err != nil {
				return err
			}
			b = p + 1
		}
	}
	return insertionSort(seq, a, b, cmp)
}

// partition performs a Hoare partition of seq[a:b] around a median-of-three
// pivot and returns p such that seq[a:p+1] holds entries at most the pivot
// and seq[p+1:b] entries at least the pivot. Requires b-a > 2.
func partition(seq []int, a, b int, cmp PositionComparator) (int, error) {
	if err := medianOfThree(seq, a, int(uint(a+b)>>1), b-1, cmp); err != nil {
		return 0, err
	}
	pivot := seq[a]
	i, j := a-1, b
	for {
		for {
			i++
			r, err := cmp(seq[i], pivot)
			if err != nil {
				return 0, err
			}
			if r >= 0 {
				break
			}
		}
		for {
			j--
			r, err := cmp(seq[j], pivot)
			if err != nil {
				return 0, err
			}
			if r <= 0 {
				break
			}
		}
		if i >= j {
			return j, nil
		}
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// medianOfThree moves the median of seq[m0], seq[m1], seq[m2] into seq[m0].
func medianOfThree(seq []int, m0, m1, m2 int, cmp PositionComparator) error {
	if lt, err := less(seq, m1, m0, cmp); err != nil {
		return err
	} else if lt {
		seq[m1], seq[m0] = seq[m0], seq[m1]
	}
	if lt, err := less(seq, m2, m1, cmp); err != nil {
		return err
	} else if lt {
		seq[m2], seq[m1] = seq[m1], seq[m2]
		if lt, err := less(seq, m1, m0, cmp); err != nil {
			return err
		} else if lt {
			seq[m1], seq[m0] = seq[m0], seq[m1]
		}
	}
	// seq[m0] <= seq[m1] <= seq[m2]; the median sits at m1, swap it to the
	// front where partition expects the pivot.
	seq[m0], seq[m1] = seq[m1], seq[m0]
	return nil
}

func insertionSort(seq []int, a, b int, cmp PositionComparator) error {
	for i := a + 1; i < b; i++ {
		for j := i; j > a; j-- {
			lt, err := less(seq, j, j-1, cmp)
			if err != nil {
				return err
			}
			if !lt {
				break
			}
			seq[j], seq[j-1] = seq[j-1], seq[j]
		}
	}
	return nil
}

// siftDown implements the heap property on seq[lo:hi], rooted at first+root.
func siftDown(seq []int, lo, hi, first int, cmp PositionComparator) error {
	root := lo
	for {
		child := 2*root + 1
		if child >= hi {
			return nil
		}
		if child+1 < hi {
			lt, err := less(seq, first+child, first+child+1, cmp)
			if err != nil {
				return err
			}
			if lt {
				child++
			}
		}
		lt, err := less(seq, first+root, first+child, cmp)
		if err != nil {
			return err
		}
		if !lt {
			return nil
		}
		seq[first+root], seq[first+child] = seq[first+child], seq[first+root]
		root = child
	}
}

func heapSort(seq []int, a, b int, cmp PositionComparator) error {
	first := a
	lo := 0
	hi := b - a

	// Build heap with greatest element at top.
	for i := (hi - 1) / 2; i >= 0; i-- {
		if err := siftDown(seq, i, hi, first, cmp); err != nil {
			return err
		}
	}

	// Pop elements, largest first, into seq[a:b].
	for i := hi - 1; i >= 0; i-- {
		seq[first], seq[first+i] = seq[first+i], seq[first]
		if err := siftDown(seq, lo, i, first, cmp); err != nil {
			return err
		}
	}
	return nil
}
