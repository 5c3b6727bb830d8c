// Package subset builds filtered index sequences from roaring bitmaps.
//
// A bitmap names a set of record positions. Turning it into an index
// sequence and sorting that gives a sorted projection over just the matching
// records, without touching the rest of the dataset.
package subset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Positions returns the bitmap's positions in ascending order, ready to be
// sorted as an index sequence.
func Positions(bm *roaring.Bitmap) []int {
	if bm == nil {
		return nil
	}
	seq := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		seq = append(seq, int(it.Next()))
	}
	return seq
}

// Of returns the set of positions an index sequence covers. Negative
// positions are a caller defect and are skipped.
func Of(seq []int) *roaring.Bitmap {
	bm := roaring.New()
	for _, pos := range seq {
		if pos >= 0 {
			bm.Add(uint32(pos))
		}
	}
	return bm
}

// Restrict returns the subsequence of seq whose positions are in bm, order
// preserved. Restricting an already-sorted sequence yields a sorted
// projection over the subset without re-sorting.
func Restrict(seq []int, bm *roaring.Bitmap) []int {
	if bm == nil || bm.IsEmpty() {
		return nil
	}
	out := make([]int, 0, min(len(seq), int(bm.GetCardinality())))
	for _, pos := range seq {
		if pos >= 0 && bm.Contains(uint32(pos)) {
			out = append(out, pos)
		}
	}
	return out
}

// Matching scans positions [0, n) with keep and collects the matches.
// A keep error aborts the scan and propagates unchanged.
func Matching(n int, keep func(pos int) (bool, error)) (*roaring.Bitmap, error) {
	bm := roaring.New()
	for pos := 0; pos < n; pos++ {
		ok, err := keep(pos)
		if err != nil {
			return nil, err
		}
		if ok {
			bm.Add(uint32(pos))
		}
	}
	return bm, nil
}
