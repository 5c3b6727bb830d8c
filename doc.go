// Package idxsort provides an indirect, indexed sort-and-search primitive.
//
// Instead of moving records, idxsort permutes a separate slice of integer
// positions so that, read left to right, the referenced records are
// non-decreasing. The records themselves stay wherever they already live
// (a plain slice, a memory-mapped file, a compressed block store) and are
// never copied. A binary search over the sorted projection then locates
// values, or reports the insertion point when a value is absent.
//
// # Quick Start
//
//	values := []int{5, 3, 4, 1, 2}
//	seq := idxsort.Identity(len(values))
//
//	err := idxsort.Sort(seq, idxsort.OrderBy(values))
//	// seq is now [3 4 1 2 0]; values[seq[i]] reads 1,2,3,4,5
//
//	pos, err := idxsort.Search(seq, 4, idxsort.KeyBy(values))
//	// pos == 2, since values[seq[2]] == 4
//
// # Comparator Capabilities
//
// Ordering is supplied by two function-typed capabilities:
//
//   - PositionComparator compares two index positions by the records they
//     reference. Sort needs one.
//   - KeyComparator compares an external query value against the record one
//     position references. Search needs one, and it must agree with whatever
//     ordering sorted the sequence.
//
// Both return (int, error) so that a failing record dereference aborts the
// operation instead of panicking. A sort aborted by a comparator error leaves
// the sequence partially reordered but still a permutation: the algorithms
// only ever swap or relocate entries, never duplicate or drop them.
//
// # Duplicates and Stability
//
// Sort is NOT stable. Search returns the leftmost matching position when the
// key occurs more than once. Callers that need deterministic ordering of tied
// records compose TieBreak with ByPosition.
//
// # Concurrency
//
// Both operations are pure, synchronous computations. Sorting mutates the
// sequence in place, so callers must serialize all mutation of a given
// sequence. Searches never write and may run concurrently with each other.
//
// # Subpackages
//
//   - store: fixed-width record stores (in-memory, mmap, compressed blocks)
//     plus comparator adapters over their records
//   - subset: roaring-bitmap position subsets for filtered projections
//   - bulk: concurrent sorting of many independent index sequences
//   - resource: worker and IO budgets shared by the bulk path
package idxsort
