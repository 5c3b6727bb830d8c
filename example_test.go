package idxsort_test

import (
	"fmt"

	"github.com/hupe1980/idxsort"
)

func Example() {
	// The backing records never move; only the index sequence is permuted.
	values := []int{5, 3, 4, 1, 2}
	seq := idxsort.Identity(len(values))

	if err := idxsort.Sort(seq, idxsort.OrderBy(values)); err != nil {
		panic(err)
	}
	fmt.Println("sorted index:", seq)

	pos, err := idxsort.Search(seq, 4, idxsort.KeyBy(values))
	if err != nil {
		panic(err)
	}
	fmt.Println("found 4 at:", pos)

	// A miss reports where the key would belong.
	miss, err := idxsort.Search(seq, 6, idxsort.KeyBy(values))
	if err != nil {
		panic(err)
	}
	p, found := idxsort.DecodeNotFound(miss)
	fmt.Println("found 6:", found, "insertion point:", p)

	// Output:
	// sorted index: [3 4 1 2 0]
	// found 4 at: 2
	// found 6: false insertion point: 5
}

func ExampleTieBreak() {
	values := []string{"b", "a", "b", "a"}
	seq := idxsort.Identity(len(values))

	// Sort is not stable; break ties by position for a deterministic order.
	cmp := idxsort.TieBreak(idxsort.OrderBy(values), idxsort.ByPosition())
	if err := idxsort.Sort(seq, cmp); err != nil {
		panic(err)
	}
	fmt.Println(seq)

	// Output:
	// [1 3 0 2]
}
