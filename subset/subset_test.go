package subset

import (
	"errors"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/idxsort"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositions(t *testing.T) {
	bm := roaring.BitmapOf(4, 1, 7)
	assert.Equal(t, []int{1, 4, 7}, Positions(bm))

	assert.Nil(t, Positions(nil))
	assert.Empty(t, Positions(roaring.New()))
}

func TestOf(t *testing.T) {
	bm := Of([]int{3, 0, 2, -1})
	assert.EqualValues(t, 3, bm.GetCardinality())
	assert.True(t, bm.Contains(0))
	assert.True(t, bm.Contains(2))
	assert.True(t, bm.Contains(3))
}

func TestRestrictKeepsSortedOrder(t *testing.T) {
	values := []int{5, 3, 4, 1, 2}
	seq := idxsort.Identity(len(values))
	require.NoError(t, idxsort.Sort(seq, idxsort.OrderBy(values)))
	// seq == [3 4 1 2 0]

	// Keep only even values: positions 4 (2) and 2 (4).
	keep := roaring.BitmapOf(2, 4)
	got := Restrict(seq, keep)
	assert.Equal(t, []int{4, 2}, got)

	// Still sorted under the same comparator.
	ok, err := idxsort.IsSorted(got, idxsort.OrderBy(values))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRestrictEmpty(t *testing.T) {
	assert.Nil(t, Restrict([]int{1, 2}, nil))
	assert.Nil(t, Restrict([]int{1, 2}, roaring.New()))
	assert.Empty(t, Restrict(nil, roaring.BitmapOf(1)))
}

func TestMatching(t *testing.T) {
	values := []int{5, 3, 4, 1, 2}

	bm, err := Matching(len(values), func(pos int) (bool, error) {
		return values[pos] >= 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, Positions(bm))

	// Sort just the subset.
	seq := Positions(bm)
	require.NoError(t, idxsort.Sort(seq, idxsort.OrderBy(values)))
	assert.Equal(t, []int{1, 2, 0}, seq)
}

func TestMatchingErrorPropagates(t *testing.T) {
	boom := errors.New("predicate failed")
	_, err := Matching(3, func(pos int) (bool, error) {
		if pos == 2 {
			return false, boom
		}
		return true, nil
	})
	assert.ErrorIs(t, err, boom)
}
