// Package bulk sorts many independent index sequences concurrently.
//
// The core sorter is single-threaded by contract: one writer per sequence.
// Parallelism therefore happens at the sequence level, with a
// resource.Controller bounding how many sorts run at once.
package bulk

import (
	"context"
	"time"

	"github.com/hupe1980/idxsort"
	"github.com/hupe1980/idxsort/resource"
	"github.com/hupe1980/idxsort/store"
	"golang.org/x/sync/errgroup"
)

// Sorter runs sorts over many sequences with bounded concurrency.
type Sorter struct {
	logger            *idxsort.Logger
	controller        *resource.Controller
	parallelThreshold int
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *idxsort.Logger) Option {
	return func(s *Sorter) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithController bounds concurrent sorts and store IO. A nil controller
// means unlimited concurrency across the sequences of one SortAll call.
func WithController(c *resource.Controller) Option {
	return func(s *Sorter) {
		s.controller = c
	}
}

// WithParallelThreshold sets the sequence length below which SortAll runs
// inline on the calling goroutine. When every sequence is shorter than n,
// the sorts finish faster than the worker scheduling they would otherwise
// pay for. Default 0: always fan out.
func WithParallelThreshold(n int) Option {
	return func(s *Sorter) {
		s.parallelThreshold = n
	}
}

// NewSorter creates a Sorter.
func NewSorter(opts ...Option) *Sorter {
	s := &Sorter{
		logger: idxsort.NoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SortAll sorts every sequence in place under cmp, running sequences
// concurrently. The sequences must not overlap, and cmp must be safe for
// concurrent calls; a pure comparator over immutable records is.
//
// The first failure cancels the remaining sequences. A single sort still
// runs to completion once started; cancellation is observed between
// sequences, not inside one.
func (s *Sorter) SortAll(ctx context.Context, seqs [][]int, cmp idxsort.PositionComparator) error {
	start := time.Now()
	logger := s.logger.WithCount(len(seqs))

	if s.runInline(seqs) {
		err := s.sortInline(ctx, logger, seqs, cmp)
		logger.LogSortAll(ctx, len(seqs), time.Since(start), err)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, seq := range seqs {
		seq := seq
		g.Go(func() error {
			if err := s.controller.AcquireWorker(ctx); err != nil {
				return err
			}
			defer s.controller.ReleaseWorker()

			if err := ctx.Err(); err != nil {
				return err
			}

			sortStart := time.Now()
			err := idxsort.Sort(seq, cmp)
			logger.LogSort(ctx, len(seq), time.Since(sortStart), err)
			return err
		})
	}

	err := g.Wait()
	logger.LogSortAll(ctx, len(seqs), time.Since(start), err)
	return err
}

// runInline reports whether every sequence is below the parallel threshold.
func (s *Sorter) runInline(seqs [][]int) bool {
	if s.parallelThreshold <= 0 {
		return false
	}
	for _, seq := range seqs {
		if len(seq) >= s.parallelThreshold {
			return false
		}
	}
	return true
}

// sortInline sorts the sequences one after another on the calling
// goroutine, without touching the worker budget.
func (s *Sorter) sortInline(ctx context.Context, logger *idxsort.Logger, seqs [][]int, cmp idxsort.PositionComparator) error {
	for _, seq := range seqs {
		if err := ctx.Err(); err != nil {
			return err
		}

		sortStart := time.Now()
		err := idxsort.Sort(seq, cmp)
		logger.LogSort(ctx, len(seq), time.Since(sortStart), err)
		if err != nil {
			return err
		}
	}
	return nil
}

// SortStore builds the identity sequence over st and sorts it by the
// store's byte ordering. It is the one-call path from a record store to a
// sorted projection.
func (s *Sorter) SortStore(ctx context.Context, st store.Store) ([]int, error) {
	if err := s.controller.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer s.controller.ReleaseWorker()

	seq := idxsort.Identity(st.Len())

	start := time.Now()
	err := idxsort.Sort(seq, store.Positions(st))
	s.logger.LogSort(ctx, len(seq), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return seq, nil
}

// SearchStore locates key in a projection previously produced by SortStore
// (or any sort under the store's byte ordering). The result follows the
// idxsort.Search contract: leftmost match, or an encoded insertion point.
func (s *Sorter) SearchStore(ctx context.Context, st store.Store, seq []int, key []byte) (int, error) {
	start := time.Now()
	pos, err := idxsort.Search(seq, key, store.Key(st))

	_, found := idxsort.DecodeNotFound(pos)
	s.logger.WithLen(len(seq)).LogSearch(ctx, err == nil && found, time.Since(start), err)
	return pos, err
}
