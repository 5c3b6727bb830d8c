// Package resource provides shared budgets for bulk sorting: a bounded pool
// of sort workers and an optional IO byte-rate limit consulted when record
// stores load data from disk.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxSortWorkers is the maximum number of concurrently running sorts.
	// If 0, defaults to 1.
	MaxSortWorkers int64

	// IOLimitBytesPerSec caps the disk read throughput of store loading.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages the sort-worker and IO budgets.
//
// A nil *Controller is valid and means unlimited: every method is
// nil-receiver safe, so callers thread it through without nil checks.
type Controller struct {
	workerSem *semaphore.Weighted
	ioLimiter *rate.Limiter
	inFlight  atomic.Int64
}

// NewController creates a controller for the given limits.
func NewController(cfg Config) *Controller {
	if cfg.MaxSortWorkers <= 0 {
		cfg.MaxSortWorkers = 1
	}

	c := &Controller{
		workerSem: semaphore.NewWeighted(cfg.MaxSortWorkers),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireWorker reserves a sort-worker slot, blocking until one is free or
// ctx is canceled.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.workerSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireWorker reserves a slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	if !c.workerSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseWorker returns a previously acquired slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.workerSem.Release(1)
}

// InFlight returns the number of currently reserved worker slots.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// WaitIO waits until the IO limit allows reading the specified number of
// bytes. Requests larger than one second's budget are consumed in chunks.
func (c *Controller) WaitIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil || bytes <= 0 {
		return nil
	}

	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
