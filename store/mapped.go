package store

import (
	"context"
	"os"

	"github.com/hupe1980/idxsort"
	"github.com/hupe1980/idxsort/internal/mmap"
	"github.com/hupe1980/idxsort/resource"
)

// Mapped is a Store over a memory-mapped file of fixed-width records.
// Record returns zero-copy views into the mapping; they become invalid
// after Close.
type Mapped struct {
	file  *mmap.File
	width int
	n     int
}

// MappedOption configures OpenMapped.
type MappedOption func(*mappedOptions)

type mappedOptions struct {
	advice     mmap.AccessPattern
	controller *resource.Controller
}

// WithSequentialAccess hints that records will be scanned front to back.
// The default hint is random access, which matches sorting and searching.
func WithSequentialAccess() MappedOption {
	return func(o *mappedOptions) {
		o.advice = mmap.AccessSequential
	}
}

// WithController charges the file size against the controller's IO budget
// before the mapping is handed out.
func WithController(c *resource.Controller) MappedOption {
	return func(o *mappedOptions) {
		o.controller = c
	}
}

// OpenMapped maps the file at path as a record store. The file length must
// be a multiple of width.
func OpenMapped(ctx context.Context, path string, width int, opts ...MappedOption) (*Mapped, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}

	o := mappedOptions{advice: mmap.AccessRandom}
	for _, opt := range opts {
		opt(&o)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size()%int64(width) != 0 {
		return nil, ErrMisalignedData
	}

	// The kernel will fault the whole file in over time; charge it upfront
	// so bulk loading respects the configured read throughput.
	if err := o.controller.WaitIO(ctx, int(fi.Size())); err != nil {
		return nil, err
	}

	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	if err := f.Advise(o.advice); err != nil {
		f.Close()
		return nil, err
	}

	return &Mapped{
		file:  f,
		width: width,
		n:     len(f.Data()) / width,
	}, nil
}

// Len returns the number of records.
func (m *Mapped) Len() int { return m.n }

// RecordWidth returns the fixed record width.
func (m *Mapped) RecordWidth() int { return m.width }

// Record returns a view of the record at pos.
func (m *Mapped) Record(pos int) ([]byte, error) {
	if pos < 0 || pos >= m.n {
		return nil, &idxsort.ErrPositionOutOfRange{Position: pos, Length: m.n}
	}
	off := pos * m.width
	data := m.file.Data()
	return data[off : off+m.width : off+m.width], nil
}

// Close unmaps the file. Outstanding Record views become invalid.
func (m *Mapped) Close() error {
	m.n = 0
	return m.file.Close()
}
