package store

import (
	"errors"

	"github.com/hupe1980/idxsort"
)

var (
	// ErrInvalidWidth is returned for a non-positive record width.
	ErrInvalidWidth = errors.New("store: record width must be positive")
	// ErrMisalignedData is returned when the data length is not a multiple
	// of the record width.
	ErrMisalignedData = errors.New("store: data length is not a multiple of record width")
)

// Memory is a Store over an in-memory byte slab of fixed-width records.
// Record returns zero-copy views into the slab.
type Memory struct {
	slab  []byte
	width int
	n     int
}

// NewMemory creates a Memory store over slab. The slab is NOT copied; the
// caller must not mutate it while sorts or searches reference it.
func NewMemory(slab []byte, width int) (*Memory, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	if len(slab)%width != 0 {
		return nil, ErrMisalignedData
	}
	return &Memory{
		slab:  slab,
		width: width,
		n:     len(slab) / width,
	}, nil
}

// Len returns the number of records.
func (m *Memory) Len() int { return m.n }

// RecordWidth returns the fixed record width.
func (m *Memory) RecordWidth() int { return m.width }

// Record returns a view of the record at pos.
func (m *Memory) Record(pos int) ([]byte, error) {
	if pos < 0 || pos >= m.n {
		return nil, &idxsort.ErrPositionOutOfRange{Position: pos, Length: m.n}
	}
	off := pos * m.width
	return m.slab[off : off+m.width : off+m.width], nil
}

// Close releases the slab reference.
func (m *Memory) Close() error {
	m.slab = nil
	m.n = 0
	return nil
}
