// Package mmap provides read-only memory-mapped file access.
//
// A mapping gives the record stores zero-copy views into datasets that can be
// far larger than what is worth loading into the heap. Views into Data become
// invalid once the mapping is closed.
package mmap

import (
	"errors"
	"os"
)

// ErrInvalidSize is returned when the file size cannot be mapped.
var ErrInvalidSize = errors.New("mmap: invalid file size")

// AccessPattern hints to the kernel how the mapping will be read.
type AccessPattern int

const (
	// AccessDefault applies no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan.
	AccessSequential
	// AccessRandom expects scattered reads, the typical sort/search pattern.
	AccessRandom
)

// File is a read-only memory-mapped file.
type File struct {
	data []byte
	f    *os.File
}

// Open maps the file at path into memory as read-only.
// An empty file maps to a nil Data slice and is otherwise valid.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size < 0 || size != int64(int(size)) {
		f.Close()
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &File{f: f}, nil
	}

	data, err := osMap(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Data returns the mapped bytes. The slice aliases the file region and is
// only valid until Close.
func (m *File) Data() []byte {
	if m == nil {
		return nil
	}
	return m.data
}

// Advise passes an access-pattern hint to the kernel. Advisory only; an
// unsupported platform reports success.
func (m *File) Advise(pattern AccessPattern) error {
	if m == nil || m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// Close unmaps the memory and closes the underlying file.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil {
		err = osUnmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
