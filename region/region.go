// Package region provides file-backed byte buffers for the codec.
//
// A Region maps a file into memory so that codec functions can read and
// write it in place. On Unix the mapping is shared, so writes reach the file
// once Sync or Close runs. Elsewhere the file is read into memory and written
// back on Sync.
package region

import (
	"errors"
	"fmt"
	"os"
)

// ErrClosed indicates use of a Region after Close.
var ErrClosed = errors.New("region: closed")

// Options controls how a file is opened.
type Options struct {
	// Writable maps the file read-write. Read-only regions must not be
	// modified through Bytes.
	Writable bool
}

// Region is a caller-owned memory region backed by a file.
type Region struct {
	path     string
	data     []byte
	writable bool
	m        mapping
	closed   bool
}

// mapping is the platform half of a Region.
type mapping interface {
	flush(data []byte) error
	release(data []byte) error
}

// Open maps the file at path.
func Open(path string, opts Options) (*Region, error) {
	data, m, err := mapFile(path, opts.Writable)
	if err != nil {
		return nil, fmt.Errorf("region: open %s: %w", path, err)
	}
	return &Region{path: path, data: data, writable: opts.Writable, m: m}, nil
}

// Create makes a zero-filled file of size bytes at path, replacing any
// existing file.
func Create(path string, size int) error {
	if size < 0 {
		return fmt.Errorf("region: negative size %d", size)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("region: create %s: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return fmt.Errorf("region: size %s: %w", path, err)
	}
	return f.Close()
}

// Path returns the backing file path.
func (r *Region) Path() string { return r.path }

// Bytes returns the mapped memory. The slice is invalid after Close.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the region size in bytes.
func (r *Region) Len() int { return len(r.data) }

// Writable reports whether the region was opened read-write.
func (r *Region) Writable() bool { return r.writable }

// Sync flushes modified pages to the backing file. It is a no-op for
// read-only regions.
func (r *Region) Sync() error {
	if r.closed {
		return ErrClosed
	}
	if !r.writable || len(r.data) == 0 {
		return nil
	}
	return r.m.flush(r.data)
}

// Close syncs a writable region and releases the mapping. Calling Close more
// than once is a no-op.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	var syncErr error
	if r.writable && len(r.data) > 0 {
		syncErr = r.m.flush(r.data)
	}
	relErr := r.m.release(r.data)
	r.closed = true
	r.data = nil
	return errors.Join(syncErr, relErr)
}
