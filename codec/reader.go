package codec

import (
	"fmt"
	"math/big"

	"github.com/dao-xyz/bufcodec/internal/buf"
)

// Reader decodes values front to back from a buffer written by Writer.
// A read that would run past the end fails with ErrEndOfBuffer and leaves
// the position unchanged.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	src, ok := buf.Slice(r.buf, r.off, n)
	if !ok {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrEndOfBuffer, n, r.off, r.Remaining())
	}
	r.off += n
	return src, nil
}

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	src, err := r.take(U8Size)
	if err != nil {
		return 0, err
	}
	return src[0], nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	src, err := r.take(U16Size)
	if err != nil {
		return 0, err
	}
	return buf.U16LE(src), nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	src, err := r.take(U32Size)
	if err != nil {
		return 0, err
	}
	return buf.U32LE(src), nil
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	src, err := r.take(U64Size)
	if err != nil {
		return 0, err
	}
	return buf.U64LE(src), nil
}

// U128 reads a 16-byte little-endian unsigned integer.
func (r *Reader) U128() (*big.Int, error) { return r.wide(U128Size) }

// U256 reads a 32-byte little-endian unsigned integer.
func (r *Reader) U256() (*big.Int, error) { return r.wide(U256Size) }

// U512 reads a 64-byte little-endian unsigned integer.
func (r *Reader) U512() (*big.Int, error) { return r.wide(U512Size) }

func (r *Reader) wide(width int) (*big.Int, error) {
	src, err := r.take(width)
	if err != nil {
		return nil, err
	}
	be := make([]byte, width)
	copy(be, src)
	buf.Reverse(be)
	return new(big.Int).SetBytes(be), nil
}

// String reads a u32 length followed by that many bytes of UTF-8.
func (r *Reader) String() (string, error) {
	start := r.off
	body, err := r.prefixed()
	if err != nil {
		return "", err
	}
	if uerr := validateUTF8(body); uerr != nil {
		r.off = start
		return "", fmt.Errorf("codec: error decoding utf-8 string: %w", uerr)
	}
	return string(body), nil
}

// Bytes reads a u32 length followed by that many raw bytes. The result is a
// copy and does not alias the buffer.
func (r *Reader) Bytes() ([]byte, error) {
	body, err := r.prefixed()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (r *Reader) prefixed() ([]byte, error) {
	start := r.off
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	body, err := r.take(int(n))
	if err != nil {
		r.off = start
		return nil, err
	}
	return body, nil
}

// Array reads a u32 count, then calls fn once per element in order. It
// returns the count. If fn fails the position returns to the count.
func (r *Reader) Array(fn func(i int) error) (int, error) {
	start := r.off
	n, err := r.U32()
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(n); i++ {
		if err := fn(i); err != nil {
			r.off = start
			return 0, err
		}
	}
	return int(n), nil
}

// Option reads a u8 tag and calls fn when it marks a present value. Any
// non-zero tag counts as present.
func (r *Reader) Option(fn func() error) (bool, error) {
	start := r.off
	tag, err := r.U8()
	if err != nil {
		return false, err
	}
	if tag == 0 {
		return false, nil
	}
	if err := fn(); err != nil {
		r.off = start
		return false, err
	}
	return true, nil
}
