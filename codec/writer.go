package codec

import (
	"math"
	"math/big"

	"github.com/dao-xyz/bufcodec/internal/buf"
)

// Writer appends values front to back into a fixed, caller-owned buffer.
// It never grows the buffer: a value that does not fit is rejected with a
// *BoundsError and the position stays where it was.
type Writer struct {
	buf []byte
	off int

	// counting writers only measure; scratch absorbs the bytes.
	counting bool
	scratch  []byte
}

// NewWriter returns a Writer positioned at the start of b.
func NewWriter(b []byte) *Writer {
	return &Writer{buf: b}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.off }

// Remaining returns the free space left in the buffer.
func (w *Writer) Remaining() int {
	if w.counting {
		return math.MaxInt - w.off
	}
	return len(w.buf) - w.off
}

// Written returns the written prefix of the buffer. It aliases the caller's
// buffer. A writer used by Size has no buffer and returns nil.
func (w *Writer) Written() []byte {
	if w.counting {
		return nil
	}
	return w.buf[:w.off]
}

// Reset moves the position back to the start without clearing the bytes.
func (w *Writer) Reset() { w.off = 0 }

func (w *Writer) reserve(op string, n int) ([]byte, error) {
	if w.counting {
		end, ok := buf.AddOverflowSafe(w.off, n)
		if !ok || n < 0 {
			return nil, ErrValueOverflow
		}
		if cap(w.scratch) < n {
			w.scratch = make([]byte, n)
		}
		w.off = end
		return w.scratch[:n], nil
	}
	dst, err := window(op, w.buf, len(w.buf), w.off, n)
	if err != nil {
		return nil, err
	}
	w.off += n
	return dst, nil
}

// Bool writes b as a single byte, 1 or 0.
func (w *Writer) Bool(b bool) error {
	var v uint8
	if b {
		v = 1
	}
	return w.U8(v)
}

// U8 writes a single byte.
func (w *Writer) U8(v uint8) error {
	dst, err := w.reserve("write_u8", U8Size)
	if err != nil {
		return err
	}
	dst[0] = v
	return nil
}

// U16 writes v in little-endian order.
func (w *Writer) U16(v uint16) error {
	dst, err := w.reserve("write_u16", U16Size)
	if err != nil {
		return err
	}
	buf.PutU16LE(dst, v)
	return nil
}

// U32 writes v in little-endian order.
func (w *Writer) U32(v uint32) error {
	dst, err := w.reserve("write_u32", U32Size)
	if err != nil {
		return err
	}
	buf.PutU32LE(dst, v)
	return nil
}

// U64 writes v in little-endian order.
func (w *Writer) U64(v uint64) error {
	dst, err := w.reserve("write_u64", U64Size)
	if err != nil {
		return err
	}
	buf.PutU64LE(dst, v)
	return nil
}

// U128 writes v as a 16-byte little-endian unsigned integer.
func (w *Writer) U128(v *big.Int) error { return w.wide("write_u128", v, U128Size) }

// U256 writes v as a 32-byte little-endian unsigned integer.
func (w *Writer) U256(v *big.Int) error { return w.wide("write_u256", v, U256Size) }

// U512 writes v as a 64-byte little-endian unsigned integer.
func (w *Writer) U512(v *big.Int) error { return w.wide("write_u512", v, U512Size) }

func (w *Writer) wide(op string, v *big.Int, width int) error {
	if v == nil {
		return ErrNilValue
	}
	if v.Sign() < 0 {
		return ErrNegative
	}
	if v.BitLen() > width*8 {
		return ErrValueOverflow
	}
	dst, err := w.reserve(op, width)
	if err != nil {
		return err
	}
	v.FillBytes(dst)
	buf.Reverse(dst)
	return nil
}

// String writes the u32 byte length of s followed by its UTF-8 bytes.
func (w *Writer) String(s string) error {
	dst, err := w.prefixed("write_string", len(s))
	if err != nil {
		return err
	}
	copy(dst, s)
	return nil
}

// Bytes writes the u32 length of p followed by p.
func (w *Writer) Bytes(p []byte) error {
	dst, err := w.prefixed("write_bytes", len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// prefixed reserves room for a u32 length and n body bytes in one step, so a
// body that does not fit leaves no dangling length behind.
func (w *Writer) prefixed(op string, n int) ([]byte, error) {
	if uint64(n) > math.MaxUint32 {
		return nil, ErrValueOverflow
	}
	total, ok := buf.AddOverflowSafe(U32Size, n)
	if !ok {
		return nil, ErrValueOverflow
	}
	dst, err := w.reserve(op, total)
	if err != nil {
		return nil, err
	}
	buf.PutU32LE(dst, uint32(n))
	return dst[U32Size:], nil
}

// Array writes n as a u32 count, then calls fn once per element in order.
// If fn fails the position returns to where the count was written.
func (w *Writer) Array(n int, fn func(i int) error) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return ErrValueOverflow
	}
	start := w.off
	if err := w.U32(uint32(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := fn(i); err != nil {
			w.off = start
			return err
		}
	}
	return nil
}

// Option writes a u8 tag, 1 when present and 0 otherwise, and calls fn to
// write the value only when present.
func (w *Writer) Option(present bool, fn func() error) error {
	if !present {
		return w.U8(0)
	}
	start := w.off
	if err := w.U8(1); err != nil {
		return err
	}
	if err := fn(); err != nil {
		w.off = start
		return err
	}
	return nil
}
