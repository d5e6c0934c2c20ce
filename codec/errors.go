package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds indicates a range fell outside the declared or physical buffer length.
	ErrOutOfBounds = errors.New("codec: out of bounds")
	// ErrInvalidUTF8 indicates bytes that are not well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("codec: invalid utf-8")
	// ErrEndOfBuffer indicates a Reader ran past the end of its buffer.
	ErrEndOfBuffer = errors.New("codec: reached the end of buffer when deserializing")
	// ErrValueOverflow indicates a value does not fit its fixed width.
	ErrValueOverflow = errors.New("codec: value exceeds width")
	// ErrNegative indicates a negative value was given for an unsigned field.
	ErrNegative = errors.New("codec: negative value for unsigned field")
	// ErrNilValue indicates a nil *big.Int was given for a wide integer.
	ErrNilValue = errors.New("codec: nil value")
	// ErrUnsupported indicates a Go type with no Borsh encoding.
	ErrUnsupported = errors.New("codec: unsupported type")
	// ErrUnknownVariant indicates an enum index with no registered variant.
	ErrUnknownVariant = errors.New("codec: unknown variant")
	// ErrTrailingBytes indicates input left over after Unmarshal.
	ErrTrailingBytes = errors.New("codec: unexpected bytes after deserialized data")
)

// BoundsError describes a range that does not fit a buffer.
type BoundsError struct {
	Op      string // operation name, e.g. "serialize_u64"
	Offset  int    // requested start
	Width   int    // requested byte count
	DataLen int    // declared logical length
	BufLen  int    // physical slice length
}

func (e *BoundsError) Error() string {
	op := e.Op
	if op == "" {
		op = "range"
	}
	return fmt.Sprintf("codec: %s: offset %d + width %d exceeds bounds (data_len=%d, buf_len=%d)",
		op, e.Offset, e.Width, e.DataLen, e.BufLen)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// UTF8Error reports where a byte sequence stopped being valid UTF-8.
type UTF8Error struct {
	// ValidUpTo is the length of the longest valid prefix.
	ValidUpTo int
	// ErrorLen is the length of the invalid sequence that follows, or 0 when
	// the input ended in the middle of a multi-byte sequence.
	ErrorLen int
}

func (e *UTF8Error) Error() string {
	if e.ErrorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
}

// Incomplete reports whether the input was truncated rather than malformed.
func (e *UTF8Error) Incomplete() bool { return e.ErrorLen == 0 }

// Is lets errors.Is match ErrInvalidUTF8.
func (e *UTF8Error) Is(target error) bool { return target == ErrInvalidUTF8 }

// FieldError records which struct field, or element, a Marshal or Unmarshal
// failure happened in. Path is dotted, with [i] for elements.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("codec: field %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// atField prefixes name to the path of err.
func atField(name string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		if strings.HasPrefix(fe.Path, "[") {
			fe.Path = name + fe.Path
		} else {
			fe.Path = name + "." + fe.Path
		}
		return fe
	}
	return &FieldError{Path: name, Err: err}
}
