package codec

import (
	"unicode/utf8"

	"github.com/dao-xyz/bufcodec/internal/buf"
)

// PutUTF8 copies the UTF-8 bytes of text into b starting at offset.
// Bytes outside [offset, offset+len(text)) are left untouched.
func PutUTF8(text string, b []byte, dataLen, offset int) error {
	w, err := window("encode_utf8", b, dataLen, offset, len(text))
	if err != nil {
		return err
	}
	copy(w, text)
	return nil
}

// EncodeUTF8 writes text into b at offset. It panics with a *BoundsError
// unless len(text) <= dataLen-offset.
func EncodeUTF8(text string, b []byte, dataLen, offset int) {
	must(PutUTF8(text, b, dataLen, offset))
}

// DecodeUTF8Strict decodes b[offset:offset+n] as UTF-8. Malformed input
// yields a *UTF8Error; a region past the end of b yields a *BoundsError.
func DecodeUTF8Strict(b []byte, n, offset int) (string, error) {
	region, ok := buf.Slice(b, offset, n)
	if !ok {
		return "", &BoundsError{Op: "decode_utf8", Offset: offset, Width: n, DataLen: n, BufLen: len(b)}
	}
	if err := validateUTF8(region); err != nil {
		return "", err
	}
	return string(region), nil
}

// DecodeUTF8 decodes b[offset:offset+n] as UTF-8. n is the length of the
// region, not of the buffer.
//
// Malformed input is not an error: the description of the first problem is
// returned in place of the text. Use DecodeUTF8Strict to tell the two apart.
// DecodeUTF8 panics with a *BoundsError when the region runs past len(b).
func DecodeUTF8(b []byte, n, offset int) string {
	s, err := DecodeUTF8Strict(b, n, offset)
	if err == nil {
		return s
	}
	if uerr, ok := err.(*UTF8Error); ok {
		return uerr.Error()
	}
	panic(err)
}

// validateUTF8 returns nil for well-formed input, otherwise the position and
// length of the first bad sequence.
func validateUTF8(b []byte) *UTF8Error {
	if utf8.Valid(b) {
		return nil
	}
	i := 0
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return &UTF8Error{ValidUpTo: i, ErrorLen: invalidLen(b[i:])}
		}
		i += size
	}
	return nil
}

// invalidLen measures the bad sequence at the start of b: the number of bytes
// that form no valid prefix, or 0 when b ends inside an otherwise valid
// prefix.
func invalidLen(b []byte) int {
	first := b[0]
	var width int
	switch {
	case first >= 0xC2 && first <= 0xDF:
		width = 2
	case first >= 0xE0 && first <= 0xEF:
		width = 3
	case first >= 0xF0 && first <= 0xF4:
		width = 4
	default:
		return 1
	}

	lo, hi := byte(0x80), byte(0xBF)
	switch first {
	case 0xE0:
		lo = 0xA0
	case 0xED:
		hi = 0x9F
	case 0xF0:
		lo = 0x90
	case 0xF4:
		hi = 0x8F
	}
	if len(b) < 2 {
		return 0
	}
	if b[1] < lo || b[1] > hi {
		return 1
	}
	for k := 2; k < width; k++ {
		if len(b) <= k {
			return 0
		}
		if b[k]&0xC0 != 0x80 {
			return k
		}
	}
	return width
}
