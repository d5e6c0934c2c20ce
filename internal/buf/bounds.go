package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// End returns off+n when the range [off, off+n) fits within limit.
// Negative inputs and overflowing sums are rejected.
func End(off, n, limit int) (int, bool) {
	if off < 0 || n < 0 || limit < 0 {
		return 0, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > limit {
		return 0, false
	}
	return end, true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	end, ok := End(off, n, len(b))
	if !ok {
		return nil, false
	}
	return b[off:end], true
}

// Window returns b[off:off+n] when the range fits both the declared length
// dataLen and the physical length of b. The declared length may be shorter
// or longer than len(b); the tighter of the two wins.
func Window(b []byte, dataLen, off, n int) ([]byte, bool) {
	if _, ok := End(off, n, dataLen); !ok {
		return nil, false
	}
	return Slice(b, off, n)
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
