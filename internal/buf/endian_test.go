package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 {
		t.Fatalf("U16LE short should be 0")
	}
	if U32LE(short) != 0 || U64LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestPutHelpers(t *testing.T) {
	b := make([]byte, 8)
	if !PutU32LE(b, 0x01020304) {
		t.Fatalf("PutU32LE failed on 8-byte buffer")
	}
	want := []byte{0x04, 0x03, 0x02, 0x01, 0, 0, 0, 0}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d = 0x%x, want 0x%x", i, b[i], want[i])
		}
	}

	if !PutU64LE(b, 123) || b[0] != 0x7B || b[7] != 0 {
		t.Fatalf("PutU64LE(123) produced %x", b)
	}
	if !PutU16LE(b, 0xBEEF) || b[0] != 0xEF || b[1] != 0xBE {
		t.Fatalf("PutU16LE produced %x", b[:2])
	}

	short := []byte{0x11, 0x22, 0x33}
	if PutU32LE(short, 0xFFFFFFFF) || PutU64LE(short, 1) {
		t.Fatalf("short writes should report false")
	}
	if short[0] != 0x11 || short[2] != 0x33 {
		t.Fatalf("short writes must not touch the buffer: %x", short)
	}
}

func TestReverse(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	Reverse(b)
	for i, want := range []byte{5, 4, 3, 2, 1} {
		if b[i] != want {
			t.Fatalf("Reverse byte %d = %d, want %d", i, b[i], want)
		}
	}
	Reverse(nil)
}
