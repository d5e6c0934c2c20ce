package textenc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		in      []byte
		want    string
	}{
		{"utf-8 passthrough", "utf-8", []byte("héllo"), "héllo"},
		{"default is utf-8", "", []byte("abc"), "abc"},
		{"windows-1252", "windows-1252", []byte{'c', 'a', 'f', 0xE9, ' ', 0x80}, "café €"},
		{"alias cp1252", "CP1252", []byte{0x93, 'q', 0x94}, "“q”"},
		{"latin1", "latin1", []byte{0xFC, 'b', 'e', 'r'}, "über"},
		{"utf-16le", "utf-16le", []byte{'h', 0, 'i', 0, 0xE5, 0x65}, "hi日"},
		{"utf-16be", "utf-16be", []byte{0, 'h', 0, 'i'}, "hi"},
		{"utf-16 with bom", "utf-16", []byte{0xFF, 0xFE, 'o', 0, 'k', 0}, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUTF8(tt.in, tt.charset)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestToUTF8_Errors(t *testing.T) {
	_, err := ToUTF8([]byte{0xFF}, "utf-8")
	require.Error(t, err)

	_, err = ToUTF8([]byte("x"), "ebcdic")
	require.ErrorContains(t, err, "unknown charset")
}

func TestFromUTF8(t *testing.T) {
	out, err := FromUTF8("café", "windows-1252")
	require.NoError(t, err)
	require.Equal(t, []byte{'c', 'a', 'f', 0xE9}, out)

	out, err = FromUTF8("hi", "utf-16le")
	require.NoError(t, err)
	require.Equal(t, []byte{'h', 0, 'i', 0}, out)

	_, err = FromUTF8("日本", "iso-8859-1")
	require.Error(t, err)
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	require.Contains(t, names, "utf-8")
	require.IsNonDecreasing(t, names)
}
