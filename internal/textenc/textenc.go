// Package textenc converts text from legacy and UTF-16 encodings to UTF-8.
package textenc

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// UTF8 is the canonical name of the pass-through charset.
const UTF8 = "utf-8"

var charsets = map[string]encoding.Encoding{
	UTF8:           unicode.UTF8,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

var aliases = map[string]string{
	"utf8":    UTF8,
	"cp1252":  "windows-1252",
	"latin1":  "iso-8859-1",
	"latin-1": "iso-8859-1",
	"latin9":  "iso-8859-15",
}

// Names returns the supported charset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the encoding registered under name. Names are case-insensitive.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = UTF8
	}
	if canon, ok := aliases[key]; ok {
		key = canon
	}
	enc, ok := charsets[key]
	if !ok {
		return nil, fmt.Errorf("textenc: unknown charset %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return enc, nil
}

// ToUTF8 decodes b from the named charset into a UTF-8 string. UTF-8 input
// must already be well formed.
func ToUTF8(b []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("textenc: input is not valid utf-8")
		}
		return string(b), nil
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(b), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("textenc: decode %s: %w", name, err)
	}
	return string(out), nil
}

// FromUTF8 encodes s into the named charset. Runes the charset cannot
// represent are an error.
func FromUTF8(s, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(s), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("textenc: encode %s: %w", name, err)
	}
	return out, nil
}
