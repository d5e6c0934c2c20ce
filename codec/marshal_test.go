package codec

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape interface{ sides() int }

type circle struct {
	R uint32
}

func (circle) sides() int { return 0 }

type square struct {
	Side  uint16
	Label string
}

func (*square) sides() int { return 4 }

// triangle implements shape but is never registered.
type triangle struct{}

func (triangle) sides() int { return 3 }

func init() {
	MustRegisterVariant[shape](0, circle{})
	MustRegisterVariant[shape](1, &square{})
}

type holder struct {
	Shape shape
}

type withOption struct {
	V *uint32
}

type withVec struct {
	V []uint16
}

type withStrings struct {
	V []string
}

type withFixed struct {
	V [3]uint8
}

type withBytes struct {
	V []byte
}

type withWide struct {
	V *big.Int `borsh:"u128"`
}

type inner struct {
	B bool
}

type outer struct {
	A   uint8
	In  inner
	Ptr *inner
}

type withNestedOption struct {
	V *[]uint8
}

// point packs itself into one u16.
type point struct {
	X, Y uint8
}

func (p point) MarshalBorsh(w *Writer) error {
	return w.U16(uint16(p.X)<<8 | uint16(p.Y))
}

func (p *point) UnmarshalBorsh(r *Reader) error {
	v, err := r.U16()
	if err != nil {
		return err
	}
	p.X, p.Y = uint8(v>>8), uint8(v)
	return nil
}

type withPoint struct {
	P    point
	Tail uint8
}

func ptr[T any](v T) *T { return &v }

func TestMarshalLayout(t *testing.T) {
	tests := []struct {
		name string
		in   any
		out  any
		want []byte
	}{
		{"option none", &withOption{}, &withOption{}, []byte{0}},
		{"option some", &withOption{V: ptr(uint32(5))}, &withOption{}, []byte{1, 5, 0, 0, 0}},
		{"vec", &withVec{V: []uint16{1, 2}}, &withVec{}, []byte{2, 0, 0, 0, 1, 0, 2, 0}},
		{"empty vec", &withVec{}, &withVec{}, []byte{0, 0, 0, 0}},
		{"vec of strings", &withStrings{V: []string{"a", "bc"}}, &withStrings{},
			[]byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 2, 0, 0, 0, 'b', 'c'}},
		{"fixed array", &withFixed{V: [3]uint8{1, 2, 3}}, &withFixed{}, []byte{1, 2, 3}},
		{"bytes", &withBytes{V: []byte{9}}, &withBytes{}, []byte{1, 0, 0, 0, 9}},
		{"nested struct and option", &outer{A: 1, In: inner{B: true}, Ptr: &inner{}}, &outer{},
			[]byte{1, 1, 1, 0}},
		{"option of vec", &withNestedOption{V: &[]uint8{7}}, &withNestedOption{},
			[]byte{1, 1, 0, 0, 0, 7}},
		{"u128", &withWide{V: big.NewInt(0x0102)}, &withWide{},
			append([]byte{0x02, 0x01}, make([]byte, 14)...)},
		{"variant by value", &holder{Shape: circle{R: 2}}, &holder{}, []byte{0, 2, 0, 0, 0}},
		{"variant by pointer", &holder{Shape: &square{Side: 3, Label: "a"}}, &holder{},
			[]byte{1, 3, 0, 1, 0, 0, 0, 'a'}},
		{"custom marshaler", &withPoint{P: point{X: 1, Y: 2}, Tail: 9}, &withPoint{}, []byte{2, 1, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			n, err := Size(tt.in)
			require.NoError(t, err)
			require.Equal(t, len(tt.want), n)

			require.NoError(t, Unmarshal(got, tt.out))
			require.Equal(t, tt.in, tt.out)
		})
	}
}

func TestMarshalMatchesWriter(t *testing.T) {
	type record struct {
		Flag    bool
		Small   uint8
		Port    uint16
		ID      uint32
		Count   uint64
		Balance *big.Int `borsh:"u256"`
		Name    string
		Tags    []string
		Hash    [4]byte
		Nick    *string
		skipped int
		Cache   map[string]int `borsh:"-"`
	}
	in := record{
		Flag:    true,
		Small:   7,
		Port:    8080,
		ID:      0x01020304,
		Count:   123,
		Balance: new(big.Int).Lsh(big.NewInt(1), 200),
		Name:    "héllo",
		Tags:    []string{"x"},
		Hash:    [4]byte{1, 2, 3, 4},
		Nick:    ptr("nick"),
		skipped: 5,
		Cache:   map[string]int{"a": 1},
	}

	want := make([]byte, 256)
	w := NewWriter(want)
	require.NoError(t, w.Bool(true))
	require.NoError(t, w.U8(7))
	require.NoError(t, w.U16(8080))
	require.NoError(t, w.U32(0x01020304))
	require.NoError(t, w.U64(123))
	require.NoError(t, w.U256(in.Balance))
	require.NoError(t, w.String("héllo"))
	require.NoError(t, w.Array(1, func(int) error { return w.String("x") }))
	for _, b := range in.Hash {
		require.NoError(t, w.U8(b))
	}
	require.NoError(t, w.Option(true, func() error { return w.String("nick") }))

	got, err := Marshal(in)
	require.NoError(t, err)
	require.Equal(t, w.Written(), got)

	var out record
	require.NoError(t, Unmarshal(got, &out))
	require.Zero(t, in.Balance.Cmp(out.Balance))
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Tags, out.Tags)
	assert.Equal(t, in.Hash, out.Hash)
	assert.Equal(t, "nick", *out.Nick)
	assert.Zero(t, out.skipped)
	assert.Nil(t, out.Cache)
}

func TestMarshalVariantDirect(t *testing.T) {
	// a registered struct carries its index even outside an interface
	got, err := Marshal(circle{R: 1})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 0, 0, 0}, got)

	var c circle
	require.NoError(t, Unmarshal(got, &c))
	require.Equal(t, circle{R: 1}, c)

	var s shape
	require.NoError(t, Unmarshal(got, &s))
	require.Equal(t, circle{R: 1}, s)

	err = Unmarshal([]byte{1, 1, 0, 0, 0}, &c)
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestVariantErrors(t *testing.T) {
	var h holder
	err := Unmarshal([]byte{7}, &h)
	require.ErrorIs(t, err, ErrUnknownVariant)
	require.ErrorContains(t, err, "index 7")

	_, err = Marshal(&holder{Shape: triangle{}})
	require.ErrorIs(t, err, ErrUnknownVariant)

	_, err = Marshal(&holder{})
	require.ErrorIs(t, err, ErrNilValue)

	_, err = Marshal(&holder{Shape: (*square)(nil)})
	require.ErrorIs(t, err, ErrNilValue)
}

func TestRegisterVariant(t *testing.T) {
	require.NoError(t, RegisterVariant[shape](0, circle{}), "same registration is a no-op")
	require.Error(t, RegisterVariant[shape](2, circle{}), "a type has one index")
	require.ErrorContains(t, RegisterVariant[shape](0, triangle{}), "conflicting variants")
	require.ErrorIs(t, RegisterVariant[circle](0, circle{}), ErrUnsupported)
	require.ErrorIs(t, RegisterVariant[shape](5, nil), ErrUnsupported)
	require.Panics(t, func() { MustRegisterVariant[shape](1, triangle{}) })
}

func TestUnmarshalErrors(t *testing.T) {
	t.Run("trailing bytes", func(t *testing.T) {
		var v withFixed
		err := Unmarshal([]byte{1, 2, 3, 4}, &v)
		require.ErrorIs(t, err, ErrTrailingBytes)
		require.ErrorContains(t, err, "1 bytes left")
	})

	t.Run("short input", func(t *testing.T) {
		var v withOption
		err := Unmarshal([]byte{1, 5}, &v)
		require.ErrorIs(t, err, ErrEndOfBuffer)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		require.Equal(t, "V", fe.Path)
	})

	t.Run("field path", func(t *testing.T) {
		type named struct{ Name string }
		type group struct{ Items []named }
		data := []byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 1, 0, 0, 0, 0xFF}

		var g group
		err := Unmarshal(data, &g)
		require.ErrorIs(t, err, ErrInvalidUTF8)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		require.Equal(t, "Items[1].Name", fe.Path)
	})

	t.Run("not a pointer", func(t *testing.T) {
		require.ErrorIs(t, Unmarshal([]byte{0}, withOption{}), ErrUnsupported)
		require.ErrorIs(t, Unmarshal([]byte{0}, nil), ErrUnsupported)
	})

	t.Run("position restored", func(t *testing.T) {
		r := NewReader([]byte{3, 0, 0, 0, 1, 0})
		var v withVec
		require.ErrorIs(t, Decode(r, &v), ErrEndOfBuffer)
		require.Zero(t, r.Offset())
	})
}

func TestMarshalUnsupported(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"signed int", struct{ V int32 }{}},
		{"float", struct{ V float64 }{}},
		{"map", struct{ V map[string]uint8 }{}},
		{"big.Int without width", struct{ V *big.Int }{V: big.NewInt(1)}},
		{"unknown width", struct {
			V *big.Int `borsh:"u100"`
		}{V: big.NewInt(1)}},
		{"tag on plain field", struct {
			V uint8 `borsh:"u128"`
		}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.in)
			require.ErrorIs(t, err, ErrUnsupported)
		})
	}

	_, err := Marshal(nil)
	require.ErrorIs(t, err, ErrNilValue)
}

func TestEncodeIntoFixedBuffer(t *testing.T) {
	b := bytes.Repeat([]byte{0xEE}, 3)
	w := NewWriter(b)
	err := Encode(w, &withVec{V: []uint16{1}})
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.Zero(t, w.Len())

	w = NewWriter(make([]byte, 16))
	require.NoError(t, w.U8(0xAA))
	require.NoError(t, Encode(w, &withVec{V: []uint16{1}}))
	require.Equal(t, []byte{0xAA, 1, 0, 0, 0, 1, 0}, w.Written())

	r := NewReader(w.Written())
	_, err = r.U8()
	require.NoError(t, err)
	var v withVec
	require.NoError(t, Decode(r, &v))
	require.Equal(t, []uint16{1}, v.V)
}

func TestMarshalWideNil(t *testing.T) {
	_, err := Marshal(&withWide{})
	require.ErrorIs(t, err, ErrNilValue)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "V", fe.Path)
}
