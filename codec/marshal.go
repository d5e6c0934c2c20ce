package codec

import (
	"fmt"
	"math/big"
	"reflect"
)

// Marshal returns the Borsh encoding of v.
//
// Structs are encoded field by field in declaration order:
//
//	bool                 u8, 0 or 1
//	uint8 ... uint64     fixed-width little-endian
//	*big.Int, big.Int    u128, u256 or u512, chosen by a `borsh:"u128"` tag
//	string               u32 length + UTF-8 bytes
//	[]byte, []T          u32 count + elements (vec)
//	[N]T                 N elements, no prefix (fixed array)
//	*T                   u8 0 for nil, or u8 1 + T (option)
//	interface            registered variant: u8 index + fields (enum)
//	struct               its fields; a registered variant leads with its index
//
// Unexported fields and fields tagged `borsh:"-"` are skipped. Types that
// implement Marshaler encode themselves.
//
// The result is sized exactly by Size before anything is written.
func Marshal(v any) ([]byte, error) {
	n, err := Size(v)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if err := Encode(NewWriter(b), v); err != nil {
		return nil, err
	}
	return b, nil
}

// Size returns the number of bytes Marshal would produce for v.
func Size(v any) (int, error) {
	w := &Writer{counting: true}
	if err := Encode(w, v); err != nil {
		return 0, err
	}
	return w.Len(), nil
}

// Encode writes the Borsh encoding of v at the writer's position. On error
// the position is left where it was.
func Encode(w *Writer, v any) error {
	rv, err := topLevel(v)
	if err != nil {
		return err
	}
	start := w.off
	if err := encodeValue(w, rv, 0); err != nil {
		w.off = start
		return fmt.Errorf("codec: encode %s: %w", rv.Type(), err)
	}
	return nil
}

// topLevel dereferences a top-level pointer and returns an addressable value.
func topLevel(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, ErrNilValue
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, ErrNilValue
		}
		return rv.Elem(), nil
	}
	return addressable(rv), nil
}

func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

func encodeValue(w *Writer, v reflect.Value, width int) error {
	t := v.Type()
	if isBigInt(t) {
		if width == 0 {
			return fmt.Errorf("%w: big.Int without a width", ErrUnsupported)
		}
		var x *big.Int
		if t.Kind() == reflect.Pointer {
			x, _ = v.Interface().(*big.Int)
		} else {
			x = v.Addr().Interface().(*big.Int)
		}
		return w.wide(fmt.Sprintf("write_u%d", width*8), x, width)
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m.MarshalBorsh(w)
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		return w.Bool(v.Bool())
	case reflect.Uint8:
		return w.U8(uint8(v.Uint()))
	case reflect.Uint16:
		return w.U16(uint16(v.Uint()))
	case reflect.Uint32:
		return w.U32(uint32(v.Uint()))
	case reflect.Uint64:
		return w.U64(v.Uint())
	case reflect.String:
		return w.String(v.String())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return w.Bytes(v.Bytes())
		}
		return w.Array(v.Len(), func(i int) error {
			if err := encodeValue(w, v.Index(i), width); err != nil {
				return atField(fmt.Sprintf("[%d]", i), err)
			}
			return nil
		})
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(w, v.Index(i), width); err != nil {
				return atField(fmt.Sprintf("[%d]", i), err)
			}
		}
		return nil
	case reflect.Pointer:
		return w.Option(!v.IsNil(), func() error {
			return encodeValue(w, v.Elem(), width)
		})
	case reflect.Interface:
		return encodeVariant(w, v)
	case reflect.Struct:
		return encodeStruct(w, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
}

func encodeVariant(w *Writer, v reflect.Value) error {
	if v.IsNil() {
		return fmt.Errorf("%w: nil %s", ErrNilValue, v.Type())
	}
	e := v.Elem()
	if e.Kind() == reflect.Pointer {
		if e.IsNil() {
			return fmt.Errorf("%w: nil %s", ErrNilValue, e.Type())
		}
		e = e.Elem()
	} else {
		e = addressable(e)
	}
	if _, it, ok := variantOf(e.Type()); !ok || it != v.Type() {
		return fmt.Errorf("%w: %s is not registered for %s", ErrUnknownVariant, e.Type(), v.Type())
	}
	return encodeValue(w, e, 0)
}

func encodeStruct(w *Writer, v reflect.Value) error {
	t := v.Type()
	fields, err := structPlan(t)
	if err != nil {
		return err
	}
	if idx, _, ok := variantOf(t); ok {
		if err := w.U8(idx); err != nil {
			return err
		}
	}
	for _, fp := range fields {
		if err := encodeValue(w, v.Field(fp.idx), fp.width); err != nil {
			return atField(fp.name, err)
		}
	}
	return nil
}
