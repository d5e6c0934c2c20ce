package codec

import (
	"fmt"
	"reflect"
)

// Unmarshal decodes the Borsh encoding in data into the value pointed to by
// v, using the layout described at Marshal. All of data must be consumed;
// leftover bytes fail with ErrTrailingBytes. Use Decode on a Reader to read a
// value from the front of a longer buffer.
//
// Empty vecs decode as nil slices.
func Unmarshal(data []byte, v any) error {
	r := NewReader(data)
	if err := Decode(r, v); err != nil {
		return err
	}
	if n := r.Remaining(); n > 0 {
		return fmt.Errorf("%w: %d bytes left", ErrTrailingBytes, n)
	}
	return nil
}

// Decode reads one value into the value pointed to by v, starting at the
// reader's position. On error the position is left where it was.
func Decode(r *Reader, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: decode needs a non-nil pointer, got %T", ErrUnsupported, v)
	}
	target := rv.Elem()
	start := r.off
	if err := decodeValue(r, target, 0); err != nil {
		r.off = start
		return fmt.Errorf("codec: decode %s: %w", target.Type(), err)
	}
	return nil
}

func decodeValue(r *Reader, v reflect.Value, width int) error {
	t := v.Type()
	if isBigInt(t) {
		if width == 0 {
			return fmt.Errorf("%w: big.Int without a width", ErrUnsupported)
		}
		x, err := r.wide(width)
		if err != nil {
			return err
		}
		if t.Kind() == reflect.Pointer {
			v.Set(reflect.ValueOf(x))
		} else {
			v.Set(reflect.ValueOf(x).Elem())
		}
		return nil
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalBorsh(r)
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		b, err := r.Bool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Uint8:
		n, err := r.U8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case reflect.Uint16:
		n, err := r.U16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case reflect.Uint32:
		n, err := r.U32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case reflect.Uint64:
		n, err := r.U64()
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.String:
		s, err := r.String()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Slice:
		return decodeSlice(r, v, width)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := decodeValue(r, v.Index(i), width); err != nil {
				return atField(fmt.Sprintf("[%d]", i), err)
			}
		}
	case reflect.Pointer:
		present, err := r.Option(func() error {
			p := reflect.New(t.Elem())
			if err := decodeValue(r, p.Elem(), width); err != nil {
				return err
			}
			v.Set(p)
			return nil
		})
		if err != nil {
			return err
		}
		if !present {
			v.Set(reflect.Zero(t))
		}
	case reflect.Interface:
		return decodeVariant(r, v)
	case reflect.Struct:
		return decodeStruct(r, v, true)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	return nil
}

func decodeSlice(r *Reader, v reflect.Value, width int) error {
	t := v.Type()
	if t.Elem().Kind() == reflect.Uint8 {
		p, err := r.Bytes()
		if err != nil {
			return err
		}
		if len(p) == 0 {
			v.Set(reflect.Zero(t))
			return nil
		}
		v.SetBytes(p)
		return nil
	}

	s := reflect.Zero(t)
	_, err := r.Array(func(i int) error {
		s = reflect.Append(s, reflect.Zero(t.Elem()))
		if err := decodeValue(r, s.Index(i), width); err != nil {
			return atField(fmt.Sprintf("[%d]", i), err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.Set(s)
	return nil
}

func decodeVariant(r *Reader, v reflect.Value) error {
	idx, err := r.U8()
	if err != nil {
		return err
	}
	vt, ok := variantType(v.Type(), idx)
	if !ok {
		return fmt.Errorf("%w: index %d for %s", ErrUnknownVariant, idx, v.Type())
	}
	st := vt
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	p := reflect.New(st)
	if err := decodeStruct(r, p.Elem(), false); err != nil {
		return err
	}
	if vt.Kind() == reflect.Pointer {
		v.Set(p)
	} else {
		v.Set(p.Elem())
	}
	return nil
}

// decodeStruct fills v field by field. withIndex reads and checks the
// leading index of a registered variant; it is false when the caller has
// already consumed it.
func decodeStruct(r *Reader, v reflect.Value, withIndex bool) error {
	t := v.Type()
	fields, err := structPlan(t)
	if err != nil {
		return err
	}
	if want, _, ok := variantOf(t); ok && withIndex {
		got, err := r.U8()
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: index %d, %s is %d", ErrUnknownVariant, got, t, want)
		}
	}
	for _, fp := range fields {
		if err := decodeValue(r, v.Field(fp.idx), fp.width); err != nil {
			return atField(fp.name, err)
		}
	}
	return nil
}
