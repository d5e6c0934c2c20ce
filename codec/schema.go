package codec

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"sync"
)

// Marshaler is implemented by types that write their own Borsh encoding.
type Marshaler interface {
	MarshalBorsh(w *Writer) error
}

// Unmarshaler is implemented by types that read their own Borsh encoding.
// It is called on a pointer to the value.
type Unmarshaler interface {
	UnmarshalBorsh(r *Reader) error
}

var bigIntType = reflect.TypeOf((*big.Int)(nil)).Elem()

// enum maps u8 indexes to the concrete types registered for one interface.
type enum struct {
	byIndex map[uint8]reflect.Type
}

var variants = struct {
	sync.RWMutex
	enums map[reflect.Type]*enum        // interface type -> variants
	index map[reflect.Type]uint8        // struct type -> its index
	iface map[reflect.Type]reflect.Type // struct type -> interface
}{
	enums: make(map[reflect.Type]*enum),
	index: make(map[reflect.Type]uint8),
	iface: make(map[reflect.Type]reflect.Type),
}

// RegisterVariant registers v as the variant with the given index of the
// interface type I, the Go form of a Rust enum.
//
// A registered struct is always encoded as its u8 index followed by its
// fields, whether it is reached through an I field or directly. Decoding into
// an I reads the index and allocates the matching type. v may be a struct or
// a pointer to one; the decoded value has the same shape.
func RegisterVariant[I any](index uint8, v I) error {
	it := reflect.TypeOf((*I)(nil)).Elem()
	if it.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s is not an interface", ErrUnsupported, it)
	}
	vt := reflect.TypeOf(v)
	if vt == nil {
		return fmt.Errorf("%w: nil variant for %s", ErrUnsupported, it)
	}
	st := vt
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return fmt.Errorf("%w: variant %s is not a struct", ErrUnsupported, vt)
	}

	variants.Lock()
	defer variants.Unlock()

	if prev, ok := variants.iface[st]; ok {
		if prev != it || variants.index[st] != index {
			return fmt.Errorf("codec: %s already registered as variant %d of %s",
				st, variants.index[st], prev)
		}
		return nil
	}
	e := variants.enums[it]
	if e == nil {
		e = &enum{byIndex: make(map[uint8]reflect.Type)}
		variants.enums[it] = e
	}
	if other, ok := e.byIndex[index]; ok {
		return fmt.Errorf("codec: conflicting variants: %s and %s share index %d of %s",
			other, vt, index, it)
	}
	e.byIndex[index] = vt
	variants.index[st] = index
	variants.iface[st] = it
	return nil
}

// MustRegisterVariant is like RegisterVariant but panics on error. It is
// meant for package init.
func MustRegisterVariant[I any](index uint8, v I) {
	if err := RegisterVariant(index, v); err != nil {
		panic(err)
	}
}

// variantOf returns the registered index of struct type st and the
// interface it belongs to.
func variantOf(st reflect.Type) (uint8, reflect.Type, bool) {
	variants.RLock()
	defer variants.RUnlock()
	idx, ok := variants.index[st]
	return idx, variants.iface[st], ok
}

// variantType returns the type registered at index for interface it.
func variantType(it reflect.Type, index uint8) (reflect.Type, bool) {
	variants.RLock()
	defer variants.RUnlock()
	e := variants.enums[it]
	if e == nil {
		return nil, false
	}
	t, ok := e.byIndex[index]
	return t, ok
}

// fieldPlan is the encoding recipe for one struct field.
type fieldPlan struct {
	idx   int
	name  string
	width int // wide integer byte width for *big.Int / big.Int fields
}

var plans sync.Map // reflect.Type -> []fieldPlan

// structPlan returns the encoded fields of struct type t in declaration
// order. Unexported fields and fields tagged `borsh:"-"` are skipped.
func structPlan(t reflect.Type) ([]fieldPlan, error) {
	if p, ok := plans.Load(t); ok {
		return p.([]fieldPlan), nil
	}
	fields := make([]fieldPlan, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := strings.TrimSpace(sf.Tag.Get("borsh"))
		if tag == "-" {
			continue
		}
		fp := fieldPlan{idx: i, name: sf.Name}
		if holdsBigInt(sf.Type) {
			w, err := wideWidth(tag)
			if err != nil {
				return nil, atField(sf.Name, err)
			}
			fp.width = w
		} else if tag != "" {
			return nil, atField(sf.Name, fmt.Errorf("%w: tag %q on %s", ErrUnsupported, tag, sf.Type))
		}
		fields = append(fields, fp)
	}
	p, _ := plans.LoadOrStore(t, fields)
	return p.([]fieldPlan), nil
}

func isBigInt(t reflect.Type) bool {
	return t == bigIntType || (t.Kind() == reflect.Pointer && t.Elem() == bigIntType)
}

// holdsBigInt reports whether t is a big.Int, possibly inside slices, arrays
// or options. The field's width tag then applies to every element.
func holdsBigInt(t reflect.Type) bool {
	for {
		if isBigInt(t) {
			return true
		}
		switch t.Kind() {
		case reflect.Slice, reflect.Array, reflect.Pointer:
			t = t.Elem()
		default:
			return false
		}
	}
}

func wideWidth(tag string) (int, error) {
	switch tag {
	case "u128":
		return U128Size, nil
	case "u256":
		return U256Size, nil
	case "u512":
		return U512Size, nil
	case "":
		return 0, fmt.Errorf("%w: big.Int needs a width tag (u128, u256 or u512)", ErrUnsupported)
	default:
		return 0, fmt.Errorf("%w: unknown width tag %q", ErrUnsupported, tag)
	}
}
