package codec_test

import (
	"errors"
	"fmt"

	"github.com/dao-xyz/bufcodec/codec"
)

func Example() {
	buf := make([]byte, 12)

	codec.SerializeU32(0x01020304, buf, len(buf), 0)
	codec.SerializeU64(123, buf, len(buf), 4)

	fmt.Printf("% x\n", buf)
	fmt.Println(codec.DeserializeU32(buf, len(buf), 0) == 0x01020304)
	fmt.Println(codec.DeserializeU64(buf, len(buf), 4))
	// Output:
	// 04 03 02 01 7b 00 00 00 00 00 00 00
	// true
	// 123
}

func ExampleEncodeUTF8() {
	text := "héllo"
	buf := make([]byte, 16)

	codec.EncodeUTF8(text, buf, len(buf), 2)
	fmt.Println(codec.DecodeUTF8(buf, len(text), 2))
	// Output:
	// héllo
}

func ExampleDecodeUTF8_invalid() {
	fmt.Println(codec.DecodeUTF8([]byte{0xFF}, 1, 0))
	// Output:
	// invalid utf-8 sequence of 1 bytes from index 0
}

func ExampleDecodeUTF8Strict() {
	_, err := codec.DecodeUTF8Strict([]byte("ok\xE2\x82"), 4, 0)

	var uerr *codec.UTF8Error
	if errors.As(err, &uerr) {
		fmt.Println(uerr.ValidUpTo, uerr.Incomplete())
	}
	fmt.Println(err)
	// Output:
	// 2 true
	// incomplete utf-8 byte sequence from index 2
}

func ExampleCheckRange() {
	buf := make([]byte, 8)
	if err := codec.CheckRange(len(buf), len(buf), 4, codec.U64Size); err != nil {
		fmt.Println(errors.Is(err, codec.ErrOutOfBounds))
	}
	// Output:
	// true
}

func ExampleWriter() {
	buf := make([]byte, 32)
	w := codec.NewWriter(buf)
	_ = w.U8(1)
	_ = w.String("hi")

	fmt.Printf("% x\n", w.Written())

	r := codec.NewReader(w.Written())
	v, _ := r.U8()
	s, _ := r.String()
	fmt.Println(v, s)
	// Output:
	// 01 02 00 00 00 68 69
	// 1 hi
}

func ExampleMarshal() {
	type account struct {
		ID    uint32
		Name  string
		Owner *string
		Keys  [2]uint8
	}

	b, err := codec.Marshal(account{ID: 7, Name: "ab", Keys: [2]uint8{1, 2}})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("% x\n", b)

	var out account
	if err := codec.Unmarshal(b, &out); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.ID, out.Name, out.Owner == nil, out.Keys)
	// Output:
	// 07 00 00 00 02 00 00 00 61 62 00 01 02
	// 7 ab true [1 2]
}
