// Package codec reads and writes primitive values inside caller-owned byte
// buffers.
//
// # Overview
//
// The package is a set of stateless functions. Every call receives the
// buffer, a declared logical length and a byte offset, and either mutates
// the buffer in place or reads from it. The codec never allocates, grows,
// retains or frees the buffer.
//
// Integers are fixed-width and always little-endian:
//
//	buf := make([]byte, 16)
//	codec.SerializeU64(123, buf, len(buf), 0)
//	codec.SerializeU32(0x01020304, buf, len(buf), 8)
//
//	v := codec.DeserializeU64(buf, len(buf), 0) // 123
//
// Text is stored as raw UTF-8 with no length prefix. The caller carries the
// encoded length out of band:
//
//	codec.EncodeUTF8("héllo", buf, len(buf), 0)
//	s := codec.DecodeUTF8(buf, len("héllo"), 0)
//
// Note the asymmetry: for DecodeUTF8 the length argument is the size of the
// region to decode, not the buffer's declared length.
//
// # Bounds
//
// Every write stays inside [0, dataLen) and inside the physical slice. The
// Serialize*, Deserialize* and EncodeUTF8 functions treat a range that
// does not fit as a broken precondition and panic with a *BoundsError.
// Callers that prefer error values use the Put*, Read* and DecodeUTF8Strict
// variants, or validate up front with CheckRange.
//
// # Invalid UTF-8
//
// DecodeUTF8 never fails on malformed input. It returns a description of
// the problem in place of the text, for example
//
//	invalid utf-8 sequence of 1 bytes from index 0
//
// DecodeUTF8Strict returns the same information as a *UTF8Error instead.
//
// # Sequential access
//
// Writer and Reader walk a fixed buffer front to back using the Borsh
// layout: little-endian integers, one byte booleans, and strings and byte
// slices prefixed by their u32 length.
//
// # Structs
//
// Marshal and Unmarshal map Go structs onto the same layout by reflection.
// Pointers are options, slices are vecs, arrays are fixed arrays, and
// interfaces are enums whose variants are registered with RegisterVariant:
//
//	type Shape interface{ isShape() }
//	type Circle struct{ R uint32 }
//
//	func (Circle) isShape() {}
//	func init() { codec.MustRegisterVariant[Shape](0, Circle{}) }
//
// # Concurrency
//
// The codec holds no state. Concurrent calls that touch the same region of
// one buffer race on the caller's memory; serializing them is up to the
// caller.
package codec
