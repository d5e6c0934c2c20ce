package codec

import "github.com/dao-xyz/bufcodec/internal/buf"

// PutU32 writes v at b[offset:offset+4] in little-endian order.
func PutU32(v uint32, b []byte, dataLen, offset int) error {
	w, err := window("serialize_u32", b, dataLen, offset, U32Size)
	if err != nil {
		return err
	}
	buf.PutU32LE(w, v)
	return nil
}

// ReadU32 reads a little-endian uint32 from b[offset:offset+4].
func ReadU32(b []byte, dataLen, offset int) (uint32, error) {
	w, err := window("deserialize_u32", b, dataLen, offset, U32Size)
	if err != nil {
		return 0, err
	}
	return buf.U32LE(w), nil
}

// PutU64 writes v at b[offset:offset+8] in little-endian order.
func PutU64(v uint64, b []byte, dataLen, offset int) error {
	trace("serialize_u64", b, dataLen, offset)
	w, err := window("serialize_u64", b, dataLen, offset, U64Size)
	if err != nil {
		return err
	}
	buf.PutU64LE(w, v)
	return nil
}

// ReadU64 reads a little-endian uint64 from b[offset:offset+8].
func ReadU64(b []byte, dataLen, offset int) (uint64, error) {
	trace("deserialize_u64", b, dataLen, offset)
	w, err := window("deserialize_u64", b, dataLen, offset, U64Size)
	if err != nil {
		return 0, err
	}
	return buf.U64LE(w), nil
}

// SerializeU32 writes v at offset in little-endian order.
// It panics with a *BoundsError unless offset+4 <= dataLen.
func SerializeU32(v uint32, b []byte, dataLen, offset int) {
	must(PutU32(v, b, dataLen, offset))
}

// DeserializeU32 reads a little-endian uint32 at offset.
// It panics with a *BoundsError unless offset+4 <= dataLen.
func DeserializeU32(b []byte, dataLen, offset int) uint32 {
	v, err := ReadU32(b, dataLen, offset)
	must(err)
	return v
}

// SerializeU64 writes v at offset in little-endian order.
// It panics with a *BoundsError unless offset+8 <= dataLen.
func SerializeU64(v uint64, b []byte, dataLen, offset int) {
	must(PutU64(v, b, dataLen, offset))
}

// DeserializeU64 reads a little-endian uint64 at offset.
// It panics with a *BoundsError unless offset+8 <= dataLen.
func DeserializeU64(b []byte, dataLen, offset int) uint64 {
	v, err := ReadU64(b, dataLen, offset)
	must(err)
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
