package codec

import "fmt"

// indexHeader is the index stream discriminant: high nibble identifies the
// format, low nibble the version.
const indexHeader = 0xe1

// EncodeIndexBound returns the worst-case encoded size for indexCount
// indices referencing vertexCount vertices.
func EncodeIndexBound(indexCount, vertexCount int) int {
	// worst case per index: delta spanning the whole vertex range
	worst := varintLen(zigzag(-int32(vertexCount)) + 1)
	return 1 + indexCount*worst
}

// EncodeIndex encodes an index buffer into dst and returns the number of
// bytes written. If dst is too small for the full stream, or any index is
// 2^31 or larger, nothing useful is written and 0 is returned; a truncated
// stream is never reported as valid. Encoding uses a "next vertex" fast path for the common case of
// indices arriving in first-use order, and a zigzag delta against the
// previously seen index otherwise.
func EncodeIndex(dst []byte, indices []uint32) int {
	w := byteWriter{dst: dst}
	w.writeByte(indexHeader)

	var next, last uint32
	for _, index := range indices {
		// indices must stay below 2^31: a delta of exactly -2^31 would
		// bias-wrap onto the fast-path marker and decode as the wrong value
		if index >= 1<<31 {
			return 0
		}
		if index == next {
			w.writeByte(0)
			next++
		} else {
			w.writeVarint(zigzag(int32(index)-int32(last)) + 1)
		}
		last = index
	}

	if w.overflow {
		return 0
	}
	return w.pos
}

// DecodeIndex decodes an encoded index stream into dst, which must hold
// exactly the expected index count. The stream must be consumed exactly:
// truncated input, trailing bytes, and corrupted headers all fail.
func DecodeIndex(dst []uint32, src []byte) error {
	r := byteReader{src: src}

	h, err := r.readByte()
	if err != nil {
		return fmt.Errorf("index codec: %w", err)
	}
	if h != indexHeader {
		return fmt.Errorf("index codec: %w: %#02x", ErrInvalidHeader, h)
	}

	var next, last uint32
	for i := range dst {
		v, err := r.readVarint()
		if err != nil {
			return fmt.Errorf("index codec: index %d: %w", i, err)
		}
		var index uint32
		if v == 0 {
			index = next
			next++
		} else {
			index = uint32(int32(last) + unzigzag(v-1))
		}
		dst[i] = index
		last = index
	}

	if err := r.done(); err != nil {
		return fmt.Errorf("index codec: %w", err)
	}
	return nil
}
