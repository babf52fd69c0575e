package codec

import "fmt"

// vertexHeader is the vertex stream discriminant.
const vertexHeader = 0xa1

// Per-stream control bytes.
const (
	streamZero = 0x00 // every byte in the stream is zero
	streamRaw  = 0x01 // count raw delta bytes follow
)

// EncodeVertexBound returns the worst-case encoded size for count records
// of the given byte size.
func EncodeVertexBound(count, size int) int {
	return 1 + size*(1+count)
}

// EncodeVertex encodes count fixed-size records from data into dst and
// returns the number of bytes written, or 0 if dst cannot hold the full
// stream or data is not count*size bytes. The records are split into one
// stream per byte position and each stream is delta-encoded; all-zero
// streams collapse to a single control byte, which is where padding bytes
// and constant attributes win.
func EncodeVertex(dst []byte, data []byte, count, size int) int {
	if count < 0 || size <= 0 || len(data) != count*size {
		return 0
	}

	w := byteWriter{dst: dst}
	w.writeByte(vertexHeader)

	for s := 0; s < size; s++ {
		zero := true
		for i := 0; i < count; i++ {
			if data[i*size+s] != 0 {
				zero = false
				break
			}
		}

		if zero {
			w.writeByte(streamZero)
			continue
		}

		w.writeByte(streamRaw)
		prev := byte(0)
		for i := 0; i < count; i++ {
			b := data[i*size+s]
			w.writeByte(b - prev)
			prev = b
		}
	}

	if w.overflow {
		return 0
	}
	return w.pos
}

// DecodeVertex decodes an encoded vertex stream into dst, which must hold
// exactly count records of the given size. The stream must be consumed
// exactly; truncated input, trailing bytes, unknown stream controls, and
// corrupted headers all fail.
func DecodeVertex(dst []byte, count, size int, src []byte) error {
	if count < 0 || size <= 0 || len(dst) != count*size {
		return fmt.Errorf("vertex codec: %w: %d bytes for %d x %d", ErrSizeMismatch, len(dst), count, size)
	}

	r := byteReader{src: src}

	h, err := r.readByte()
	if err != nil {
		return fmt.Errorf("vertex codec: %w", err)
	}
	if h != vertexHeader {
		return fmt.Errorf("vertex codec: %w: %#02x", ErrInvalidHeader, h)
	}

	for s := 0; s < size; s++ {
		control, err := r.readByte()
		if err != nil {
			return fmt.Errorf("vertex codec: stream %d: %w", s, err)
		}

		switch control {
		case streamZero:
			for i := 0; i < count; i++ {
				dst[i*size+s] = 0
			}
		case streamRaw:
			prev := byte(0)
			for i := 0; i < count; i++ {
				d, err := r.readByte()
				if err != nil {
					return fmt.Errorf("vertex codec: stream %d: %w", s, err)
				}
				prev += d
				dst[i*size+s] = prev
			}
		default:
			return fmt.Errorf("vertex codec: stream %d: %w: control %#02x", s, ErrInvalidStream, control)
		}
	}

	if err := r.done(); err != nil {
		return fmt.Errorf("vertex codec: %w", err)
	}
	return nil
}
