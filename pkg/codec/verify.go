package codec

import (
	"bytes"
	"fmt"
)

// VerifyIndexBoundaries exhaustively probes the index codec around every
// truncation boundary for the given input:
//
//   - encoding into a buffer of every size 0..L must fail (return 0) below
//     L and report exactly L at L;
//   - decoding every prefix 0..L of the canonical stream must fail below L
//     and succeed only at L, reproducing the input up to per-triangle
//     rotation;
//   - a valid stream with one trailing byte must be rejected;
//   - a stream with a corrupted header byte must be rejected.
//
// Every trial buffer is freshly allocated so memory-safety tooling can
// attribute an out-of-bounds access to the trial that caused it. Any
// violation is returned as an error wrapping ErrBoundaryViolation.
func VerifyIndexBoundaries(indices []uint32, vertexCount int) error {
	encoded := make([]byte, EncodeIndexBound(len(indices), vertexCount))
	n := EncodeIndex(encoded, indices)
	if n == 0 {
		return fmt.Errorf("%w: encode failed at bound capacity", ErrBoundaryViolation)
	}
	encoded = encoded[:n]

	for i := 0; i <= len(encoded); i++ {
		short := make([]byte, i)
		got := EncodeIndex(short, indices)

		if i == len(encoded) {
			if got != len(encoded) {
				return fmt.Errorf("%w: encode into exact capacity %d returned %d", ErrBoundaryViolation, i, got)
			}
		} else if got != 0 {
			return fmt.Errorf("%w: encode into capacity %d returned %d, want 0", ErrBoundaryViolation, i, got)
		}
	}

	for i := 0; i <= len(encoded); i++ {
		short := make([]byte, i)
		copy(short, encoded[:i])
		dst := make([]uint32, len(indices))
		err := DecodeIndex(dst, short)

		if i == len(encoded) {
			if err != nil {
				return fmt.Errorf("%w: decode of full %d-byte stream failed: %v", ErrBoundaryViolation, i, err)
			}
			if err := checkTriangleRotations(indices, dst); err != nil {
				return err
			}
		} else if err == nil {
			return fmt.Errorf("%w: decode of %d-byte prefix succeeded, want failure", ErrBoundaryViolation, i)
		}
	}

	oversized := make([]byte, 0, len(encoded)+1)
	oversized = append(oversized, encoded...)
	oversized = append(oversized, 0)
	if err := DecodeIndex(make([]uint32, len(indices)), oversized); err == nil {
		return fmt.Errorf("%w: decoder accepted trailing byte", ErrBoundaryViolation)
	}

	broken := make([]byte, len(encoded))
	copy(broken, encoded)
	broken[0] = 0
	if err := DecodeIndex(make([]uint32, len(indices)), broken); err == nil {
		return fmt.Errorf("%w: decoder accepted corrupted header", ErrBoundaryViolation)
	}

	return nil
}

// VerifyVertexBoundaries performs the same exhaustive boundary probe for
// the vertex codec over count records of the given size, requiring a
// byte-exact round trip at the full length.
func VerifyVertexBoundaries(data []byte, count, size int) error {
	encoded := make([]byte, EncodeVertexBound(count, size))
	n := EncodeVertex(encoded, data, count, size)
	if n == 0 {
		return fmt.Errorf("%w: encode failed at bound capacity", ErrBoundaryViolation)
	}
	encoded = encoded[:n]

	for i := 0; i <= len(encoded); i++ {
		short := make([]byte, i)
		got := EncodeVertex(short, data, count, size)

		if i == len(encoded) {
			if got != len(encoded) {
				return fmt.Errorf("%w: encode into exact capacity %d returned %d", ErrBoundaryViolation, i, got)
			}
		} else if got != 0 {
			return fmt.Errorf("%w: encode into capacity %d returned %d, want 0", ErrBoundaryViolation, i, got)
		}
	}

	for i := 0; i <= len(encoded); i++ {
		short := make([]byte, i)
		copy(short, encoded[:i])
		dst := make([]byte, count*size)
		err := DecodeVertex(dst, count, size, short)

		if i == len(encoded) {
			if err != nil {
				return fmt.Errorf("%w: decode of full %d-byte stream failed: %v", ErrBoundaryViolation, i, err)
			}
			if !bytes.Equal(dst, data) {
				return fmt.Errorf("%w: decoded records differ from input", ErrBoundaryViolation)
			}
		} else if err == nil {
			return fmt.Errorf("%w: decode of %d-byte prefix succeeded, want failure", ErrBoundaryViolation, i)
		}
	}

	oversized := make([]byte, 0, len(encoded)+1)
	oversized = append(oversized, encoded...)
	oversized = append(oversized, 0)
	if err := DecodeVertex(make([]byte, count*size), count, size, oversized); err == nil {
		return fmt.Errorf("%w: decoder accepted trailing byte", ErrBoundaryViolation)
	}

	broken := make([]byte, len(encoded))
	copy(broken, encoded)
	broken[0] = 0
	if err := DecodeVertex(make([]byte, count*size), count, size, broken); err == nil {
		return fmt.Errorf("%w: decoder accepted corrupted header", ErrBoundaryViolation)
	}

	return nil
}

// checkTriangleRotations verifies that decoded triangles match the
// original up to cyclic rotation. The codec is free to rotate a triangle
// as long as the winding survives.
func checkTriangleRotations(want, got []uint32) error {
	for i := 0; i+2 < len(want); i += 3 {
		a, b, c := want[i], want[i+1], want[i+2]
		x, y, z := got[i], got[i+1], got[i+2]

		ok := (x == a && y == b && z == c) ||
			(y == a && z == b && x == c) ||
			(z == a && x == b && y == c)
		if !ok {
			return fmt.Errorf("%w: triangle %d decoded as (%d,%d,%d), want rotation of (%d,%d,%d)",
				ErrBoundaryViolation, i/3, x, y, z, a, b, c)
		}
	}
	return nil
}
