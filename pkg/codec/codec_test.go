package codec

import (
	"bytes"
	"errors"
	"testing"
)

// coverageIndices is engineered so the 4,6,5 triangle is encoded with the
// first and last corner on the next-vertex fast path without advancing
// past 6, forcing the following triangle off the fast path entirely.
var coverageIndices = []uint32{0, 1, 2, 2, 1, 3, 4, 6, 5, 7, 8, 9}

const coverageVertexCount = 10

func TestEncodeIndex_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
	}{
		{"coverage fixture", coverageIndices},
		{"empty", []uint32{}},
		{"sequential", []uint32{0, 1, 2, 3, 4, 5}},
		{"backward jumps", []uint32{5, 4, 3, 0, 2, 1}},
		{"repeated", []uint32{0, 0, 0, 1, 1, 1}},
		{"wide range", []uint32{0, 70000, 3, 200000, 1, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, EncodeIndexBound(len(tc.indices), 200001))
			n := EncodeIndex(buf, tc.indices)
			if n == 0 {
				t.Fatal("encode failed")
			}

			dst := make([]uint32, len(tc.indices))
			if err := DecodeIndex(dst, buf[:n]); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			for i := range tc.indices {
				if dst[i] != tc.indices[i] {
					t.Fatalf("index %d: got %d, want %d", i, dst[i], tc.indices[i])
				}
			}
		})
	}
}

func TestDecodeIndex_Failures(t *testing.T) {
	buf := make([]byte, EncodeIndexBound(len(coverageIndices), coverageVertexCount))
	n := EncodeIndex(buf, coverageIndices)
	encoded := buf[:n]

	tests := []struct {
		name string
		src  []byte
		want error
	}{
		{"empty input", []byte{}, ErrUnexpectedEnd},
		{"wrong header", []byte{0x00}, ErrInvalidHeader},
		{"truncated", encoded[:n-1], ErrUnexpectedEnd},
		{"trailing byte", append(append([]byte{}, encoded...), 0), ErrTrailingData},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := DecodeIndex(make([]uint32, len(coverageIndices)), tc.src)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEncodeIndex_InsufficientCapacity(t *testing.T) {
	buf := make([]byte, EncodeIndexBound(len(coverageIndices), coverageVertexCount))
	n := EncodeIndex(buf, coverageIndices)

	if got := EncodeIndex(make([]byte, n-1), coverageIndices); got != 0 {
		t.Errorf("encode into capacity %d returned %d, want 0", n-1, got)
	}
	if got := EncodeIndex(nil, coverageIndices); got != 0 {
		t.Error("encode into nil buffer should return 0")
	}
	if got := EncodeIndex(make([]byte, n), coverageIndices); got != n {
		t.Errorf("encode into exact capacity returned %d, want %d", got, n)
	}
}

func TestEncodeIndex_RejectsOutOfRangeIndex(t *testing.T) {
	// an index at or above 2^31 could produce a delta whose biased zigzag
	// wraps onto the fast-path marker, so the encoder refuses it outright
	indices := []uint32{0, 1 << 31, 2}
	buf := make([]byte, EncodeIndexBound(len(indices), 3))
	if got := EncodeIndex(buf, indices); got != 0 {
		t.Errorf("encode of out-of-range index returned %d, want 0", got)
	}
}

func TestVerifyIndexBoundaries(t *testing.T) {
	if err := VerifyIndexBoundaries(coverageIndices, coverageVertexCount); err != nil {
		t.Fatalf("index codec boundary verification failed: %v", err)
	}
}

func TestVerifyIndexBoundaries_Empty(t *testing.T) {
	if err := VerifyIndexBoundaries([]uint32{}, 0); err != nil {
		t.Fatalf("boundary verification failed for empty input: %v", err)
	}
}

// coverageVertexBytes reproduces the 4-record octahedral fixture: 12-byte
// records of half position, octahedral normal, half texcoord. Constant
// streams exercise the zero-stream control path.
func coverageVertexBytes() []byte {
	records := [][7]uint16{
		// px, py, pz, nu|nv packed below, tx, ty
		{0, 0, 0, 0, 0, 0, 0},
		{300, 0, 0, 0, 0, 500, 0},
		{0, 300, 0, 0, 0, 0, 500},
		{300, 300, 0, 0, 0, 500, 500},
	}

	var out []byte
	for _, r := range records {
		out = append(out,
			byte(r[0]), byte(r[0]>>8),
			byte(r[1]), byte(r[1]>>8),
			byte(r[2]), byte(r[2]>>8),
			byte(r[3]), byte(r[4]),
			byte(r[5]), byte(r[5]>>8),
			byte(r[6]), byte(r[6]>>8),
		)
	}
	return out
}

func TestEncodeVertex_RoundTrip(t *testing.T) {
	data := coverageVertexBytes()
	const count, size = 4, 12

	buf := make([]byte, EncodeVertexBound(count, size))
	n := EncodeVertex(buf, data, count, size)
	if n == 0 {
		t.Fatal("encode failed")
	}

	dst := make([]byte, count*size)
	if err := DecodeVertex(dst, count, size, buf[:n]); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(dst, data) {
		t.Error("round trip is not byte-exact")
	}
}

func TestEncodeVertex_BadArguments(t *testing.T) {
	data := coverageVertexBytes()

	if got := EncodeVertex(make([]byte, 256), data, 4, 11); got != 0 {
		t.Error("size mismatch should return 0")
	}
	if got := EncodeVertex(make([]byte, 256), data, 5, 12); got != 0 {
		t.Error("count mismatch should return 0")
	}

	err := DecodeVertex(make([]byte, 10), 4, 12, []byte{vertexHeader})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestDecodeVertex_InvalidControl(t *testing.T) {
	// header followed by an unknown stream control
	src := []byte{vertexHeader, 0x7f}
	err := DecodeVertex(make([]byte, 4), 4, 1, src)
	if !errors.Is(err, ErrInvalidStream) {
		t.Errorf("expected ErrInvalidStream, got %v", err)
	}
}

func TestVerifyVertexBoundaries(t *testing.T) {
	if err := VerifyVertexBoundaries(coverageVertexBytes(), 4, 12); err != nil {
		t.Fatalf("vertex codec boundary verification failed: %v", err)
	}
}

func TestVerifyVertexBoundaries_SingleByteRecords(t *testing.T) {
	if err := VerifyVertexBoundaries([]byte{1, 2, 3, 4, 5}, 5, 1); err != nil {
		t.Fatalf("boundary verification failed: %v", err)
	}
}

func TestZigzag(t *testing.T) {
	values := []int32{0, 1, -1, 2, -2, 1 << 20, -(1 << 20)}
	for _, v := range values {
		if got := unzigzag(zigzag(v)); got != v {
			t.Errorf("unzigzag(zigzag(%d)) = %d", v, got)
		}
	}
}
