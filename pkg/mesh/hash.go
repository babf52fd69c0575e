package mesh

import (
	"bytes"
	"encoding/binary"
	"math"
)

// triangleBytes is the serialized size of a triangle's three vertices.
const triangleBytes = 3 * VertexSize

// AppendVertexBytes appends the little-endian byte representation of v.
// This is the comparison and hashing domain for all identity checks.
func AppendVertexBytes(dst []byte, v *Vertex) []byte {
	for _, f := range v.Position {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	for _, f := range v.Normal {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	for _, f := range v.TexCoord {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// CanonicalTriangle rotates t cyclically (never reflecting) so that the
// byte-wise smallest vertex comes first, preserving winding order. The
// second result is false if any two vertices are byte-identical; such
// degenerate triangles are excluded from the fingerprint because
// optimization passes are allowed to drop or alter them.
func CanonicalTriangle(t Triangle) (Triangle, bool) {
	var buf [triangleBytes]byte
	b := AppendVertexBytes(buf[:0], &t[0])
	b = AppendVertexBytes(b, &t[1])
	AppendVertexBytes(b, &t[2])

	v0 := buf[0*VertexSize : 1*VertexSize]
	v1 := buf[1*VertexSize : 2*VertexSize]
	v2 := buf[2*VertexSize : 3*VertexSize]

	c01 := bytes.Compare(v0, v1)
	c02 := bytes.Compare(v0, v2)
	c12 := bytes.Compare(v1, v2)

	if c12 < 0 && c01 > 0 {
		// 1 is minimum, rotate 012 => 120
		t[0], t[1], t[2] = t[1], t[2], t[0]
	} else if c02 > 0 && c12 > 0 {
		// 2 is minimum, rotate 012 => 201
		t[0], t[1], t[2] = t[2], t[0], t[1]
	}

	return t, c01 != 0 && c02 != 0 && c12 != 0
}

// hashBlock mixes 4-byte chunks of data into a 32-bit hash (MurmurHash2
// mixing). len(data) must be a multiple of 4.
func hashBlock(data []byte) uint32 {
	const m = 0x5bd1e995
	const r = 24

	var h uint32
	for len(data) >= 4 {
		k := binary.LittleEndian.Uint32(data)

		k *= m
		k ^= k >> r
		k *= m

		h *= m
		h ^= k

		data = data[4:]
	}
	return h
}

// Fingerprint computes an order-independent 32-bit summary of the mesh's
// non-degenerate triangle content. Each triangle is canonicalized and
// hashed by raw byte content, then folded into an XOR accumulator and a
// sum accumulator; the two are combined with a single multiply. The result
// is invariant to triangle order, vertex reindexing, and per-triangle
// cyclic rotation, but sensitive to winding reversal. Collisions are
// possible; for the corpus sizes the harness runs this is accepted.
func Fingerprint(m *Mesh) uint32 {
	var h1, h2 uint32
	var buf [triangleBytes]byte

	for i := 0; i < m.TriangleCount(); i++ {
		t, ok := CanonicalTriangle(m.Triangle(i))
		if !ok {
			continue
		}

		b := AppendVertexBytes(buf[:0], &t[0])
		b = AppendVertexBytes(b, &t[1])
		AppendVertexBytes(b, &t[2])

		h := hashBlock(buf[:])
		h1 ^= h
		h2 += h
	}

	return h1*0x5bd1e995 + h2
}
