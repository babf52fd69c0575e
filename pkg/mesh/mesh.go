// Package mesh provides the triangle mesh model used by the benchmark
// harness, structural validation, and the order-invariant content
// fingerprint that serves as the mesh identity oracle.
package mesh

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrIndexCount          = errors.New("index count is not a multiple of 3")
	ErrIndexRange          = errors.New("index out of range")
	ErrFingerprintMismatch = errors.New("triangle content fingerprint mismatch")
)

// Vertex is a fixed-size interleaved vertex record. Equality is byte-exact;
// the fingerprint and canonicalization never compare floats with tolerance.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexSize is the serialized size of a Vertex in bytes.
const VertexSize = 32

// Mesh is an indexed triangle list. The index buffer references the vertex
// buffer in consecutive triples; a mesh is valid iff the index count is a
// multiple of 3 and every index is in bounds.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangle is a transient view of three vertex records gathered via three
// consecutive indices. Triangles compare by vertex content, not by index
// values, so independently reindexed meshes still compare equal.
type Triangle [3]Vertex

// TriangleCount returns the number of index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle gathers the i-th triangle's vertices. The mesh must be valid.
func (m *Mesh) Triangle(i int) Triangle {
	return Triangle{
		m.Vertices[m.Indices[i*3+0]],
		m.Vertices[m.Indices[i*3+1]],
		m.Vertices[m.Indices[i*3+2]],
	}
}

// Clone returns a deep copy of the mesh. The harness transforms copies so
// the caller's mesh stays a clean baseline.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// Validate checks structural well-formedness of the index buffer. It does
// not inspect triangle content; degenerate and duplicate triangles are the
// fingerprint's concern.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(m.Indices))
	}
	vertexCount := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= vertexCount {
			return fmt.Errorf("%w: index %d at position %d, vertex count %d", ErrIndexRange, idx, i, vertexCount)
		}
	}
	return nil
}

// IsValid reports whether Validate succeeds. Pure predicate.
func (m *Mesh) IsValid() bool {
	return m.Validate() == nil
}

// CheckEquivalent decides whether a transformed mesh still carries the
// same non-degenerate triangle content as the original. Both conditions
// are mandatory: the transformed mesh must be structurally valid and the
// fingerprints must match. Transformations under test must never fail this.
func CheckEquivalent(original, transformed *Mesh) error {
	if err := transformed.Validate(); err != nil {
		return err
	}
	ho := Fingerprint(original)
	ht := Fingerprint(transformed)
	if ho != ht {
		return fmt.Errorf("%w: %08x != %08x", ErrFingerprintMismatch, ho, ht)
	}
	return nil
}
