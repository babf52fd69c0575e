// Package optimize implements index- and vertex-buffer reordering passes.
// Every pass rewrites a mesh in place and must leave it content-equivalent
// to its input; the bench harness verifies that after each run.
package optimize

import "github.com/Faultbox/meshbench/pkg/mesh"

// Transform rewrites a mesh in place. Implementations may reorder the
// index buffer and the vertex buffer freely but must preserve the multiset
// of non-degenerate triangles.
type Transform func(*mesh.Mesh)

// None leaves the mesh untouched. Baseline for the harness.
func None(*mesh.Mesh) {}

// LCG is a small linear congruential generator (constants from Numerical
// Recipes). It is passed around explicitly instead of living in package
// state so shuffles are reproducible and test-order-independent.
type LCG struct {
	state uint32
}

// NewLCG returns a generator with the given seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next returns the next 32-bit value.
func (g *LCG) Next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// RandomShuffle returns a transform that Fisher-Yates shuffles whole
// triangles with a generator seeded as given. The worst-case ordering for
// every locality metric, used as the harness's pessimal baseline.
func RandomShuffle(seed uint32) Transform {
	return func(m *mesh.Mesh) {
		rng := NewLCG(seed)
		triangleCount := len(m.Indices) / 3

		for i := triangleCount - 1; i > 0; i-- {
			j := int(rng.Next() % uint32(i+1))

			for k := 0; k < 3; k++ {
				m.Indices[3*j+k], m.Indices[3*i+k] = m.Indices[3*i+k], m.Indices[3*j+k]
			}
		}
	}
}
