package optimize

import "github.com/Faultbox/meshbench/pkg/mesh"

// VertexFetchRemap computes a vertex remap that orders vertices by first
// use in the index buffer, so a linear prefetch follows the draw order.
// Unreferenced vertices keep their relative order at the end.
func VertexFetchRemap(indices []uint32, vertexCount int) []uint32 {
	const unused = ^uint32(0)

	remap := make([]uint32, vertexCount)
	for i := range remap {
		remap[i] = unused
	}

	var next uint32
	for _, v := range indices {
		if remap[v] == unused {
			remap[v] = next
			next++
		}
	}
	for v := range remap {
		if remap[v] == unused {
			remap[v] = next
			next++
		}
	}
	return remap
}

// VertexFetch reorders the vertex buffer into first-use order and rewrites
// the index buffer accordingly. Triangle content is unchanged.
func VertexFetch(m *mesh.Mesh) {
	remap := VertexFetchRemap(m.Indices, len(m.Vertices))
	m.Indices = mesh.RemapIndexBuffer(m.Indices, remap)
	m.Vertices = mesh.RemapVertexBuffer(m.Vertices, remap, len(m.Vertices))
}

// VertexFetchViaRemap produces the same result as VertexFetch but through
// the explicit remap-and-rewrite path, the way multi-stream vertex data
// has to be handled.
func VertexFetchViaRemap(m *mesh.Mesh) {
	remap := VertexFetchRemap(m.Indices, len(m.Vertices))
	indices := mesh.RemapIndexBuffer(m.Indices, remap)
	vertices := mesh.RemapVertexBuffer(m.Vertices, remap, len(m.Vertices))
	copy(m.Indices, indices)
	copy(m.Vertices, vertices)
}
