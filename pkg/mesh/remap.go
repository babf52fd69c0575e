package mesh

// GenerateVertexRemap builds a remap table that collapses byte-identical
// vertices. remap[i] is the new index of source vertex i; new indices are
// assigned in order of first appearance. The second result is the unique
// vertex count.
func GenerateVertexRemap(vertices []Vertex) ([]uint32, int) {
	remap := make([]uint32, len(vertices))
	seen := make(map[[VertexSize]byte]uint32, len(vertices))

	var next uint32
	var key [VertexSize]byte
	for i := range vertices {
		AppendVertexBytes(key[:0], &vertices[i])
		idx, ok := seen[key]
		if !ok {
			idx = next
			seen[key] = idx
			next++
		}
		remap[i] = idx
	}
	return remap, int(next)
}

// RemapIndexBuffer rewrites an index buffer through a remap table. A nil
// indices slice stands for the identity sequence 0..len(remap)-1, which is
// what a freshly triangulated (unindexed) mesh uses.
func RemapIndexBuffer(indices, remap []uint32) []uint32 {
	if indices == nil {
		out := make([]uint32, len(remap))
		for i := range remap {
			out[i] = remap[i]
		}
		return out
	}
	out := make([]uint32, len(indices))
	for i, idx := range indices {
		out[i] = remap[idx]
	}
	return out
}

// RemapVertexBuffer reorders a vertex buffer through a remap table,
// producing uniqueCount vertices. When several source vertices share a
// target slot they are byte-identical, so last-write-wins is safe.
func RemapVertexBuffer(vertices []Vertex, remap []uint32, uniqueCount int) []Vertex {
	out := make([]Vertex, uniqueCount)
	for i := range vertices {
		out[remap[i]] = vertices[i]
	}
	return out
}
