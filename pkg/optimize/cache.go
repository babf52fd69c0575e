package optimize

import "github.com/Faultbox/meshbench/pkg/mesh"

// defaultCacheSize matches the post-transform cache model most hardware
// approximates; the FIFO variant takes the size explicitly.
const defaultCacheSize = 16

// VertexCache reorders the index buffer for vertex cache locality using
// the default cache model.
func VertexCache(m *mesh.Mesh) {
	OptimizeVertexCache(m.Indices, len(m.Vertices), defaultCacheSize)
}

// VertexCacheFIFO returns a transform that optimizes for an explicitly
// sized FIFO cache.
func VertexCacheFIFO(cacheSize int) Transform {
	return func(m *mesh.Mesh) {
		OptimizeVertexCache(m.Indices, len(m.Vertices), cacheSize)
	}
}

// OptimizeVertexCache reorders indices in place for a FIFO vertex cache of
// the given size (tipsify-style greedy fanning with dead-end recovery).
// The triangle multiset is preserved exactly; only order changes.
func OptimizeVertexCache(indices []uint32, vertexCount, cacheSize int) {
	if len(indices) == 0 || vertexCount == 0 {
		return
	}

	triangleCount := len(indices) / 3

	// per-vertex triangle adjacency
	counts := make([]uint32, vertexCount)
	for _, v := range indices {
		counts[v]++
	}
	offsets := make([]uint32, vertexCount)
	var run uint32
	for v := range offsets {
		offsets[v] = run
		run += counts[v]
	}
	adjacency := make([]uint32, len(indices))
	fill := make([]uint32, vertexCount)
	copy(fill, offsets)
	for t := 0; t < triangleCount; t++ {
		for k := 0; k < 3; k++ {
			v := indices[t*3+k]
			adjacency[fill[v]] = uint32(t)
			fill[v]++
		}
	}

	liveTriangles := make([]uint32, vertexCount)
	copy(liveTriangles, counts)
	emitted := make([]bool, triangleCount)
	stamps := make([]int, vertexCount)
	time := cacheSize + 1

	output := make([]uint32, 0, len(indices))
	deadEnd := make([]uint32, 0, len(indices))
	candidates := make([]uint32, 0, 16)

	cursor := 0
	fanning := 0

	for fanning >= 0 {
		candidates = candidates[:0]

		// emit every live triangle around the fanning vertex
		v := uint32(fanning)
		for _, t := range adjacency[offsets[v] : offsets[v]+counts[v]] {
			if emitted[t] {
				continue
			}
			emitted[t] = true

			for k := 0; k < 3; k++ {
				c := indices[int(t)*3+k]
				output = append(output, c)
				deadEnd = append(deadEnd, c)
				candidates = append(candidates, c)
				liveTriangles[c]--
				if time-stamps[c] > cacheSize {
					stamps[c] = time
					time++
				}
			}
		}

		// pick the next fanning vertex from the just-touched 1-ring,
		// preferring vertices that will still be cached after their
		// remaining triangles are emitted
		fanning = -1
		bestPriority := -1
		for _, c := range candidates {
			if liveTriangles[c] == 0 {
				continue
			}
			priority := 0
			if position := time - stamps[c]; position+2*int(liveTriangles[c]) <= cacheSize {
				priority = position
			}
			if priority > bestPriority {
				bestPriority = priority
				fanning = int(c)
			}
		}

		if fanning < 0 {
			fanning = skipDeadEnd(&deadEnd, liveTriangles, &cursor)
		}
	}

	copy(indices, output)
}

// skipDeadEnd recovers a fanning vertex after the greedy walk runs out:
// first from recently touched vertices, then by scanning the buffer.
func skipDeadEnd(deadEnd *[]uint32, liveTriangles []uint32, cursor *int) int {
	stack := *deadEnd
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if liveTriangles[v] > 0 {
			*deadEnd = stack
			return int(v)
		}
	}
	*deadEnd = stack

	for *cursor < len(liveTriangles) {
		if liveTriangles[*cursor] > 0 {
			return *cursor
		}
		*cursor++
	}
	return -1
}
