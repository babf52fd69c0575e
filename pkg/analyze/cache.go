// Package analyze computes diagnostic GPU efficiency statistics for
// triangle meshes: vertex cache behavior, vertex fetch bandwidth, and
// rasterized overdraw. The numbers are model-based and for reporting only;
// they carry no correctness verdict.
package analyze

// CacheStats summarizes a simulated vertex cache run.
type CacheStats struct {
	VerticesTransformed int
	// ACMR is transformed vertices per triangle (ideal 0.5, worst 3.0).
	ACMR float64
	// ATVR is transformed vertices per unique referenced vertex (ideal 1.0).
	ATVR float64
}

// VertexCache simulates a FIFO vertex cache of the given size over the
// index stream. warpSize > 0 models a GPU that flushes the cache after
// that many transformed vertices per warp; primGroupSize > 0 additionally
// forces a warp break every primGroupSize triangles (AMD-style primitive
// groups).
func VertexCache(indices []uint32, vertexCount, cacheSize, warpSize, primGroupSize int) CacheStats {
	if len(indices) == 0 || vertexCount == 0 {
		return CacheStats{}
	}

	// timestamped FIFO: a vertex is cached while fewer than cacheSize
	// vertices were transformed after it
	stamps := make([]int, vertexCount)
	time := cacheSize + 1

	transformed := 0
	warpUsed := 0

	triangleCount := len(indices) / 3
	for t := 0; t < triangleCount; t++ {
		if primGroupSize > 0 && t > 0 && t%primGroupSize == 0 {
			// new primitive group starts a fresh warp
			time += cacheSize + 1
			warpUsed = 0
		}

		misses := 0
		for k := 0; k < 3; k++ {
			v := indices[t*3+k]
			if time-stamps[v] > cacheSize {
				misses++
			}
		}

		if warpSize > 0 && warpUsed+misses > warpSize {
			// warp is full; the next warp starts with a cold cache
			time += cacheSize + 1
			warpUsed = 0
		}

		for k := 0; k < 3; k++ {
			v := indices[t*3+k]
			if time-stamps[v] > cacheSize {
				stamps[v] = time
				time++
				transformed++
				warpUsed++
			}
		}
	}

	unique := 0
	seen := make([]bool, vertexCount)
	for _, v := range indices {
		if !seen[v] {
			seen[v] = true
			unique++
		}
	}

	return CacheStats{
		VerticesTransformed: transformed,
		ACMR:                float64(transformed) / float64(triangleCount),
		ATVR:                float64(transformed) / float64(unique),
	}
}
