package analyze

// Memory model for vertex fetch: 64-byte cache lines, small FIFO of
// recently fetched lines.
const (
	fetchCacheLine = 64
	fetchCacheSize = 16
)

// FetchStats summarizes simulated vertex fetch bandwidth.
type FetchStats struct {
	BytesFetched int
	// Overfetch is bytes fetched over the ideal (each unique vertex
	// fetched exactly once). 1.0 is perfect.
	Overfetch float64
}

// VertexFetch simulates the memory traffic of fetching vertexSize-byte
// records through the index stream. Vertices laid out in access order
// share cache lines and score close to 1.0; scattered access refetches
// lines and scores higher.
func VertexFetch(indices []uint32, vertexCount, vertexSize int) FetchStats {
	if len(indices) == 0 || vertexCount == 0 {
		return FetchStats{}
	}

	cache := make([]int, fetchCacheSize) // line numbers, FIFO
	for i := range cache {
		cache[i] = -1
	}
	slot := 0

	fetched := 0
	for _, v := range indices {
		start := int(v) * vertexSize / fetchCacheLine
		end := (int(v)*vertexSize + vertexSize - 1) / fetchCacheLine

		for line := start; line <= end; line++ {
			hit := false
			for _, c := range cache {
				if c == line {
					hit = true
					break
				}
			}
			if !hit {
				fetched += fetchCacheLine
				cache[slot] = line
				slot = (slot + 1) % fetchCacheSize
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

	return FetchStats{
		BytesFetched: fetched,
		Overfetch:    float64(fetched) / float64(unique*vertexSize),
	}
}
