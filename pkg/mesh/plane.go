package mesh

// GeneratePlane builds an (n+1)x(n+1) vertex grid tessellated into 2*n*n
// triangles, facing +Z. Useful as a deterministic benchmark input when no
// model file is given.
func GeneratePlane(n int) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, (n+1)*(n+1)),
		Indices:  make([]uint32, 0, n*n*6),
	}

	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{float32(x), float32(y), 0},
				Normal:   [3]float32{0, 0, 1},
				TexCoord: [2]float32{float32(x) / float32(n), float32(y) / float32(n)},
			})
		}
	}

	stride := uint32(n + 1)
	for y := uint32(0); y < uint32(n); y++ {
		for x := uint32(0); x < uint32(n); x++ {
			m.Indices = append(m.Indices,
				(y+0)*stride+(x+0),
				(y+0)*stride+(x+1),
				(y+1)*stride+(x+0),

				(y+1)*stride+(x+0),
				(y+0)*stride+(x+1),
				(y+1)*stride+(x+1),
			)
		}
	}

	return m
}
