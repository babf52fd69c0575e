package optimize

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshbench/pkg/mesh"
)

// Meshlet is a contiguous group of triangles referencing a small local
// vertex set, sized for mesh-shader style dispatch.
type Meshlet struct {
	// Vertices maps local indices to mesh vertex indices.
	Vertices []uint32
	// Triangles holds local indices, three per triangle.
	Triangles []uint8
}

// MeshletBounds is a culling volume for one meshlet: a bounding sphere plus
// a normal cone. A meshlet whose cone points entirely away from the viewer
// can be rejected without rasterizing it.
type MeshletBounds struct {
	Center     mgl32.Vec3
	Radius     float32
	ConeAxis   mgl32.Vec3
	ConeCutoff float32
}

// BuildMeshlets splits the index buffer into meshlets, scanning triangles
// in order and starting a new meshlet whenever the vertex or triangle limit
// would be exceeded. Every input triangle lands in exactly one meshlet.
// maxVertices must be at most 256 since triangle indices are local bytes.
func BuildMeshlets(indices []uint32, maxVertices, maxTriangles int) []Meshlet {
	if len(indices) == 0 {
		return nil
	}

	var meshlets []Meshlet
	current := Meshlet{}
	local := make(map[uint32]uint8, maxVertices)

	flush := func() {
		if len(current.Triangles) > 0 {
			meshlets = append(meshlets, current)
		}
		current = Meshlet{}
		local = make(map[uint32]uint8, maxVertices)
	}

	for t := 0; t+2 < len(indices); t += 3 {
		tri := indices[t : t+3]

		fresh := 0
		for _, v := range tri {
			if _, ok := local[v]; !ok {
				fresh++
			}
		}
		if len(current.Vertices)+fresh > maxVertices || len(current.Triangles)/3+1 > maxTriangles {
			flush()
		}

		for _, v := range tri {
			idx, ok := local[v]
			if !ok {
				idx = uint8(len(current.Vertices))
				local[v] = idx
				current.Vertices = append(current.Vertices, v)
			}
			current.Triangles = append(current.Triangles, idx)
		}
	}
	flush()
	return meshlets
}

// ComputeMeshletBounds derives the bounding sphere and normal cone of one
// meshlet against the mesh vertex buffer it indexes into.
func ComputeMeshletBounds(m Meshlet, vertices []mesh.Vertex) MeshletBounds {
	var b MeshletBounds
	if len(m.Vertices) == 0 {
		return b
	}

	// sphere: centroid of the meshlet's vertices, radius to the farthest
	var sum mgl32.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(position(vertices[v]))
	}
	b.Center = sum.Mul(1 / float32(len(m.Vertices)))
	for _, v := range m.Vertices {
		if d := position(vertices[v]).Sub(b.Center).Len(); d > b.Radius {
			b.Radius = d
		}
	}

	// cone: average of the triangle normals, cutoff from the worst one
	var axis mgl32.Vec3
	normals := make([]mgl32.Vec3, 0, len(m.Triangles)/3)
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a := position(vertices[m.Vertices[m.Triangles[t+0]]])
		p := position(vertices[m.Vertices[m.Triangles[t+1]]])
		q := position(vertices[m.Vertices[m.Triangles[t+2]]])
		n := p.Sub(a).Cross(q.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
			normals = append(normals, n)
			axis = axis.Add(n)
		}
	}

	if l := axis.Len(); l > 0 {
		axis = axis.Mul(1 / l)
	}
	b.ConeAxis = axis

	minDot := float32(1)
	for _, n := range normals {
		if d := n.Dot(axis); d < minDot {
			minDot = d
		}
	}
	if len(normals) == 0 || minDot <= 0 {
		// the cone spans a hemisphere or more and cannot cull anything
		b.ConeCutoff = 1
	} else {
		b.ConeCutoff = float32(math.Sqrt(float64(1 - minDot*minDot)))
	}
	return b
}
