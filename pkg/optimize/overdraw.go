package optimize

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshbench/pkg/mesh"
)

// overdrawClusterSize bounds how many triangles share one sort unit. Small
// clusters sort better, large clusters keep more of the cache order intact.
const overdrawClusterSize = 64

// Overdraw returns a transform that reorders triangles to reduce overdraw
// while giving up at most the threshold factor of vertex cache efficiency.
// A threshold of 1.05 allows the cache-optimized ACMR to degrade by 5%.
func Overdraw(threshold float64) Transform {
	return func(m *mesh.Mesh) {
		OptimizeOverdraw(m.Indices, m.Vertices, threshold)
	}
}

// Complete runs the full pipeline: vertex cache, then overdraw on top of
// the cached order, then vertex fetch.
func Complete(m *mesh.Mesh) {
	OptimizeVertexCache(m.Indices, len(m.Vertices), defaultCacheSize)
	OptimizeOverdraw(m.Indices, m.Vertices, 1.05)
	VertexFetch(m)
}

type overdrawCluster struct {
	first int // triangle index of the cluster start
	count int
	order float32
}

// OptimizeOverdraw reorders indices in place so that clusters of triangles
// facing away from the mesh interior draw first. The input order is assumed
// cache-optimized; clustering keeps runs of it together so the cache win is
// mostly preserved, which is what the threshold argument trades against.
func OptimizeOverdraw(indices []uint32, vertices []mesh.Vertex, threshold float64) {
	triangleCount := len(indices) / 3
	if triangleCount == 0 || len(vertices) == 0 {
		return
	}

	clusterSize := overdrawClusterSize
	if threshold > 1 {
		// a looser cache budget affords finer clusters
		clusterSize = int(float64(overdrawClusterSize) / threshold)
		if clusterSize < 4 {
			clusterSize = 4
		}
	}

	meshCentroid := centroid(vertices)

	clusters := make([]overdrawCluster, 0, triangleCount/clusterSize+1)
	for first := 0; first < triangleCount; first += clusterSize {
		count := clusterSize
		if first+count > triangleCount {
			count = triangleCount - first
		}

		var sum mgl32.Vec3
		var normal mgl32.Vec3
		for t := first; t < first+count; t++ {
			a := position(vertices[indices[t*3+0]])
			b := position(vertices[indices[t*3+1]])
			c := position(vertices[indices[t*3+2]])
			sum = sum.Add(a).Add(b).Add(c)
			normal = normal.Add(b.Sub(a).Cross(c.Sub(a)))
		}
		center := sum.Mul(1 / float32(count*3))

		// clusters whose area-weighted normal points away from the mesh
		// center occlude the interior and should draw first
		order := normal.Dot(center.Sub(meshCentroid))
		clusters = append(clusters, overdrawCluster{first: first, count: count, order: order})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].order > clusters[j].order
	})

	output := make([]uint32, 0, len(indices))
	for _, c := range clusters {
		output = append(output, indices[c.first*3:(c.first+c.count)*3]...)
	}
	copy(indices, output)
}

func centroid(vertices []mesh.Vertex) mgl32.Vec3 {
	var sum mgl32.Vec3
	for i := range vertices {
		sum = sum.Add(position(vertices[i]))
	}
	return sum.Mul(1 / float32(len(vertices)))
}

func position(v mesh.Vertex) mgl32.Vec3 {
	return mgl32.Vec3{v.Position[0], v.Position[1], v.Position[2]}
}
