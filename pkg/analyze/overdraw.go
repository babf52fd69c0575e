package analyze

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshbench/pkg/mesh"
)

// overdrawViewport is the side length of the software rasterization target.
const overdrawViewport = 256

// OverdrawStats summarizes rasterized overdraw across three orthographic
// axis-aligned views.
type OverdrawStats struct {
	PixelsCovered int
	PixelsShaded  int
	// Overdraw is shaded fragments per covered pixel. 1.0 means no pixel
	// was shaded twice.
	Overdraw float64
}

// Overdraw software-rasterizes the mesh orthographically along each of the
// three principal axes, in index-buffer order, and reports how many
// fragments were shaded per covered pixel. Triangle submission order is
// what overdraw optimization rearranges, so this is the metric it moves.
func Overdraw(indices []uint32, vertices []mesh.Vertex) OverdrawStats {
	if len(indices) < 3 || len(vertices) == 0 {
		return OverdrawStats{}
	}

	lo := mgl32.Vec3{vertices[0].Position[0], vertices[0].Position[1], vertices[0].Position[2]}
	hi := lo
	for i := 1; i < len(vertices); i++ {
		p := mgl32.Vec3{vertices[i].Position[0], vertices[i].Position[1], vertices[i].Position[2]}
		for c := 0; c < 3; c++ {
			lo[c] = min32(lo[c], p[c])
			hi[c] = max32(hi[c], p[c])
		}
	}

	extent := max32(hi[0]-lo[0], max32(hi[1]-lo[1], hi[2]-lo[2]))
	if extent == 0 {
		return OverdrawStats{}
	}
	scale := float32(overdrawViewport-1) / extent

	var stats OverdrawStats
	zbuf := make([]float32, overdrawViewport*overdrawViewport)

	for axis := 0; axis < 3; axis++ {
		for i := range zbuf {
			zbuf[i] = float32(math.Inf(-1))
		}

		for t := 0; t+2 < len(indices); t += 3 {
			var u, v, d [3]float32
			for k := 0; k < 3; k++ {
				p := vertices[indices[t+k]].Position
				n := mgl32.Vec3{
					(p[0] - lo[0]) * scale,
					(p[1] - lo[1]) * scale,
					(p[2] - lo[2]) * scale,
				}
				// view along the axis: remaining two components become the
				// viewport plane, the dropped one becomes depth
				u[k] = n[(axis+1)%3]
				v[k] = n[(axis+2)%3]
				d[k] = n[axis]
			}
			rasterize(zbuf, u, v, d, &stats)
		}
	}

	if stats.PixelsCovered > 0 {
		stats.Overdraw = float64(stats.PixelsShaded) / float64(stats.PixelsCovered)
	}
	return stats
}

// rasterize shades one screen-space triangle into zbuf, counting shaded
// fragments and first-touch coverage.
func rasterize(zbuf []float32, u, v, d [3]float32, stats *OverdrawStats) {
	area := (u[1]-u[0])*(v[2]-v[0]) - (v[1]-v[0])*(u[2]-u[0])
	if area == 0 {
		return
	}
	if area < 0 {
		// both windings are visible in an orthographic debug view
		u[1], u[2] = u[2], u[1]
		v[1], v[2] = v[2], v[1]
		d[1], d[2] = d[2], d[1]
		area = -area
	}

	minX := clampPixel(min32(u[0], min32(u[1], u[2])))
	maxX := clampPixel(max32(u[0], max32(u[1], u[2])))
	minY := clampPixel(min32(v[0], min32(v[1], v[2])))
	maxY := clampPixel(max32(v[0], max32(v[1], v[2])))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := (u[1]-px)*(v[2]-py) - (v[1]-py)*(u[2]-px)
			w1 := (u[2]-px)*(v[0]-py) - (v[2]-py)*(u[0]-px)
			w2 := (u[0]-px)*(v[1]-py) - (v[0]-py)*(u[1]-px)
			// strictly interior samples only: a center exactly on a shared
			// edge must not be shaded by both neighbors
			if w0 <= 0 || w1 <= 0 || w2 <= 0 {
				continue
			}

			depth := (w0*d[0] + w1*d[1] + w2*d[2]) / area

			idx := y*overdrawViewport + x
			stats.PixelsShaded++
			if math.IsInf(float64(zbuf[idx]), -1) {
				stats.PixelsCovered++
			}
			if depth > zbuf[idx] {
				zbuf[idx] = depth
			}
		}
	}
}

func clampPixel(v float32) int {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i > overdrawViewport-1 {
		return overdrawViewport - 1
	}
	return i
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
