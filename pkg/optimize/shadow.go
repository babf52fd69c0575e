package optimize

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/meshbench/pkg/mesh"
)

// ShadowIndexBuffer builds an index buffer for depth-only rendering: every
// index is replaced by the first index whose vertex has a bit-identical
// position, collapsing vertices that differ only in normal or texture
// coordinates. The vertex buffer is left untouched so both buffers can
// share it.
func ShadowIndexBuffer(indices []uint32, vertices []mesh.Vertex) []uint32 {
	canonical := make(map[[12]byte]uint32, len(vertices))
	remap := make([]uint32, len(vertices))

	for i := range vertices {
		var key [12]byte
		for c := 0; c < 3; c++ {
			binary.LittleEndian.PutUint32(key[c*4:], math.Float32bits(vertices[i].Position[c]))
		}
		if first, ok := canonical[key]; ok {
			remap[i] = first
		} else {
			canonical[key] = uint32(i)
			remap[i] = uint32(i)
		}
	}

	shadow := make([]uint32, len(indices))
	for i, v := range indices {
		shadow[i] = remap[v]
	}
	return shadow
}
