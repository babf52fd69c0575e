package quantize

import (
	"encoding/binary"

	"github.com/Faultbox/meshbench/pkg/mesh"
)

// PackedVertex is a compact vertex record: half-float position padded to a
// 4-byte boundary, 8-bit signed-normalized normal, half-float texcoords.
type PackedVertex struct {
	PX, PY, PZ uint16
	PW         uint16 // padding to 4b boundary
	NX, NY, NZ int8
	NW         int8
	TX, TY     uint16
}

// PackedVertexSize is the serialized size of PackedVertex in bytes.
const PackedVertexSize = 16

// PackedVertexOct is a PackedVertex variant with the normal mapped to a
// 2-component octahedral projection, saving the padding bytes.
type PackedVertexOct struct {
	PX, PY, PZ uint16
	NU, NV     int8 // octahedron encoded normal, aliases PW
	TX, TY     uint16
}

// PackedVertexOctSize is the serialized size of PackedVertexOct in bytes.
const PackedVertexOctSize = 12

// Pack quantizes a full-precision vertex into a PackedVertex.
func Pack(v *mesh.Vertex) PackedVertex {
	return PackedVertex{
		PX: Half(v.Position[0]),
		PY: Half(v.Position[1]),
		PZ: Half(v.Position[2]),
		NX: int8(Snorm(v.Normal[0], 8)),
		NY: int8(Snorm(v.Normal[1], 8)),
		NZ: int8(Snorm(v.Normal[2], 8)),
		TX: Half(v.TexCoord[0]),
		TY: Half(v.TexCoord[1]),
	}
}

// PackOct quantizes a full-precision vertex into a PackedVertexOct. The
// normal is projected onto the octahedron |x|+|y|+|z| = 1; the lower
// hemisphere folds across the diagonal.
func PackOct(v *mesh.Vertex) PackedVertexOct {
	nx, ny, nz := v.Normal[0], v.Normal[1], v.Normal[2]

	nsum := abs(nx) + abs(ny) + abs(nz)
	if nsum != 0 {
		nx /= nsum
		ny /= nsum
	}

	nu, nv := nx, ny
	if nz < 0 {
		nu = (1 - abs(ny)) * sign(nx)
		nv = (1 - abs(nx)) * sign(ny)
	}

	return PackedVertexOct{
		PX: Half(v.Position[0]),
		PY: Half(v.Position[1]),
		PZ: Half(v.Position[2]),
		NU: int8(Snorm(nu, 8)),
		NV: int8(Snorm(nv, 8)),
		TX: Half(v.TexCoord[0]),
		TY: Half(v.TexCoord[1]),
	}
}

// PackVertices packs a whole vertex buffer.
func PackVertices(vertices []mesh.Vertex) []PackedVertex {
	out := make([]PackedVertex, len(vertices))
	for i := range vertices {
		out[i] = Pack(&vertices[i])
	}
	return out
}

// PackVerticesOct packs a whole vertex buffer with octahedral normals.
func PackVerticesOct(vertices []mesh.Vertex) []PackedVertexOct {
	out := make([]PackedVertexOct, len(vertices))
	for i := range vertices {
		out[i] = PackOct(&vertices[i])
	}
	return out
}

// Bytes serializes packed vertices into the little-endian layout the
// vertex codec consumes, PackedVertexSize bytes per record.
func Bytes(pv []PackedVertex) []byte {
	out := make([]byte, 0, len(pv)*PackedVertexSize)
	for i := range pv {
		p := &pv[i]
		out = binary.LittleEndian.AppendUint16(out, p.PX)
		out = binary.LittleEndian.AppendUint16(out, p.PY)
		out = binary.LittleEndian.AppendUint16(out, p.PZ)
		out = binary.LittleEndian.AppendUint16(out, p.PW)
		out = append(out, byte(p.NX), byte(p.NY), byte(p.NZ), byte(p.NW))
		out = binary.LittleEndian.AppendUint16(out, p.TX)
		out = binary.LittleEndian.AppendUint16(out, p.TY)
	}
	return out
}

// BytesOct serializes octahedral packed vertices, PackedVertexOctSize
// bytes per record.
func BytesOct(pv []PackedVertexOct) []byte {
	out := make([]byte, 0, len(pv)*PackedVertexOctSize)
	for i := range pv {
		p := &pv[i]
		out = binary.LittleEndian.AppendUint16(out, p.PX)
		out = binary.LittleEndian.AppendUint16(out, p.PY)
		out = binary.LittleEndian.AppendUint16(out, p.PZ)
		out = append(out, byte(p.NU), byte(p.NV))
		out = binary.LittleEndian.AppendUint16(out, p.TX)
		out = binary.LittleEndian.AppendUint16(out, p.TY)
	}
	return out
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float32) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}
