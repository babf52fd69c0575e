package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseOBJ reads a Wavefront OBJ triangle mesh. Faces with more than three
// corners are triangulated as a fan. The resulting mesh is indexed: byte-
// identical corners are collapsed through a vertex remap.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var positions, normals [][3]float32
	var texcoords [][2]float32
	var corners []Vertex

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: position: %w", lineno, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineno, err)
			}
			normals = append(normals, n)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineno)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord", lineno)
			}
			texcoords = append(texcoords, [2]float32{float32(u), float32(v)})
		case "f":
			refs := fields[1:]
			if len(refs) < 3 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineno)
			}
			face := make([]Vertex, len(refs))
			for i, ref := range refs {
				v, err := resolveCorner(ref, positions, normals, texcoords)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineno, err)
				}
				face[i] = v
			}
			// fan triangulation
			for i := 2; i < len(face); i++ {
				corners = append(corners, face[0], face[i-1], face[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	remap, unique := GenerateVertexRemap(corners)

	return &Mesh{
		Vertices: RemapVertexBuffer(corners, remap, unique),
		Indices:  RemapIndexBuffer(nil, remap),
	}, nil
}

// LoadOBJ parses an OBJ file from disk.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj file: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("bad float %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// resolveCorner turns an OBJ face reference (v, v/vt, v//vn, v/vt/vn) into
// a full vertex record. OBJ indices are 1-based; negative indices count
// back from the end of the respective list.
func resolveCorner(ref string, positions, normals [][3]float32, texcoords [][2]float32) (Vertex, error) {
	var v Vertex

	parts := strings.Split(ref, "/")
	pi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return v, fmt.Errorf("position ref %q: %w", ref, err)
	}
	v.Position = positions[pi]

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(texcoords))
		if err != nil {
			return v, fmt.Errorf("texcoord ref %q: %w", ref, err)
		}
		v.TexCoord = texcoords[ti]
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return v, fmt.Errorf("normal ref %q: %w", ref, err)
		}
		v.Normal = normals[ni]
	}
	return v, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, fmt.Errorf("index %d out of range (count %d)", n, count)
	}
}
