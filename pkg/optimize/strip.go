package optimize

// Triangle strips with degenerate-join restarts. A strip index buffer
// encodes triangle i as (s[i], s[i+1], s[i+2]) for even i and
// (s[i+1], s[i], s[i+2]) for odd i; windows with a repeated index encode
// no triangle. Strips are joined by duplicating the last index of one
// strip and the first of the next, with one extra duplicate when needed
// so every strip restarts on an even window.

type stripEdge struct {
	a, b uint32
}

// Stripify converts a triangle list into a single joined triangle strip.
// Degenerate input triangles carry no surface and are dropped. The result
// decodes via Unstripify into the same set of non-degenerate triangles.
func Stripify(indices []uint32) []uint32 {
	triangleCount := len(indices) / 3

	// directed half-edge -> triangles containing it, for winding-correct
	// strip continuation
	edges := make(map[stripEdge][]int, triangleCount*3)
	for t := 0; t < triangleCount; t++ {
		a, b, c := indices[t*3], indices[t*3+1], indices[t*3+2]
		if a == b || a == c || b == c {
			continue
		}
		edges[stripEdge{a, b}] = append(edges[stripEdge{a, b}], t)
		edges[stripEdge{b, c}] = append(edges[stripEdge{b, c}], t)
		edges[stripEdge{c, a}] = append(edges[stripEdge{c, a}], t)
	}

	emitted := make([]bool, triangleCount)
	strip := make([]uint32, 0, len(indices))

	for t := 0; t < triangleCount; t++ {
		a, b, c := indices[t*3], indices[t*3+1], indices[t*3+2]
		if emitted[t] || a == b || a == c || b == c {
			continue
		}
		emitted[t] = true

		if len(strip) > 0 {
			last := strip[len(strip)-1]
			if len(strip)%2 == 1 {
				strip = append(strip, last)
			}
			strip = append(strip, last, a)
		}
		strip = append(strip, a, b, c)

		// extend while an unemitted neighbor shares the open edge in the
		// orientation the next window requires
		for {
			u, v := strip[len(strip)-2], strip[len(strip)-1]
			window := len(strip) - 2

			want := stripEdge{u, v}
			if window%2 == 1 {
				want = stripEdge{v, u}
			}

			next := -1
			for _, cand := range edges[want] {
				if !emitted[cand] {
					next = cand
					break
				}
			}
			if next < 0 {
				break
			}
			emitted[next] = true
			strip = append(strip, thirdVertex(indices[next*3:next*3+3], want))
		}
	}
	return strip
}

// thirdVertex returns the triangle corner opposite the given directed edge.
func thirdVertex(tri []uint32, e stripEdge) uint32 {
	for k := 0; k < 3; k++ {
		if tri[k] == e.a && tri[(k+1)%3] == e.b {
			return tri[(k+2)%3]
		}
	}
	return tri[0]
}

// Unstripify expands a triangle strip back into a triangle list, skipping
// degenerate windows and restoring winding on odd windows.
func Unstripify(strip []uint32) []uint32 {
	if len(strip) < 3 {
		return nil
	}

	indices := make([]uint32, 0, (len(strip)-2)*3)
	for i := 0; i+2 < len(strip); i++ {
		a, b, c := strip[i], strip[i+1], strip[i+2]
		if a == b || a == c || b == c {
			continue
		}
		if i%2 == 1 {
			a, b = b, a
		}
		indices = append(indices, a, b, c)
	}
	return indices
}
