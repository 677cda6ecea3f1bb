package mesh

import (
	"fmt"

	"cad-engine/internal/geom"
)

// planeEps is the tolerance band around the cutting plane; vertices within
// it count as kept so triangles touching the plane do not sliver.
const planeEps = 1e-6

// ClipHalfSpace returns the part of m where dot(v, normal) <= offset,
// closing the cut with planar caps. The cutting solid in the boolean
// formulation is a large axis-offset box; since that box covers the whole
// removed side, the difference reduces to this single plane clip. Fails
// with a GeometryError when the cut boundary does not chain into closed
// loops (degenerate or numerically unstable input).
func ClipHalfSpace(m *Mesh, normal geom.Vec3, offset float32) (*Mesh, error) {
	dist := make([]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		dist[i] = v.Dot(normal) - offset
	}

	out := &Mesh{}
	remap := make(map[int]int, len(m.Vertices))
	keepVertex := func(i int) int {
		if ni, ok := remap[i]; ok {
			return ni
		}
		ni := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices[i])
		remap[i] = ni
		return ni
	}
	// Intersection points are shared between the two triangles on an edge.
	cuts := make(map[edgeKey]int)
	cutVertex := func(a, b int) int {
		k := makeEdgeKey(a, b)
		if ni, ok := cuts[k]; ok {
			return ni
		}
		w := dist[a] / (dist[a] - dist[b])
		va, vb := m.Vertices[a], m.Vertices[b]
		p := va.Add(vb.Sub(va).Scale(w))
		ni := len(out.Vertices)
		out.Vertices = append(out.Vertices, p)
		cuts[k] = ni
		return ni
	}

	// Directed boundary segments of the kept surface, lying on the plane.
	type segment struct{ from, to int }
	var boundary []segment

	for _, f := range m.Faces {
		inside := 0
		for _, vi := range f {
			if dist[vi] <= planeEps {
				inside++
			}
		}
		if inside == 3 {
			out.Faces = append(out.Faces, Tri{keepVertex(f[0]), keepVertex(f[1]), keepVertex(f[2])})
			continue
		}
		if inside == 0 {
			continue
		}

		// Sutherland-Hodgman on one triangle: polygon winding is preserved,
		// so the plane-resident edge of the clipped polygon is a directed
		// boundary segment.
		var poly []int
		exit, entry := -1, -1
		for i := 0; i < 3; i++ {
			cur, next := f[i], f[(i+1)%3]
			curIn := dist[cur] <= planeEps
			nextIn := dist[next] <= planeEps
			if curIn {
				poly = append(poly, keepVertex(cur))
			}
			if curIn != nextIn {
				ci := cutVertex(cur, next)
				poly = append(poly, ci)
				if curIn {
					exit = ci
				} else {
					entry = ci
				}
			}
		}
		if len(poly) < 3 {
			continue
		}
		for i := 1; i < len(poly)-1; i++ {
			out.Faces = append(out.Faces, Tri{poly[0], poly[i], poly[i+1]})
		}
		if exit >= 0 && entry >= 0 && exit != entry {
			boundary = append(boundary, segment{from: exit, to: entry})
		}
	}

	if len(out.Faces) == 0 {
		return nil, &GeometryError{Op: "half-space clip", Err: fmt.Errorf("clip removed every face")}
	}
	if len(boundary) == 0 {
		// Nothing was cut; the mesh was already inside the half-space.
		return out, nil
	}

	// Chain directed segments into closed loops and cap each one. The cap
	// reverses the boundary direction so shared edges oppose the walls.
	next := make(map[int]int, len(boundary))
	for _, s := range boundary {
		if _, dup := next[s.from]; dup {
			return nil, &GeometryError{Op: "half-space clip", Err: fmt.Errorf("branching cut boundary at vertex %d", s.from)}
		}
		next[s.from] = s.to
	}
	for len(next) > 0 {
		var start int
		for k := range next {
			start = k
			break
		}
		loop := []int{start}
		at := next[start]
		for at != start {
			loop = append(loop, at)
			if len(loop) > len(boundary) {
				return nil, &GeometryError{Op: "half-space clip", Err: fmt.Errorf("cut boundary does not close")}
			}
			nxt, ok := next[at]
			if !ok {
				return nil, &GeometryError{Op: "half-space clip", Err: fmt.Errorf("open cut boundary at vertex %d", at)}
			}
			at = nxt
		}
		for _, v := range loop {
			delete(next, v)
		}
		if len(loop) < 3 {
			continue
		}
		for i := 1; i < len(loop)-1; i++ {
			out.Faces = append(out.Faces, Tri{loop[0], loop[i+1], loop[i]})
		}
	}
	return out, nil
}
