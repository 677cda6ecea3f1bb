// Package mesh turns models into renderable vertex/face buffers. It holds
// the per-type builders, the half-space boolean used by the half-cylinder,
// and the materializer that applies pending operations and produces one
// world-space mesh per model.
package mesh

import (
	"errors"
	"fmt"

	"cad-engine/internal/geom"
)

// ErrUnsupportedType marks a model type with no materializer rule. The model
// stays in the scene; it just yields no mesh.
var ErrUnsupportedType = errors.New("unsupported model type")

// GeometryError is an internal mesh/boolean construction failure. It is
// always recovered locally via a type-specific fallback and never surfaces
// to the caller as a hard failure.
type GeometryError struct {
	Op  string
	Err error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s: %v", e.Op, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// Tri indexes three vertices, counter-clockwise when viewed from outside.
type Tri [3]int

// Mesh is a triangle soup: a vertex buffer and a face index buffer.
type Mesh struct {
	Vertices []geom.Vec3
	Faces    []Tri
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]geom.Vec3, len(m.Vertices)),
		Faces:    make([]Tri, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	return out
}

// Transform applies a homogeneous transform to every vertex in place.
func (m *Mesh) Transform(t geom.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = t.Apply(m.Vertices[i])
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() geom.AABB {
	if len(m.Vertices) == 0 {
		return geom.AABB{}
	}
	b := geom.AABB{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Expand(v)
	}
	return b
}

// FaceNormal returns the (unnormalized) normal of face i.
func (m *Mesh) FaceNormal(i int) geom.Vec3 {
	f := m.Faces[i]
	a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// SignedVolume returns the signed volume enclosed by the faces (divergence
// theorem). Positive means outward-consistent winding.
func (m *Mesh) SignedVolume() float32 {
	var v float32
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		v += a.Dot(b.Cross(c))
	}
	return v / 6
}

// edgeKey is an undirected edge between two vertex indices.
type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// FixNormals repairs face winding so every face points outward: adjacent
// faces are made orientation-consistent, then each connected component is
// flipped if its signed volume is negative. Fails on non-manifold edges
// (an edge shared by more than two faces).
func (m *Mesh) FixNormals() error {
	if len(m.Faces) == 0 {
		return nil
	}

	// Undirected edge -> up to two incident faces.
	edges := make(map[edgeKey][]int, len(m.Faces)*3/2)
	for fi, f := range m.Faces {
		for i := 0; i < 3; i++ {
			k := makeEdgeKey(f[i], f[(i+1)%3])
			edges[k] = append(edges[k], fi)
			if len(edges[k]) > 2 {
				return &GeometryError{Op: "fix normals", Err: fmt.Errorf("non-manifold edge %v", k)}
			}
		}
	}

	// sameDirection reports whether face fi traverses edge (a, b) in that order.
	sameDirection := func(fi, a, b int) bool {
		f := m.Faces[fi]
		for i := 0; i < 3; i++ {
			if f[i] == a && f[(i+1)%3] == b {
				return true
			}
		}
		return false
	}

	visited := make([]bool, len(m.Faces))
	for seed := range m.Faces {
		if visited[seed] {
			continue
		}
		// Orient one component by flood fill: neighbors must traverse the
		// shared edge in opposite directions.
		component := []int{seed}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			fi := queue[0]
			queue = queue[1:]
			f := m.Faces[fi]
			for i := 0; i < 3; i++ {
				a, b := f[i], f[(i+1)%3]
				for _, nb := range edges[makeEdgeKey(a, b)] {
					if nb == fi || visited[nb] {
						continue
					}
					if sameDirection(nb, a, b) {
						nf := m.Faces[nb]
						m.Faces[nb] = Tri{nf[0], nf[2], nf[1]}
					}
					visited[nb] = true
					component = append(component, nb)
					queue = append(queue, nb)
				}
			}
		}

		// Outward check per component: flip everything if it encloses
		// negative volume.
		var vol float32
		for _, fi := range component {
			f := m.Faces[fi]
			a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
			vol += a.Dot(b.Cross(c))
		}
		if vol < 0 {
			for _, fi := range component {
				f := m.Faces[fi]
				m.Faces[fi] = Tri{f[0], f[2], f[1]}
			}
		}
	}
	return nil
}

// CombineUnion merges meshes into a single solid by buffer concatenation.
// Scenes hold disjoint solids, for which concatenation is the boolean
// union; it is the fallback used when a single-solid export format is
// requested for a multi-mesh scene.
func CombineUnion(meshes []*Mesh) *Mesh {
	out := &Mesh{}
	for _, m := range meshes {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			out.Faces = append(out.Faces, Tri{f[0] + base, f[1] + base, f[2] + base})
		}
	}
	return out
}
