package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"cad-engine/internal/geom"
	"cad-engine/internal/model"
	"cad-engine/internal/naca"
)

// DefaultSlices is the default cylinder cross-section discretization.
const DefaultSlices = 32

// degenerateExtent is the smallest dimension treated as buildable for
// boolean work.
const degenerateExtent = 1e-6

// Box returns an axis-aligned box of the given extents centered at the
// local origin, with outward winding.
func Box(extents geom.Vec3) *Mesh {
	hx, hy, hz := extents[0]/2, extents[1]/2, extents[2]/2
	m := &Mesh{
		Vertices: []geom.Vec3{
			{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
			{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
		},
		Faces: []Tri{
			{0, 2, 1}, {0, 3, 2}, // -Z
			{4, 5, 6}, {4, 6, 7}, // +Z
			{0, 1, 5}, {0, 5, 4}, // -Y
			{2, 3, 7}, {2, 7, 6}, // +Y
			{0, 4, 7}, {0, 7, 3}, // -X
			{1, 2, 6}, {1, 6, 5}, // +X
		},
	}
	return m
}

// Cylinder returns a cylinder with its axis along local Z, centered at the
// origin. The circular base uses radius max(radiusX, radiusY) and is then
// scaled per axis, so an elliptical cross-section falls out of unequal
// radii. slices <= 2 falls back to DefaultSlices.
func Cylinder(radiusX, radiusY, height float32, slices int) *Mesh {
	if slices <= 2 {
		slices = DefaultSlices
	}
	r := math32.Max(radiusX, radiusY)
	hz := height / 2

	m := &Mesh{}
	// Bottom ring, then top ring, then the two cap centers.
	for _, z := range []float32{-hz, hz} {
		for k := 0; k < slices; k++ {
			a := 2 * math32.Pi * float32(k) / float32(slices)
			m.Vertices = append(m.Vertices, geom.Vec3{r * math32.Cos(a), r * math32.Sin(a), z})
		}
	}
	bottomCenter := len(m.Vertices)
	m.Vertices = append(m.Vertices, geom.Vec3{0, 0, -hz}, geom.Vec3{0, 0, hz})
	topCenter := bottomCenter + 1

	for k := 0; k < slices; k++ {
		b0, b1 := k, (k+1)%slices
		t0, t1 := slices+k, slices+(k+1)%slices
		// Side wall, outward.
		m.Faces = append(m.Faces, Tri{b0, b1, t1}, Tri{b0, t1, t0})
		// Caps: bottom faces -Z, top faces +Z.
		m.Faces = append(m.Faces, Tri{bottomCenter, b1, b0}, Tri{topCenter, t0, t1})
	}

	if r > 0 && (radiusX != r || radiusY != r) {
		m.Transform(geom.Scaling(radiusX/r, radiusY/r, 1))
	}
	return m
}

// HalfCylinder builds the cylinder and cuts it with the plane through its
// axis (keep x <= 0), capping the cut face — the boolean-difference shape
// whose front view is a rectangle. Degenerate inputs or an unclosable cut
// return a GeometryError; the materializer falls back to the uncut
// cylinder.
func HalfCylinder(radiusX, radiusY, height float32, slices int) (*Mesh, error) {
	if radiusX < degenerateExtent || radiusY < degenerateExtent || height < degenerateExtent {
		return nil, &GeometryError{
			Op:  "half-cylinder cut",
			Err: fmt.Errorf("degenerate cross-section (rx=%g, ry=%g, h=%g)", radiusX, radiusY, height),
		}
	}
	full := Cylinder(radiusX, radiusY, height, slices)
	half, err := ClipHalfSpace(full, geom.Vec3{1, 0, 0}, 0)
	if err != nil {
		return nil, err
	}
	if err := half.FixNormals(); err != nil {
		return nil, err
	}
	return half, nil
}

// AirfoilSheet extrudes the 2D NACA profile into a thin sheet along local Y
// (span): the profile lies in the X/Z plane, front face at y=-t/2, back at
// y=+t/2. The perimeter runs along the upper surface leading-to-trailing,
// then back along the reversed lower surface; each extrusion face is a fan
// from the perimeter's first vertex and side walls join the two rings.
// Winding is repaired afterwards so all normals point outward.
func AirfoilSheet(p model.AirfoilParams) (*Mesh, error) {
	curve, err := naca.Generate(p.Digits, p.ChordLength, p.Resolution)
	if err != nil {
		return nil, &GeometryError{Op: "airfoil curve", Err: err}
	}

	n := curve.Len()
	perimeter := 2 * n
	ht := p.SheetThickness / 2

	m := &Mesh{Vertices: make([]geom.Vec3, 0, 2*perimeter)}
	for _, y := range []float32{-ht, ht} {
		for i := 0; i < n; i++ {
			m.Vertices = append(m.Vertices, geom.Vec3{curve.XUpper[i], y, curve.YUpper[i]})
		}
		for i := n - 1; i >= 0; i-- {
			m.Vertices = append(m.Vertices, geom.Vec3{curve.XLower[i], y, curve.YLower[i]})
		}
	}

	// Front and back caps, fans from each ring's first vertex.
	for i := 0; i < perimeter-2; i++ {
		m.Faces = append(m.Faces, Tri{0, i + 2, i + 1})
		m.Faces = append(m.Faces, Tri{perimeter, perimeter + i + 1, perimeter + i + 2})
	}
	// Side walls around the full perimeter.
	for i := 0; i < perimeter; i++ {
		next := (i + 1) % perimeter
		v1, v2 := i, next
		v3, v4 := perimeter+i, perimeter+next
		m.Faces = append(m.Faces, Tri{v1, v3, v2}, Tri{v2, v3, v4})
	}

	if err := m.FixNormals(); err != nil {
		return nil, err
	}
	return m, nil
}
