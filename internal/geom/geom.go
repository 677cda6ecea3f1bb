// Package geom holds the small vector/matrix toolkit shared by the geometry
// builders and the materializer. All values are float32; angles at package
// boundaries are degrees, positive right-handed about each axis.
package geom

import (
	"github.com/chewxy/math32"
)

// Vec3 is an xyz triple. Index 0=X (chord/length), 1=Y (span/width), 2=Z (height).
type Vec3 [3]float32

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Mat4 is a row-major 4×4 homogeneous transform.
type Mat4 [4][4]float32

// Identity returns the identity transform.
func Identity() Mat4 {
	var m Mat4
	m[0][0], m[1][1], m[2][2], m[3][3] = 1, 1, 1, 1
	return m
}

// Mul returns m·o (apply o first, then m).
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply transforms the point v by m (w assumed 1).
func (m Mat4) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2] + m[0][3],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2] + m[1][3],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2] + m[2][3],
	}
}

// RotationX returns the rotation about the X axis by the given angle in degrees.
func RotationX(deg float32) Mat4 {
	c, s := math32.Cos(Radians(deg)), math32.Sin(Radians(deg))
	m := Identity()
	m[1][1], m[1][2] = c, -s
	m[2][1], m[2][2] = s, c
	return m
}

// RotationY returns the rotation about the Y axis by the given angle in degrees.
func RotationY(deg float32) Mat4 {
	c, s := math32.Cos(Radians(deg)), math32.Sin(Radians(deg))
	m := Identity()
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return m
}

// RotationZ returns the rotation about the Z axis by the given angle in degrees.
func RotationZ(deg float32) Mat4 {
	c, s := math32.Cos(Radians(deg)), math32.Sin(Radians(deg))
	m := Identity()
	m[0][0], m[0][1] = c, -s
	m[1][0], m[1][1] = s, c
	return m
}

// Compose returns the world transform for a pose: R = Rz(roll)·Ry(yaw)·Rx(pitch)
// with the given translation. This composition order is fixed across the engine.
func Compose(position Vec3, pitchDeg, yawDeg, rollDeg float32) Mat4 {
	m := RotationZ(rollDeg).Mul(RotationY(yawDeg)).Mul(RotationX(pitchDeg))
	m[0][3] = position[0]
	m[1][3] = position[1]
	m[2][3] = position[2]
	return m
}

// Scaling returns a non-uniform scale transform.
func Scaling(sx, sy, sz float32) Mat4 {
	m := Identity()
	m[0][0], m[1][1], m[2][2] = sx, sy, sz
	return m
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Extents returns Max - Min per axis.
func (b AABB) Extents() Vec3 {
	return b.Max.Sub(b.Min)
}

// Expand grows the box to include p.
func (b *AABB) Expand(p Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
