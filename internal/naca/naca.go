// Package naca computes NACA 4-digit airfoil surface coordinates.
// Pure math, no state. The curve lives in the chord/thickness plane:
// X along the chord, Y the profile height; the 3D sheet is assembled
// by the mesh package.
package naca

import (
	"fmt"

	"github.com/chewxy/math32"
)

// MinResolution is the smallest usable station count for a curve.
const MinResolution = 3

// Params are the decoded fields of a 4-digit designation MPXX.
type Params struct {
	MaxCamber      float32 // m: maximum camber as a fraction of chord
	CamberPosition float32 // p: chordwise location of maximum camber, fraction of chord
	ThicknessRatio float32 // t: maximum thickness as a fraction of chord
}

// Parse decodes a 4-digit designation (e.g. "0012", "2412").
// Anything but exactly four numeric characters is rejected.
func Parse(digits string) (Params, error) {
	if len(digits) != 4 {
		return Params{}, fmt.Errorf("naca designation %q: want exactly 4 digits", digits)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Params{}, fmt.Errorf("naca designation %q: non-numeric character", digits)
		}
	}
	m := float32(digits[0]-'0') / 100
	p := float32(digits[1]-'0') / 10
	t := float32((digits[2]-'0')*10+(digits[3]-'0')) / 100
	return Params{MaxCamber: m, CamberPosition: p, ThicknessRatio: t}, nil
}

// Curve holds the sampled airfoil surfaces, leading edge to trailing edge.
// All slices have the same length. X are the chordwise stations of the
// camber line; the upper/lower surfaces are offset normal to it, so their
// x coordinates differ slightly from X on cambered sections.
type Curve struct {
	X      []float32
	XUpper []float32
	YUpper []float32
	XLower []float32
	YLower []float32
}

// Len returns the number of stations.
func (c *Curve) Len() int { return len(c.X) }

// Generate samples the airfoil given by digits at resolution stations along
// a chord of the given length. Stations use cosine spacing so points cluster
// at the leading and trailing edges. m=0 or t=0 are degenerate but valid
// (symmetric or infinitely thin sections).
func Generate(digits string, chord float32, resolution int) (*Curve, error) {
	prm, err := Parse(digits)
	if err != nil {
		return nil, err
	}
	if chord <= 0 {
		return nil, fmt.Errorf("chord length must be positive, got %v", chord)
	}
	if resolution < MinResolution {
		return nil, fmt.Errorf("resolution %d too low, need at least %d", resolution, MinResolution)
	}

	c := &Curve{
		X:      make([]float32, resolution),
		XUpper: make([]float32, resolution),
		YUpper: make([]float32, resolution),
		XLower: make([]float32, resolution),
		YLower: make([]float32, resolution),
	}

	m, p, t := prm.MaxCamber, prm.CamberPosition, prm.ThicknessRatio
	for i := 0; i < resolution; i++ {
		beta := math32.Pi * float32(i) / float32(resolution-1)
		x := chord * (1 - math32.Cos(beta)) / 2
		xc := x / chord

		// Symmetric thickness half-profile, quartic in sqrt(x/c).
		yt := 5 * t * chord * (0.2969*math32.Sqrt(xc) -
			0.1260*xc -
			0.3516*xc*xc +
			0.2843*xc*xc*xc -
			0.1015*xc*xc*xc*xc)

		// Camber line and slope: parabolic arcs split at x = p·c.
		var yc, dyc float32
		if m != 0 && p != 0 {
			if xc <= p {
				yc = m * chord * (2*p*xc - xc*xc) / (p * p)
				dyc = 2 * m * (p - xc) / (p * p)
			} else {
				yc = m * chord * ((1 - 2*p) + 2*p*xc - xc*xc) / ((1 - p) * (1 - p))
				dyc = 2 * m * (p - xc) / ((1 - p) * (1 - p))
			}
		}

		theta := math32.Atan(dyc)
		sin, cos := math32.Sin(theta), math32.Cos(theta)

		c.X[i] = x
		c.XUpper[i] = x - yt*sin
		c.YUpper[i] = yc + yt*cos
		c.XLower[i] = x + yt*sin
		c.YLower[i] = yc - yt*cos
	}

	// Pin the endpoints: cosine spacing lands exactly on 0 and pi only in
	// exact arithmetic.
	c.X[0] = 0
	c.X[resolution-1] = chord
	return c, nil
}
