package mesh

import (
	"math"
	"testing"

	"cad-engine/internal/geom"
	"cad-engine/internal/model"
)

func TestBoxExtentsMatchExactly(t *testing.T) {
	m := Box(geom.Vec3{1, 2, 3})
	if ext := m.Bounds().Extents(); ext != (geom.Vec3{1, 2, 3}) {
		t.Errorf("extents = %v, want (1,2,3)", ext)
	}
	if len(m.Vertices) != 8 || len(m.Faces) != 12 {
		t.Errorf("got %d vertices, %d faces, want 8 and 12", len(m.Vertices), len(m.Faces))
	}
	if v := m.SignedVolume(); v <= 0 {
		t.Errorf("volume %v not positive: winding inward", v)
	}
}

func TestCylinderCircularCrossSection(t *testing.T) {
	const r, h = 1.5, 4.0
	m := Cylinder(r, r, h, 32)
	if len(m.Vertices) != 2*32+2 {
		t.Fatalf("vertices = %d, want %d", len(m.Vertices), 2*32+2)
	}
	if len(m.Faces) != 4*32 {
		t.Fatalf("faces = %d, want %d", len(m.Faces), 4*32)
	}
	for i, v := range m.Vertices[:64] { // ring vertices only
		d := float64(v[0]*v[0] + v[1]*v[1])
		if math.Abs(math.Sqrt(d)-r) > 1e-5 {
			t.Fatalf("ring vertex %d at radius %v, want %v", i, math.Sqrt(d), r)
		}
		if math.Abs(math.Abs(float64(v[2]))-h/2) > 1e-6 {
			t.Fatalf("ring vertex %d at z=%v, want ±%v", i, v[2], h/2)
		}
	}
	if v := m.SignedVolume(); v <= 0 {
		t.Errorf("volume %v not positive", v)
	}
}

func TestCylinderEllipticalCrossSection(t *testing.T) {
	const rx, ry, h = 2.0, 1.0, 1.0
	m := Cylinder(rx, ry, h, 32)
	for i, v := range m.Vertices[:64] {
		d := float64(v[0]/rx)*float64(v[0]/rx) + float64(v[1]/ry)*float64(v[1]/ry)
		if math.Abs(d-1) > 1e-5 {
			t.Fatalf("ring vertex %d off the ellipse: (x/rx)²+(y/ry)² = %v", i, d)
		}
	}
	ext := m.Bounds().Extents()
	near(t, ext[0], 2*rx, 1e-5, "x extent")
	near(t, ext[1], 2*ry, 1e-5, "y extent")
	near(t, ext[2], h, 1e-6, "z extent")
}

func TestCylinderFallbackSlices(t *testing.T) {
	m := Cylinder(1, 1, 1, 0)
	if len(m.Faces) != 4*DefaultSlices {
		t.Errorf("faces = %d, want %d", len(m.Faces), 4*DefaultSlices)
	}
}

func TestHalfCylinderVolumeAndBounds(t *testing.T) {
	const r, h = 1.0, 2.0
	m, err := HalfCylinder(r, r, h, 32)
	if err != nil {
		t.Fatalf("HalfCylinder: %v", err)
	}
	full := Cylinder(r, r, h, 32)
	near(t, m.SignedVolume(), full.SignedVolume()/2, 0.05, "half volume")

	b := m.Bounds()
	if b.Max[0] > 1e-5 {
		t.Errorf("max x = %v, want <= 0 after cut", b.Max[0])
	}
	near(t, b.Min[0], -r, 1e-5, "min x")
	near(t, b.Max[1]-b.Min[1], 2*r, 1e-5, "y extent")
	near(t, b.Max[2]-b.Min[2], h, 1e-6, "z extent")
}

func TestHalfCylinderIsClosed(t *testing.T) {
	m, err := HalfCylinder(1, 1, 2, 16)
	if err != nil {
		t.Fatalf("HalfCylinder: %v", err)
	}
	// Every edge of a closed manifold is shared by exactly two faces.
	counts := map[edgeKey]int{}
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			counts[makeEdgeKey(f[i], f[(i+1)%3])]++
		}
	}
	for k, c := range counts {
		if c != 2 {
			t.Fatalf("edge %v shared by %d faces, want 2", k, c)
		}
	}
}

func TestHalfCylinderDegenerateInput(t *testing.T) {
	if _, err := HalfCylinder(0, 1, 1, 32); err == nil {
		t.Error("zero radius_x: expected error")
	}
	if _, err := HalfCylinder(1, 1, 0, 32); err == nil {
		t.Error("zero height: expected error")
	}
}

func TestAirfoilSheetShape(t *testing.T) {
	p := model.AirfoilParams{
		Digits:         "0012",
		ChordLength:    1,
		SheetThickness: 0.02,
		Resolution:     50,
		ThicknessRatio: 0.12,
	}
	m, err := AirfoilSheet(p)
	if err != nil {
		t.Fatalf("AirfoilSheet: %v", err)
	}
	if want := 4 * p.Resolution; len(m.Vertices) != want {
		t.Errorf("vertices = %d, want %d", len(m.Vertices), want)
	}
	if want := 8*p.Resolution - 4; len(m.Faces) != want {
		t.Errorf("faces = %d, want %d", len(m.Faces), want)
	}

	b := m.Bounds()
	near(t, b.Min[0], 0, 1e-3, "leading edge x")
	near(t, b.Max[0], p.ChordLength, 1e-3, "trailing edge x")
	near(t, b.Max[1]-b.Min[1], p.SheetThickness, 1e-6, "span thickness")
	// Profile height is bounded by the section thickness.
	if zext := b.Max[2] - b.Min[2]; zext <= 0 || zext > 0.13 {
		t.Errorf("profile height %v outside (0, 0.13]", zext)
	}
	if v := m.SignedVolume(); v <= 0 {
		t.Errorf("volume %v not positive", v)
	}
}

func TestAirfoilSheetBadCurve(t *testing.T) {
	p := model.AirfoilParams{Digits: "0012", ChordLength: 1, SheetThickness: 0.02, Resolution: 0}
	if _, err := AirfoilSheet(p); err == nil {
		t.Error("resolution 0: expected error")
	}
}
