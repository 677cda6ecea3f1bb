package mesh

import (
	"testing"

	"cad-engine/internal/geom"
)

func TestClipBoxAtPlaneHalvesVolume(t *testing.T) {
	m := Box(geom.Vec3{2, 2, 2})
	half, err := ClipHalfSpace(m, geom.Vec3{1, 0, 0}, 0)
	if err != nil {
		t.Fatalf("ClipHalfSpace: %v", err)
	}
	if err := half.FixNormals(); err != nil {
		t.Fatalf("FixNormals: %v", err)
	}
	near(t, half.SignedVolume(), 4, 1e-4, "clipped volume")

	b := half.Bounds()
	if b.Max[0] > 1e-5 {
		t.Errorf("max x = %v, want <= 0", b.Max[0])
	}
	near(t, b.Min[0], -1, 1e-6, "min x")
}

func TestClipOffsetPlane(t *testing.T) {
	m := Box(geom.Vec3{2, 2, 2})
	part, err := ClipHalfSpace(m, geom.Vec3{1, 0, 0}, 0.5)
	if err != nil {
		t.Fatalf("ClipHalfSpace: %v", err)
	}
	if err := part.FixNormals(); err != nil {
		t.Fatalf("FixNormals: %v", err)
	}
	// Keeps x <= 0.5: three quarters of the box.
	near(t, part.SignedVolume(), 6, 1e-4, "clipped volume")
}

func TestClipKeepsUntouchedMesh(t *testing.T) {
	m := Box(geom.Vec3{2, 2, 2})
	kept, err := ClipHalfSpace(m, geom.Vec3{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("ClipHalfSpace: %v", err)
	}
	if len(kept.Faces) != len(m.Faces) {
		t.Errorf("faces = %d, want %d (whole mesh inside half-space)", len(kept.Faces), len(m.Faces))
	}
	near(t, kept.SignedVolume(), 8, 1e-4, "volume")
}

func TestClipRemovingEverythingFails(t *testing.T) {
	m := Box(geom.Vec3{2, 2, 2})
	if _, err := ClipHalfSpace(m, geom.Vec3{1, 0, 0}, -10); err == nil {
		t.Fatal("expected error when clip removes every face")
	}
}

func TestClipResultIsManifold(t *testing.T) {
	m := Cylinder(1, 1, 2, 32)
	half, err := ClipHalfSpace(m, geom.Vec3{1, 0, 0}, 0)
	if err != nil {
		t.Fatalf("ClipHalfSpace: %v", err)
	}
	counts := map[edgeKey]int{}
	for _, f := range half.Faces {
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
