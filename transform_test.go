package flipbook

import (
	"math"
	"testing"
)

func assertMatrix(t *testing.T, name string, got, want affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestTransformMatrixIdentity(t *testing.T) {
	got := Transform{Size: Vec2{10, 10}}.Matrix()
	assertMatrix(t, "identity", got, identityAffine)
}

func TestTransformMatrixRotationPivot(t *testing.T) {
	tr := Transform{Position: Vec2{10, 20}, Rotation: 90, Size: Vec2{4, 2}, Pivot: Vec2{0.5, 0.5}}
	m := tr.Matrix()
	assertVec(t, "pivot", m.apply(Vec2{2, 1}), Vec2{10, 20}, 1e-9)
	// (0,0) is (-2,-1) from the pivot; rotated 90° that is (1,-2).
	assertVec(t, "origin", m.apply(Vec2{0, 0}), Vec2{11, 18}, 1e-9)
}

func TestAffineInvert(t *testing.T) {
	m := Transform{Position: Vec2{3, -7}, Rotation: 33, Size: Vec2{5, 9}, Pivot: Vec2{0.2, 0.8}}.Matrix()
	assertMatrix(t, "m*inv", multiplyAffine(m, m.invert()), identityAffine)

	singular := affine{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", singular.invert(), identityAffine)
}

func TestMultiplyAffineOrder(t *testing.T) {
	translate := affine{1, 0, 0, 1, 10, 0}
	scale := affine{2, 0, 0, 2, 0, 0}
	// scale first, then translate.
	assertVec(t, "p", multiplyAffine(translate, scale).apply(Vec2{1, 1}), Vec2{12, 2}, epsilon)
}

func TestPlacementRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		p    Placement
	}{
		{"unit", Placement{X: 500, Y: 375, Scale: 1}},
		{"scaled", Placement{X: 100, Y: 50, Scale: 2.5}},
		{"rotated", Placement{X: -20, Y: 40, Scale: 0.75, Rotation: 0.4}},
		{"zero scale means one", Placement{X: 1, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, local := range []Vec2{{0, 0}, {400, -300}, {-123.5, 77}} {
				sx, sy := tt.p.ToScreen(local)
				assertVec(t, "round trip", tt.p.ToLocal(sx, sy), local, 1e-9)
			}
		})
	}
}

func TestPlacementFlipsY(t *testing.T) {
	p := Placement{X: 500, Y: 375, Scale: 2}
	sx, sy := p.ToScreen(Vec2{10, 10})
	assertNear(t, "sx", sx, 520)
	assertNear(t, "sy", sy, 355)
	if got := p.GeoM(); got[3] != -2 {
		t.Errorf("GeoM d = %v, want -2", got[3])
	}
}

func TestPlacementCorners(t *testing.T) {
	p := Placement{Scale: 1}
	c := p.Corners(Transform{Size: Vec2{4, 2}})
	want := [4]Vec2{{0, 0}, {4, 0}, {4, -2}, {0, -2}}
	for i := range want {
		assertVec(t, "corner", c[i], want[i], epsilon)
	}
}
