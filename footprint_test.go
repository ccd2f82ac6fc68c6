package shellforge

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestFootprintShapes(t *testing.T) {
	const w, d = 40, 40
	tests := []struct {
		shape FootprintShape
		verts int
	}{
		{FootprintRect, 4},
		{FootprintL, 6},
		{FootprintT, 8},
		{FootprintU, 8},
		{FootprintPlus, 12},
		{FootprintHexagon, 6},
		{FootprintOctagon, 8},
	}
	for _, tc := range tests {
		t.Run(tc.shape.String(), func(t *testing.T) {
			fp, _, err := BuildFootprint(FootprintConfig{Shape: tc.shape}, w, d)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if len(fp.Verts) != tc.verts {
				t.Errorf("got %d vertices, want %d", len(fp.Verts), tc.verts)
			}
			if a := fp.Area(); a <= 0 {
				t.Errorf("vertices not counter-clockwise, area %v", a)
			}
			bb := fp.Bounds()
			if bb.Max.X-bb.Min.X > w+1e-9 || bb.Max.Y-bb.Min.Y > d+1e-9 {
				t.Errorf("outline exceeds requested plan: %+v", bb)
			}
		})
	}
}

func TestFootprintRectDims(t *testing.T) {
	fp, warns, err := BuildFootprint(FootprintConfig{Shape: FootprintRect}, 34, 61)
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	bb := fp.Bounds()
	if got := bb.Max.X - bb.Min.X; math.Abs(got-34) > 1e-12 {
		t.Errorf("width %v, want 34", got)
	}
	if got := bb.Max.Y - bb.Min.Y; math.Abs(got-61) > 1e-12 {
		t.Errorf("depth %v, want 61", got)
	}
	if got := fp.Area(); math.Abs(got-34*61) > 1e-9 {
		t.Errorf("area %v, want %v", got, 34*61)
	}
}

func TestFootprintLNotch(t *testing.T) {
	fp, _, err := BuildFootprint(FootprintConfig{Shape: FootprintL}, 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	// default notch fraction removes 0.4*0.4 of the plan
	want := 1600 * (1 - 0.4*0.4)
	if got := fp.Area(); math.Abs(got-want) > 1e-9 {
		t.Errorf("area %v, want %v", got, want)
	}
	// notch corner (+x, +y) must be outside the outline
	s := fp.SDF()
	if d := s.Evaluate(r2.Vec{X: 19, Y: 19}); d <= 0 {
		t.Errorf("notch corner still inside outline, distance %v", d)
	}
	if d := s.Evaluate(r2.Vec{X: -19, Y: -19}); d >= 0 {
		t.Errorf("opposite corner outside outline, distance %v", d)
	}
}

func TestFootprintNotchClamp(t *testing.T) {
	cfg := FootprintConfig{Shape: FootprintL, NotchWidth: 100, NotchDepth: 5}
	fp, warns, err := BuildFootprint(cfg, 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) == 0 {
		t.Fatal("oversized notch produced no clamp warning")
	}
	if fp.Area() <= 0 {
		t.Errorf("clamped footprint degenerate, area %v", fp.Area())
	}
}

func TestFootprintUOpenSides(t *testing.T) {
	for _, side := range []Face{FaceFront, FaceBack, FaceLeft, FaceRight} {
		cfg := FootprintConfig{Shape: FootprintU, OpenSide: side}
		fp, _, err := BuildFootprint(cfg, 40, 40)
		if err != nil {
			t.Fatalf("open side %v: %v", side, err)
		}
		if len(fp.Verts) != 8 {
			t.Errorf("open side %v: %d vertices, want 8", side, len(fp.Verts))
		}
	}
	for _, side := range []Face{FaceTop, FaceBottom} {
		if _, _, err := BuildFootprint(FootprintConfig{Shape: FootprintU, OpenSide: side}, 40, 40); err == nil {
			t.Errorf("open side %v accepted, want error", side)
		}
	}
}

func TestFootprintURotatedDims(t *testing.T) {
	for _, side := range []Face{FaceFront, FaceBack, FaceLeft, FaceRight} {
		cfg := FootprintConfig{Shape: FootprintU, OpenSide: side}
		fp, _, err := BuildFootprint(cfg, 34, 61)
		if err != nil {
			t.Fatalf("open side %v: %v", side, err)
		}
		bb := fp.Bounds()
		if w := bb.Max.X - bb.Min.X; math.Abs(w-34) > 1e-12 {
			t.Errorf("open side %v: footprint spans %v in x, want 34", side, w)
		}
		if d := bb.Max.Y - bb.Min.Y; math.Abs(d-61) > 1e-12 {
			t.Errorf("open side %v: footprint spans %v in y, want 61", side, d)
		}
	}
	// the notch must sit on the named side
	fp, _, err := BuildFootprint(FootprintConfig{Shape: FootprintU, OpenSide: FaceRight}, 34, 61)
	if err != nil {
		t.Fatal(err)
	}
	s := fp.SDF()
	if d := s.Evaluate(r2.Vec{X: 16, Y: 0}); d < 0 {
		t.Errorf("point inside right-side notch has distance %v, want outside", d)
	}
	if d := s.Evaluate(r2.Vec{X: -16, Y: 0}); d > 0 {
		t.Errorf("point on the solid left side has distance %v, want inside", d)
	}
}

func TestFootprintOffset(t *testing.T) {
	fp, _, err := BuildFootprint(FootprintConfig{Shape: FootprintRect}, 30, 20)
	if err != nil {
		t.Fatal(err)
	}
	out := fp.Offset(2.5)
	bb := out.Bounds()
	if got := bb.Max.X - bb.Min.X; math.Abs(got-35) > 1e-12 {
		t.Errorf("offset width %v, want 35", got)
	}
	if got := bb.Max.Y - bb.Min.Y; math.Abs(got-25) > 1e-12 {
		t.Errorf("offset depth %v, want 25", got)
	}
	if out.Area() <= fp.Area() {
		t.Error("outward offset did not grow the outline")
	}
}
