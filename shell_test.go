package shellforge

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testShellSpec() shellSpec {
	fp, _, err := BuildFootprint(FootprintConfig{Shape: FootprintRect}, 34, 61)
	if err != nil {
		panic(err)
	}
	return shellSpec{
		Footprint: fp,
		InnerH:    18,
		Wall:      2.5,
		Floor:     2.5,
		Style:     StyleClassic,
		Fillet:    1.5,
	}
}

func TestBuildShellClassic(t *testing.T) {
	shell, warns := buildShell(testShellSpec())
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if !near(shell.Height, 20.5, 1e-9) {
		t.Errorf("height %v, want 20.5", shell.Height)
	}
	s := shell.Solid
	probes := []struct {
		p      r3.Vec
		inside bool
		what   string
	}{
		{r3.Vec{Z: 1.25}, true, "floor"},
		{r3.Vec{Y: 31.75, Z: 10}, true, "front wall"},
		{r3.Vec{X: 18.25, Z: 10}, true, "right wall"},
		{r3.Vec{Z: 10}, false, "cavity"},
		{r3.Vec{Z: 19.5}, false, "open top"},
		{r3.Vec{Y: 34, Z: 10}, false, "outside"},
	}
	for _, tc := range probes {
		d := s.Evaluate(tc.p)
		if tc.inside && d >= 0 {
			t.Errorf("%s not solid at %v, distance %v", tc.what, tc.p, d)
		}
		if !tc.inside && d <= 0 {
			t.Errorf("%s solid at %v, distance %v", tc.what, tc.p, d)
		}
	}
}

func TestBuildShellClosedTop(t *testing.T) {
	spec := testShellSpec()
	spec.Top = 2
	shell, _ := buildShell(spec)
	if !near(shell.Height, 22.5, 1e-9) {
		t.Errorf("height %v, want 22.5", shell.Height)
	}
	if d := shell.Solid.Evaluate(r3.Vec{Z: 21.5}); d >= 0 {
		t.Errorf("top skin not solid, distance %v", d)
	}
	if d := shell.Solid.Evaluate(r3.Vec{Z: 10}); d <= 0 {
		t.Errorf("cavity solid, distance %v", d)
	}
}

func TestBuildShellVented(t *testing.T) {
	spec := testShellSpec()
	spec.Style = StyleVented
	shell, warns := buildShell(spec)
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	// outer plan 39x66: slots at x in {-8, 0, 8} on the front wall
	if d := shell.Solid.Evaluate(r3.Vec{Y: 31.75, Z: 11.5}); d <= 0 {
		t.Errorf("vent slot not cut, distance %v", d)
	}
	// wall between slots stays solid
	if d := shell.Solid.Evaluate(r3.Vec{X: 4, Y: 31.75, Z: 11.5}); d >= 0 {
		t.Errorf("wall between slots not solid, distance %v", d)
	}
	// slots never reach the floor
	if d := shell.Solid.Evaluate(r3.Vec{Y: 31.75, Z: 3.5}); d >= 0 {
		t.Errorf("vent slot reaches the floor band, distance %v", d)
	}
}

func TestBuildShellVentedTooShort(t *testing.T) {
	spec := testShellSpec()
	spec.Style = StyleVented
	spec.InnerH = 5
	shell, warns := buildShell(spec)
	if len(warns) == 0 {
		t.Fatal("no warning for unventable walls")
	}
	// wall left intact
	if d := shell.Solid.Evaluate(r3.Vec{Y: 31.75, Z: 5}); d >= 0 {
		t.Errorf("short wall vented anyway, distance %v", d)
	}
}

func TestBuildShellRibbed(t *testing.T) {
	spec := testShellSpec()
	spec.Style = StyleRibbed
	shell, _ := buildShell(spec)
	// rib proud of the front wall at x=0
	if d := shell.Solid.Evaluate(r3.Vec{Y: 33.5, Z: 10}); d >= 0 {
		t.Errorf("rib not raised, distance %v", d)
	}
	// between ribs the outer surface stays nominal
	if d := shell.Solid.Evaluate(r3.Vec{X: 5, Y: 33.5, Z: 10}); d <= 0 {
		t.Errorf("solid between ribs past nominal wall, distance %v", d)
	}
	// cavity untouched
	if d := shell.Solid.Evaluate(r3.Vec{Z: 10}); d <= 0 {
		t.Errorf("cavity solid, distance %v", d)
	}
}

func TestBuildShellMinimalRaisesWall(t *testing.T) {
	spec := testShellSpec()
	spec.Style = StyleMinimal
	spec.Wall = 0.8
	shell, warns := buildShell(spec)
	if len(warns) == 0 {
		t.Fatal("no clamp warning for sub-minimum wall")
	}
	if !near(shell.Wall, 1.2, 1e-9) {
		t.Errorf("effective wall %v, want 1.2", shell.Wall)
	}
	// outer surface at inner + 1.2
	if d := shell.Solid.Evaluate(r3.Vec{Y: 31.1, Z: 10}); d >= 0 {
		t.Errorf("raised wall not solid, distance %v", d)
	}
	if d := shell.Solid.Evaluate(r3.Vec{Y: 32, Z: 10}); d <= 0 {
		t.Errorf("wall thicker than raised minimum, distance %v", d)
	}
}

func TestBuildShellRoundedCorners(t *testing.T) {
	spec := testShellSpec()
	spec.Style = StyleRounded
	spec.Fillet = 1
	shell, _ := buildShell(spec)
	// sharp outer corner material removed (outer corner at 19.5, 33)
	if d := shell.Solid.Evaluate(r3.Vec{X: 19.45, Y: 32.95, Z: 10}); d <= 0 {
		t.Errorf("outer corner not rounded, distance %v", d)
	}
	// mid-face wall nominal
	if d := shell.Solid.Evaluate(r3.Vec{Y: 32, Z: 10}); d >= 0 {
		t.Errorf("mid-face wall not solid, distance %v", d)
	}
}

func TestClampEdgeSize(t *testing.T) {
	var warns []Warning
	if got := clampEdgeSize(1, 2.5, &warns); got != 1 || len(warns) != 0 {
		t.Errorf("in-range size clamped: %v %v", got, warns)
	}
	got := clampEdgeSize(2, 2.5, &warns)
	if !near(got, 1.2, 1e-9) {
		t.Errorf("clamped size %v, want 1.2", got)
	}
	if len(warns) != 1 {
		t.Errorf("warnings %v", warns)
	}
}

func TestTopEdgeCut(t *testing.T) {
	fp, _, _ := BuildFootprint(FootprintConfig{Shape: FootprintRect}, 39, 66)
	outer := fp.SDF()
	for _, chamfer := range []bool{true, false} {
		cut := newTopEdgeCut(outer, 20.5, 1, chamfer)
		// the rim edge itself is always removed
		if d := cut.Evaluate(r3.Vec{X: 19.5, Z: 20.5}); d >= 0 {
			t.Errorf("chamfer=%v: rim edge not in cut volume, distance %v", chamfer, d)
		}
		// deep inside the body is kept
		if d := cut.Evaluate(r3.Vec{X: 15, Z: 15}); d <= 0 {
			t.Errorf("chamfer=%v: body interior in cut volume, distance %v", chamfer, d)
		}
		// well outside the profile and below the rim is kept
		if d := cut.Evaluate(r3.Vec{X: 25, Z: 10}); d <= 0 {
			t.Errorf("chamfer=%v: exterior point in cut volume, distance %v", chamfer, d)
		}
	}
}

func TestApplyEdgeStyleSkips(t *testing.T) {
	shell, _ := buildShell(testShellSpec())
	var warns []Warning
	got := applyEdgeStyle(shell.Solid, shell.Outer.SDF(), shell.Height, StyleRounded,
		EdgeFillet, 1.5, shell.Wall, &warns)
	if got != shell.Solid {
		t.Error("rounded style should skip the rim treatment")
	}
	got = applyEdgeStyle(shell.Solid, shell.Outer.SDF(), shell.Height, StyleClassic,
		EdgeFillet, 1, shell.Wall, &warns)
	if got == shell.Solid {
		t.Error("classic style rim treatment not applied")
	}
	// the treated rim edge is gone
	if d := got.Evaluate(r3.Vec{X: 19.5, Y: 0, Z: 20.5}); d <= 0 {
		t.Errorf("rim edge still solid, distance %v", d)
	}
}
