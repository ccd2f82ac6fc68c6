package shellforge

import (
	"strings"
	"testing"

	"github.com/shellforge/shellforge/sdf"
	"github.com/shellforge/shellforge/sdf/form3"
	"gonum.org/v1/gonum/spatial/r3"
)

func testCavity() *Footprint {
	fp, _, err := BuildFootprint(FootprintConfig{Shape: FootprintRect}, 34, 61)
	if err != nil {
		panic(err)
	}
	return fp
}

func pcbComponent() Component {
	return Component{
		ID: 1, Width: 28, Depth: 55, Height: 12,
		GroundZ: 4, IsPCB: true, PCBScrewDiameter: 3,
	}
}

func TestStandoffAutoCorners(t *testing.T) {
	cfg := DefaultEnclosureConfig()
	bosses, bores, warns := synthesizeStandoffs(
		[]Component{pcbComponent()}, cfg, testCavity().SDF(), nil, 2.5)
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if len(bosses) != 4 || len(bores) != 4 {
		t.Fatalf("got %d bosses, %d bores, want 4 each", len(bosses), len(bores))
	}
	// boss radius (3 + 4) / 2 = 3.5, corners inset 1.5 radii
	wantX, wantY := 28.0/2-1.5*3.5, 55.0/2-1.5*3.5
	boss := bosses[2] // (+x, +y) corner
	center := r3.Vec{X: wantX, Y: wantY, Z: 2.5 + 2}
	if d := boss.Evaluate(center); d >= 0 {
		t.Errorf("boss center not inside solid, distance %v", d)
	}
	bb := boss.Bounds()
	if !near(bb.Min.Z, 2.5, 1e-9) || !near(bb.Max.Z, 6.5, 1e-9) {
		t.Errorf("boss spans z [%v, %v], want [2.5, 6.5]", bb.Min.Z, bb.Max.Z)
	}
	if !near(bb.Max.X-bb.Min.X, 7, 1e-9) {
		t.Errorf("boss diameter %v, want 7", bb.Max.X-bb.Min.X)
	}
	// bore pierces past the boss top and into the floor
	bbb := bores[2].Bounds()
	if bbb.Min.Z >= 2.5 || bbb.Max.Z <= 6.5 {
		t.Errorf("bore spans z [%v, %v], want beyond [2.5, 6.5]", bbb.Min.Z, bbb.Max.Z)
	}
}

func TestStandoffExplicitPositions(t *testing.T) {
	c := pcbComponent()
	c.StandoffPositions = []Point{{X: 0, Y: 0}, {X: 5, Y: 10}}
	cfg := DefaultEnclosureConfig()
	bosses, _, warns := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(), nil, 2.5)
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if len(bosses) != 2 {
		t.Fatalf("got %d bosses, want 2", len(bosses))
	}
	if d := bosses[1].Evaluate(r3.Vec{X: 5, Y: 10, Z: 4}); d >= 0 {
		t.Errorf("explicit boss misplaced, distance %v", d)
	}
}

func TestStandoffRotatedComponent(t *testing.T) {
	c := pcbComponent()
	c.RotZ = 90
	c.StandoffPositions = []Point{{X: 10, Y: 0}}
	cfg := DefaultEnclosureConfig()
	bosses, _, _ := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(), nil, 2.5)
	if len(bosses) != 1 {
		t.Fatalf("got %d bosses, want 1", len(bosses))
	}
	// a quarter turn maps local (10, 0) to plan (0, 10)
	if d := bosses[0].Evaluate(r3.Vec{Y: 10, Z: 4}); d >= 0 {
		t.Errorf("rotated boss misplaced, distance %v", d)
	}
}

func TestStandoffOnFloorSkipped(t *testing.T) {
	c := pcbComponent()
	c.GroundZ = 0
	cfg := DefaultEnclosureConfig()
	bosses, _, warns := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(), nil, 2.5)
	if len(bosses) != 0 {
		t.Fatalf("got %d bosses for a floor-resting board", len(bosses))
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
}

func TestStandoffOutsideCavitySkipped(t *testing.T) {
	c := pcbComponent()
	c.StandoffPositions = []Point{{X: 40, Y: 0}}
	cfg := DefaultEnclosureConfig()
	bosses, _, warns := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(), nil, 2.5)
	if len(bosses) != 0 {
		t.Fatal("out-of-cavity boss accepted")
	}
	if len(warns) != 1 || !strings.Contains(warns[0].Msg, "cavity") {
		t.Errorf("warnings %v", warns)
	}
}

func TestStandoffOverlapSkipped(t *testing.T) {
	c := pcbComponent()
	c.StandoffPositions = []Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	cfg := DefaultEnclosureConfig()
	bosses, _, warns := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(), nil, 2.5)
	if len(bosses) != 1 {
		t.Fatalf("got %d bosses, want 1 after overlap rejection", len(bosses))
	}
	if len(warns) != 1 || !strings.Contains(warns[0].Msg, "boss") {
		t.Errorf("warnings %v", warns)
	}
}

func TestStandoffCutoutConflict(t *testing.T) {
	c := pcbComponent()
	c.StandoffPositions = []Point{{X: 0, Y: 0}}
	cfg := DefaultEnclosureConfig()
	// a cut volume sitting right on the boss position
	blocker := form3.Box(r3.Vec{X: 10, Y: 10, Z: 10}, 0)
	bosses, _, warns := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(),
		[]sdf.SDF3{blocker}, 2.5)
	if len(bosses) != 0 {
		t.Fatal("boss overlapping a cutout accepted")
	}
	if len(warns) != 1 || !strings.Contains(warns[0].Msg, "cutout") {
		t.Errorf("warnings %v", warns)
	}
}

func TestStandoffNonPCBIgnored(t *testing.T) {
	c := pcbComponent()
	c.IsPCB = false
	cfg := DefaultEnclosureConfig()
	bosses, _, warns := synthesizeStandoffs([]Component{c}, cfg, testCavity().SDF(), nil, 2.5)
	if len(bosses) != 0 || len(warns) != 0 {
		t.Errorf("non-pcb component produced bosses %d, warnings %v", len(bosses), warns)
	}
}

func TestSeedStandoffs(t *testing.T) {
	c := pcbComponent()
	c.Mesh = stubMesh{}
	c.MeshBounds = stubMesh{}.Bounds()
	det := stubDetector{holes: []Hole{{Center: Point{X: -10, Y: -20}, Diameter: 3.2}, {Center: Point{X: 10, Y: 20}, Diameter: 3.2}}}
	if err := SeedStandoffs(&c, det); err != nil {
		t.Fatal(err)
	}
	if len(c.StandoffPositions) != 2 {
		t.Fatalf("got %d seeded positions, want 2", len(c.StandoffPositions))
	}
	if c.StandoffPositions[0] != (Point{X: -10, Y: -20}) {
		t.Errorf("seeded position %+v", c.StandoffPositions[0])
	}
}

type stubDetector struct{ holes []Hole }

func (d stubDetector) DetectHoles(MeshHandle) ([]Hole, error) { return d.holes, nil }

type stubMesh struct{}

func (stubMesh) Bounds() r3.Box {
	return r3.Box{Min: r3.Vec{X: -14, Y: -27.5}, Max: r3.Vec{X: 14, Y: 27.5, Z: 1.6}}
}
