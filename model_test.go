package shellforge

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEnumTextRoundTrip(t *testing.T) {
	var f Face
	for _, name := range []string{"front", "back", "left", "right", "top", "bottom"} {
		if err := f.UnmarshalText([]byte(name)); err != nil {
			t.Fatalf("parse face %q: %v", name, err)
		}
		if f.String() != name {
			t.Errorf("face %q round-trips as %q", name, f.String())
		}
	}
	if err := f.UnmarshalText([]byte("diagonal")); err == nil {
		t.Error("unknown face accepted")
	}
	var ct ConnectorType
	if err := ct.UnmarshalText([]byte("usb_c")); err != nil || ct != USBC {
		t.Errorf("parse usb_c: %v %v", ct, err)
	}
	var ls LidStyle
	if err := ls.UnmarshalText([]byte("snap")); err != nil || ls != LidSnap {
		t.Errorf("parse snap: %v %v", ls, err)
	}
}

func TestRequestYAMLDecode(t *testing.T) {
	doc := `
components:
  - id: 1
    name: board
    width: 28
    depth: 55
    height: 12
    is_pcb: true
    pcb_screw_diameter: 3
connectors:
  - id: 1
    type: usb_c
    face: front
cutouts:
  - id: 2
    shape: circle
    face: right
    width: 6
    offset_y: -2
config:
  wall_thickness: 2.5
  lid_style: snap
  style: vented
footprint:
  shape: l
  notch_width: 12
parts:
  tray:
    enabled: true
    tray_z: 8
    tray_thickness: 2
`
	var req Request
	if err := yaml.Unmarshal([]byte(doc), &req); err != nil {
		t.Fatal(err)
	}
	if len(req.Components) != 1 || req.Components[0].Depth != 55 {
		t.Errorf("components: %+v", req.Components)
	}
	if req.Connectors[0].Type != USBC || req.Connectors[0].Face != FaceFront {
		t.Errorf("connector: %+v", req.Connectors[0])
	}
	if req.Cutouts[0].Shape != CutoutCircle || req.Cutouts[0].OffsetY != -2 {
		t.Errorf("cutout: %+v", req.Cutouts[0])
	}
	if req.Config.LidStyle != LidSnap || req.Config.Style != StyleVented {
		t.Errorf("config: %+v", req.Config)
	}
	if req.Footprint.Shape != FootprintL || req.Footprint.NotchWidth != 12 {
		t.Errorf("footprint: %+v", req.Footprint)
	}
	if !req.Parts.Tray.Enabled || req.Parts.Tray.TrayZ != 8 {
		t.Errorf("tray: %+v", req.Parts.Tray)
	}
}

func TestComponentBoundsRotation(t *testing.T) {
	c := Component{Width: 20, Depth: 10, Height: 4, RotZ: 90}
	b := c.bounds()
	if got := b.Max.X - b.Min.X; math.Abs(got-10) > 1e-9 {
		t.Errorf("rotated width %v, want 10", got)
	}
	if got := b.Max.Y - b.Min.Y; math.Abs(got-20) > 1e-9 {
		t.Errorf("rotated depth %v, want 20", got)
	}
	// rotation never sinks the part below its resting height
	if math.Abs(b.Min.Z) > 1e-9 {
		t.Errorf("rotated part floats or sinks: min z %v", b.Min.Z)
	}
	c.RotX = 90
	b = c.bounds()
	if got := b.Max.Z - b.Min.Z; math.Abs(got-10) > 1e-9 {
		t.Errorf("tipped height %v, want 10", got)
	}
}

func TestDefaultEnclosureConfig(t *testing.T) {
	cfg := DefaultEnclosureConfig()
	if cfg.WallThickness != 2.5 || cfg.FloorThickness != 2.5 || cfg.LidThickness != 2 {
		t.Errorf("thicknesses: %+v", cfg)
	}
	if cfg.PaddingX != 3 || cfg.PaddingY != 3 || cfg.PaddingZ != 3 {
		t.Errorf("padding: %+v", cfg)
	}
	if !cfg.AutoStandoffs {
		t.Error("auto standoffs off by default")
	}
}
