package shellforge

import (
	"fmt"
	"math"

	"github.com/shellforge/shellforge/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Closed enumerations. Every enum round-trips through its text form so
// requests can be written in YAML or JSON, and every dispatch on an
// enum goes through a table so a missing case fails loudly instead of
// silently matching a string.

// Face selects a wall of the enclosure.
type Face int

const (
	FaceFront Face = iota // outward normal +y
	FaceBack
	FaceLeft
	FaceRight
	FaceTop
	FaceBottom
)

var faceNames = map[Face]string{
	FaceFront:  "front",
	FaceBack:   "back",
	FaceLeft:   "left",
	FaceRight:  "right",
	FaceTop:    "top",
	FaceBottom: "bottom",
}

// ConnectorType selects a fixed-profile connector opening.
type ConnectorType int

const (
	USBA ConnectorType = iota
	USBC
	MicroUSB
	MiniUSB
	HDMI
	MiniHDMI
	Jack35
	BarrelJack
	RJ45
)

var connectorNames = map[ConnectorType]string{
	USBA:       "usb_a",
	USBC:       "usb_c",
	MicroUSB:   "micro_usb",
	MiniUSB:    "mini_usb",
	HDMI:       "hdmi",
	MiniHDMI:   "mini_hdmi",
	Jack35:     "jack_3_5",
	BarrelJack: "barrel_jack",
	RJ45:       "rj45",
}

// CutoutShape selects the profile of a custom cutout.
type CutoutShape int

const (
	CutoutRect CutoutShape = iota
	CutoutCircle
	CutoutHexagon
	CutoutTriangle
)

var cutoutShapeNames = map[CutoutShape]string{
	CutoutRect:     "rectangle",
	CutoutCircle:   "circle",
	CutoutHexagon:  "hexagon",
	CutoutTriangle: "triangle",
}

// LidStyle selects how the lid attaches to the base.
type LidStyle int

const (
	LidScrews LidStyle = iota
	LidSnap
	LidNone
)

var lidStyleNames = map[LidStyle]string{
	LidScrews: "screws",
	LidSnap:   "snap",
	LidNone:   "none",
}

// LidHoleStyle is the treatment applied to each lid fastening bore.
type LidHoleStyle int

const (
	HoleThrough LidHoleStyle = iota
	HoleCountersunk
	HoleClosed
)

var lidHoleStyleNames = map[LidHoleStyle]string{
	HoleThrough:     "through",
	HoleCountersunk: "countersunk",
	HoleClosed:      "closed",
}

// Style selects the structural wall treatment.
type Style int

const (
	StyleClassic Style = iota
	StyleVented
	StyleRounded
	StyleRibbed
	StyleMinimal
)

var styleNames = map[Style]string{
	StyleClassic: "classic",
	StyleVented:  "vented",
	StyleRounded: "rounded",
	StyleRibbed:  "ribbed",
	StyleMinimal: "minimal",
}

// EdgeStyle selects the rim edge treatment of a part.
type EdgeStyle int

const (
	EdgeFillet EdgeStyle = iota
	EdgeChamfer
)

var edgeStyleNames = map[EdgeStyle]string{
	EdgeFillet:  "fillet",
	EdgeChamfer: "chamfer",
}

// FootprintShape selects the plan-view outline family.
type FootprintShape int

const (
	FootprintRect FootprintShape = iota
	FootprintL
	FootprintT
	FootprintU
	FootprintPlus
	FootprintHexagon
	FootprintOctagon
)

var footprintShapeNames = map[FootprintShape]string{
	FootprintRect:    "rectangle",
	FootprintL:       "l",
	FootprintT:       "t",
	FootprintU:       "u",
	FootprintPlus:    "plus",
	FootprintHexagon: "hexagon",
	FootprintOctagon: "octagon",
}

// PartName identifies one of the independently generated parts.
type PartName int

const (
	PartBase PartName = iota
	PartLid
	PartTray
	PartBracket
)

var partNames = map[PartName]string{
	PartBase:    "base",
	PartLid:     "lid",
	PartTray:    "tray",
	PartBracket: "bracket",
}

func enumString[T comparable](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%v)", v)
}

func enumParse[T comparable](kind string, names map[T]string, text []byte) (T, error) {
	s := string(text)
	for v, name := range names {
		if name == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, s)
}

func (f Face) String() string               { return enumString(faceNames, f) }
func (f Face) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f *Face) UnmarshalText(b []byte) error {
	v, err := enumParse("face", faceNames, b)
	*f = v
	return err
}
func (c ConnectorType) String() string               { return enumString(connectorNames, c) }
func (c ConnectorType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *ConnectorType) UnmarshalText(b []byte) error {
	v, err := enumParse("connector type", connectorNames, b)
	*c = v
	return err
}
func (s CutoutShape) String() string               { return enumString(cutoutShapeNames, s) }
func (s CutoutShape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *CutoutShape) UnmarshalText(b []byte) error {
	v, err := enumParse("cutout shape", cutoutShapeNames, b)
	*s = v
	return err
}
func (l LidStyle) String() string               { return enumString(lidStyleNames, l) }
func (l LidStyle) MarshalText() ([]byte, error) { return []byte(l.String()), nil }
func (l *LidStyle) UnmarshalText(b []byte) error {
	v, err := enumParse("lid style", lidStyleNames, b)
	*l = v
	return err
}
func (l LidHoleStyle) String() string               { return enumString(lidHoleStyleNames, l) }
func (l LidHoleStyle) MarshalText() ([]byte, error) { return []byte(l.String()), nil }
func (l *LidHoleStyle) UnmarshalText(b []byte) error {
	v, err := enumParse("lid hole style", lidHoleStyleNames, b)
	*l = v
	return err
}
func (s Style) String() string               { return enumString(styleNames, s) }
func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *Style) UnmarshalText(b []byte) error {
	v, err := enumParse("style", styleNames, b)
	*s = v
	return err
}
func (e EdgeStyle) String() string               { return enumString(edgeStyleNames, e) }
func (e EdgeStyle) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
func (e *EdgeStyle) UnmarshalText(b []byte) error {
	v, err := enumParse("edge style", edgeStyleNames, b)
	*e = v
	return err
}
func (f FootprintShape) String() string               { return enumString(footprintShapeNames, f) }
func (f FootprintShape) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f *FootprintShape) UnmarshalText(b []byte) error {
	v, err := enumParse("footprint shape", footprintShapeNames, b)
	*f = v
	return err
}
func (p PartName) String() string               { return enumString(partNames, p) }
func (p PartName) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *PartName) UnmarshalText(b []byte) error {
	v, err := enumParse("part name", partNames, b)
	*p = v
	return err
}

// Point is a 2D point in millimeters.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Component is one object placed inside the enclosure. Positions are
// plan coordinates relative to the enclosure center; GroundZ is the
// vertical offset of the component's underside above the floor.
// Components are immutable once submitted.
type Component struct {
	ID     int     `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Width  float64 `yaml:"width" json:"width" validate:"gt=0"`
	Depth  float64 `yaml:"depth" json:"depth" validate:"gt=0"`
	Height float64 `yaml:"height" json:"height" validate:"gt=0"`

	X       float64 `yaml:"x" json:"x"`
	Y       float64 `yaml:"y" json:"y"`
	GroundZ float64 `yaml:"ground_z" json:"ground_z" validate:"gte=0"`
	// rotation: Euler angles in degrees, applied z then y then x
	RotX float64 `yaml:"rot_x" json:"rot_x"`
	RotY float64 `yaml:"rot_y" json:"rot_y"`
	RotZ float64 `yaml:"rot_z" json:"rot_z"`

	IsPCB             bool    `yaml:"is_pcb" json:"is_pcb"`
	PCBScrewDiameter  float64 `yaml:"pcb_screw_diameter" json:"pcb_screw_diameter"`
	StandoffPositions []Point `yaml:"standoff_positions" json:"standoff_positions"`

	// Imported mesh geometry (from a MeshImporter collaborator). When
	// Mesh is set, MeshBounds replaces the parametric box size.
	Mesh       MeshHandle `yaml:"-" json:"-"`
	MeshBounds r3.Box     `yaml:"-" json:"-"`
}

// size is the unrotated axis-aligned extent of the component.
func (c *Component) size() r3.Vec {
	if c.Mesh != nil {
		return r3.Sub(c.MeshBounds.Max, c.MeshBounds.Min)
	}
	return r3.Vec{X: c.Width, Y: c.Depth, Z: c.Height}
}

// bounds returns the rotated axis-aligned bounding box of the
// component in enclosure coordinates, with z=0 at the floor top. The
// rotated extent rests at GroundZ.
func (c *Component) bounds() r3.Box {
	sz := c.size()
	m := sdf.RotateZ(sdf.DtoR(c.RotZ)).
		Mul(sdf.RotateY(sdf.DtoR(c.RotY))).
		Mul(sdf.RotateX(sdf.DtoR(c.RotX)))
	half := r3.Scale(0.5, sz)
	var rot r3.Vec
	for i := 0; i < 8; i++ {
		corner := r3.Vec{
			X: half.X * sign(i&1 == 0),
			Y: half.Y * sign(i&2 == 0),
			Z: half.Z * sign(i&4 == 0),
		}
		v := m.MulPosition(corner)
		rot = r3.Vec{X: math.Max(rot.X, math.Abs(v.X)), Y: math.Max(rot.Y, math.Abs(v.Y)), Z: math.Max(rot.Z, math.Abs(v.Z))}
	}
	return r3.Box{
		Min: r3.Vec{X: c.X - rot.X, Y: c.Y - rot.Y, Z: c.GroundZ},
		Max: r3.Vec{X: c.X + rot.X, Y: c.Y + rot.Y, Z: c.GroundZ + 2*rot.Z},
	}
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

// ConnectorCutout is a wall opening with a fixed connector profile.
type ConnectorCutout struct {
	ID      int           `yaml:"id" json:"id"`
	Type    ConnectorType `yaml:"type" json:"type"`
	Face    Face          `yaml:"face" json:"face"`
	OffsetX float64       `yaml:"offset_x" json:"offset_x"`
	OffsetY float64       `yaml:"offset_y" json:"offset_y"`
}

// CustomCutout is an arbitrary-shape wall opening. Depth 0 means full
// wall penetration; an explicit depth is a recess measured from the
// outer surface. Rotation is degrees about the wall normal.
type CustomCutout struct {
	ID       int         `yaml:"id" json:"id"`
	Shape    CutoutShape `yaml:"shape" json:"shape"`
	Face     Face        `yaml:"face" json:"face"`
	Width    float64     `yaml:"width" json:"width" validate:"gt=0"`
	Height   float64     `yaml:"height" json:"height"` // ignored for circle
	Depth    float64     `yaml:"depth" json:"depth" validate:"gte=0"`
	OffsetX  float64     `yaml:"offset_x" json:"offset_x"`
	OffsetY  float64     `yaml:"offset_y" json:"offset_y"`
	Rotation float64     `yaml:"rotation" json:"rotation"`
}

// EnclosureConfig holds the global generation parameters.
type EnclosureConfig struct {
	PaddingX float64 `yaml:"padding_x" json:"padding_x" validate:"gte=0"`
	PaddingY float64 `yaml:"padding_y" json:"padding_y" validate:"gte=0"`
	PaddingZ float64 `yaml:"padding_z" json:"padding_z" validate:"gte=0"`

	WallThickness  float64 `yaml:"wall_thickness" json:"wall_thickness" validate:"gt=0"`
	FloorThickness float64 `yaml:"floor_thickness" json:"floor_thickness" validate:"gt=0"`
	LidThickness   float64 `yaml:"lid_thickness" json:"lid_thickness" validate:"gt=0"`

	Style        Style        `yaml:"style" json:"style"`
	LidStyle     LidStyle     `yaml:"lid_style" json:"lid_style"`
	LidHoleStyle LidHoleStyle `yaml:"lid_hole_style" json:"lid_hole_style"`

	FilletRadius  float64 `yaml:"fillet_radius" json:"fillet_radius" validate:"gte=0"`
	ScrewDiameter float64 `yaml:"screw_diameter" json:"screw_diameter" validate:"gt=0"`
	ScrewLength   float64 `yaml:"screw_length" json:"screw_length" validate:"gt=0"`
	BossDiameter  float64 `yaml:"boss_diameter" json:"boss_diameter" validate:"gt=0"`
	BossHeight    float64 `yaml:"boss_height" json:"boss_height" validate:"gt=0"`
	SnapDepth     float64 `yaml:"snap_depth" json:"snap_depth" validate:"gt=0"`
	SnapWidth     float64 `yaml:"snap_width" json:"snap_width" validate:"gt=0"`

	// StandoffClearance is added to the PCB screw diameter to size the
	// standoff boss.
	StandoffClearance float64 `yaml:"standoff_clearance" json:"standoff_clearance" validate:"gte=0"`
	AutoStandoffs     bool    `yaml:"auto_standoffs" json:"auto_standoffs"`
}

// DefaultEnclosureConfig returns the stock generation parameters.
func DefaultEnclosureConfig() EnclosureConfig {
	return EnclosureConfig{
		PaddingX:          3,
		PaddingY:          3,
		PaddingZ:          3,
		WallThickness:     2.5,
		FloorThickness:    2.5,
		LidThickness:      2,
		Style:             StyleClassic,
		LidStyle:          LidScrews,
		LidHoleStyle:      HoleThrough,
		FilletRadius:      1.5,
		ScrewDiameter:     3,
		ScrewLength:       10,
		BossDiameter:      7,
		BossHeight:        5,
		SnapDepth:         1.5,
		SnapWidth:         8,
		StandoffClearance: 4,
		AutoStandoffs:     true,
	}
}

// PartConfig overrides the global config for one part. Zero values
// inherit the EnclosureConfig setting.
type PartConfig struct {
	// Enabled opts the tray and bracket parts in. Base and lid are
	// governed by LidStyle instead: every run builds a base, and a lid
	// is built unless LidStyle is none.
	Enabled       bool      `yaml:"enabled" json:"enabled"`
	WallThickness float64   `yaml:"wall_thickness" json:"wall_thickness" validate:"gte=0"`
	FilletRadius  float64   `yaml:"fillet_radius" json:"fillet_radius" validate:"gte=0"`
	EdgeStyle     EdgeStyle `yaml:"edge_style" json:"edge_style"`
	ChamferSize   float64   `yaml:"chamfer_size" json:"chamfer_size" validate:"gte=0"`

	TrayZ         float64 `yaml:"tray_z" json:"tray_z" validate:"gte=0"`
	TrayThickness float64 `yaml:"tray_thickness" json:"tray_thickness" validate:"gte=0"`

	BracketHoleDiameter float64 `yaml:"bracket_hole_diameter" json:"bracket_hole_diameter" validate:"gte=0"`
}

// PartsConfig enables and configures the four parts. The base part is
// always generated regardless of its Enabled flag.
type PartsConfig struct {
	Base    PartConfig `yaml:"base" json:"base"`
	Lid     PartConfig `yaml:"lid" json:"lid"`
	Tray    PartConfig `yaml:"tray" json:"tray"`
	Bracket PartConfig `yaml:"bracket" json:"bracket"`
}

// FootprintConfig selects the plan outline shape. Zero notch/tab sizes
// use shape-specific default fractions of the enclosure dimensions.
type FootprintConfig struct {
	Shape FootprintShape `yaml:"shape" json:"shape"`

	NotchWidth float64 `yaml:"notch_width" json:"notch_width" validate:"gte=0"` // L, U
	NotchDepth float64 `yaml:"notch_depth" json:"notch_depth" validate:"gte=0"`
	TabWidth   float64 `yaml:"tab_width" json:"tab_width" validate:"gte=0"` // plus
	TabDepth   float64 `yaml:"tab_depth" json:"tab_depth" validate:"gte=0"`

	ArmFraction float64 `yaml:"arm_fraction" json:"arm_fraction" validate:"gte=0,lte=1"` // T
	OpenSide    Face    `yaml:"open_side" json:"open_side"`                              // U
}

// Request is the full input to one generation run. Generate is a pure
// function of the request; no state is retained between calls.
type Request struct {
	Components []Component       `yaml:"components" json:"components" validate:"min=1,dive"`
	Connectors []ConnectorCutout `yaml:"connectors" json:"connectors" validate:"dive"`
	Cutouts    []CustomCutout    `yaml:"cutouts" json:"cutouts" validate:"dive"`
	Config     EnclosureConfig   `yaml:"config" json:"config"`
	Parts      PartsConfig       `yaml:"parts" json:"parts"`
	Footprint  FootprintConfig   `yaml:"footprint" json:"footprint"`
}

// Dimensions reports the enclosure bounding sizes in millimeters.
// Outer.Z is the base part height; Assembled adds the lid on top.
type Dimensions struct {
	Inner     r3.Vec  `json:"inner"`
	Outer     r3.Vec  `json:"outer"`
	Assembled float64 `json:"assembled_height"`
}

// Part is one finished solid ready for meshing and export.
type Part struct {
	Name  PartName `json:"name"`
	Solid sdf.SDF3 `json:"-"`
	// Size is the nominal bounding size of the part solid.
	Size r3.Vec `json:"size"`
}

// Result is the terminal state of one generation run: the best
// achievable set of parts plus structured failures and warnings.
type Result struct {
	Parts      []Part       `json:"parts"`
	Dimensions Dimensions   `json:"dimensions"`
	Warnings   []Warning    `json:"warnings"`
	Failures   []*PartError `json:"failures"`
}

// Part returns the built part by name, or nil when it failed or was
// not enabled.
func (r *Result) Part(name PartName) *Part {
	for i := range r.Parts {
		if r.Parts[i].Name == name {
			return &r.Parts[i]
		}
	}
	return nil
}
