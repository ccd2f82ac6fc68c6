package shellforge

import (
	"fmt"
	"math"

	"github.com/shellforge/shellforge/sdf"
	"github.com/shellforge/shellforge/sdf/form2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// cutoutSpec is the resolved geometry request for one opening, either
// a connector with a fixed profile or a custom shape.
type cutoutSpec struct {
	Kind    string // "connector" or "cutout"
	ID      int
	Face    Face
	Shape   CutoutShape
	Width   float64 // rectangle width; circle/polygon circumscribed diameter
	Height  float64
	Depth   float64 // 0 = full wall penetration
	OffsetU float64
	OffsetV float64
	Rot     float64 // degrees about the wall normal
}

func connectorSpec(c ConnectorCutout) cutoutSpec {
	p := c.Type.Profile()
	s := cutoutSpec{
		Kind:    "connector",
		ID:      c.ID,
		Face:    c.Face,
		OffsetU: c.OffsetX,
		OffsetV: c.OffsetY,
	}
	if p.Round() {
		s.Shape = CutoutCircle
		s.Width = p.Diameter
	} else {
		s.Shape = CutoutRect
		s.Width = p.Width
		s.Height = p.Height
	}
	return s
}

func customSpec(c CustomCutout) cutoutSpec {
	return cutoutSpec{
		Kind:    "cutout",
		ID:      c.ID,
		Face:    c.Face,
		Shape:   c.Shape,
		Width:   c.Width,
		Height:  c.Height,
		Depth:   c.Depth,
		OffsetU: c.OffsetX,
		OffsetV: c.OffsetY,
		Rot:     c.Rotation,
	}
}

// wallGeom locates the walls and skins cutouts are placed against.
// Offsets are world axes: x for front/back walls, y for left/right
// walls, x/y for the top and bottom faces.
type wallGeom struct {
	Inner r3.Vec // usable extents: inner cavity sizes
	Plan  r2.Box // outer plan bounding box
	Wall  float64
	Floor float64

	// top skin placement; zero TopThick rejects top-face cutouts
	TopZ     float64 // center height of the top skin
	TopThick float64

	SideZ float64 // center height of the side walls (cavity middle)
}

// cutoutProfile builds the 2D opening profile and its rotated
// half-extents in the wall frame.
func cutoutProfile(spec cutoutSpec) (profile sdf.SDF2, hu, hv float64, err *GeomError) {
	switch spec.Shape {
	case CutoutRect:
		profile = form2.Box(r2.Vec{X: spec.Width, Y: spec.Height}, 0)
		rot := sdf.DtoR(spec.Rot)
		c, s := math.Abs(math.Cos(rot)), math.Abs(math.Sin(rot))
		hu = (spec.Width*c + spec.Height*s) / 2
		hv = (spec.Width*s + spec.Height*c) / 2
	case CutoutCircle:
		profile = form2.Circle(spec.Width / 2)
		hu, hv = spec.Width/2, spec.Width/2
	case CutoutHexagon:
		profile = form2.Polygon(form2.Nagon(6, spec.Width/2))
		hu, hv = spec.Width/2, spec.Width/2
	case CutoutTriangle:
		profile = form2.Polygon(form2.Nagon(3, spec.Width/2))
		hu, hv = spec.Width/2, spec.Width/2
	default:
		return nil, 0, 0, &GeomError{Feature: spec.Kind, ID: spec.ID, Msg: "unknown cutout shape"}
	}
	return profile, hu, hv, nil
}

// placeCutout resolves the wall frame for the cutout's face, validates
// the opening against the usable wall extent and returns the
// subtraction solid in enclosure coordinates. Out-of-bounds specs are
// rejected per-cutout with the offending axis named.
func placeCutout(spec cutoutSpec, geom wallGeom) (sdf.SDF3, *GeomError) {
	profile, hu, hv, gerr := cutoutProfile(spec)
	if gerr != nil {
		return nil, gerr
	}

	var (
		usableU, usableV float64
		axisU, axisV     string
		skin             float64 // thickness pierced by an auto-depth cut
	)
	switch spec.Face {
	case FaceFront, FaceBack:
		usableU, usableV = geom.Inner.X, geom.Inner.Z
		axisU, axisV = "x", "z"
		skin = geom.Wall
	case FaceLeft, FaceRight:
		usableU, usableV = geom.Inner.Y, geom.Inner.Z
		axisU, axisV = "y", "z"
		skin = geom.Wall
	case FaceTop:
		if geom.TopThick <= 0 {
			return nil, &GeomError{Feature: spec.Kind, ID: spec.ID,
				Msg: "top face cutouts need a closed top or a lid part"}
		}
		usableU, usableV = geom.Inner.X, geom.Inner.Y
		axisU, axisV = "x", "y"
		skin = geom.TopThick
	case FaceBottom:
		usableU, usableV = geom.Inner.X, geom.Inner.Y
		axisU, axisV = "x", "y"
		skin = geom.Floor
	default:
		return nil, &GeomError{Feature: spec.Kind, ID: spec.ID, Msg: "unknown face"}
	}

	if math.Abs(spec.OffsetU)+hu > usableU/2 {
		return nil, &GeomError{Feature: spec.Kind, ID: spec.ID, Axis: axisU,
			Msg: fmt.Sprintf("opening %.3gmm at offset %.3gmm exceeds usable extent %.3gmm",
				2*hu, spec.OffsetU, usableU)}
	}
	if math.Abs(spec.OffsetV)+hv > usableV/2 {
		return nil, &GeomError{Feature: spec.Kind, ID: spec.ID, Axis: axisV,
			Msg: fmt.Sprintf("opening %.3gmm at offset %.3gmm exceeds usable extent %.3gmm",
				2*hv, spec.OffsetV, usableV)}
	}

	// Depth 0 pierces the wall with 0.5mm overshoot on both sides. An
	// explicit depth is a recess from the outer surface with a small
	// outward overshoot so the boolean never leaves a coplanar film.
	const surfaceOvershoot = 0.2
	var length, along float64 // along: cut center offset from the wall center, outward positive
	if spec.Depth == 0 {
		length = skin + 1
		along = 0
	} else {
		length = spec.Depth + surfaceOvershoot
		along = skin/2 + surfaceOvershoot - length/2
	}

	solid := sdf.Extrude3D(profile, length)
	m := placeMatrix(spec.Face, geom, along)
	if spec.Rot != 0 {
		m = m.Mul(sdf.RotateZ(sdf.DtoR(spec.Rot)))
	}
	// offsets move within the wall frame after orientation
	m = offsetMatrix(spec.Face, spec.OffsetU, spec.OffsetV).Mul(m)
	return sdf.Transform3D(solid, m), nil
}

// placeMatrix orients an extrusion (profile in xy, axis along z) into
// the wall of the given face and moves it to the wall center shifted
// along the outward normal.
func placeMatrix(face Face, geom wallGeom, along float64) sdf.M44 {
	switch face {
	case FaceFront:
		c := r3.Vec{Y: geom.Plan.Max.Y - geom.Wall/2 + along, Z: geom.SideZ}
		return sdf.Translate3d(c).Mul(sdf.RotateX(-math.Pi / 2))
	case FaceBack:
		c := r3.Vec{Y: geom.Plan.Min.Y + geom.Wall/2 - along, Z: geom.SideZ}
		return sdf.Translate3d(c).Mul(sdf.RotateX(math.Pi / 2))
	case FaceRight:
		c := r3.Vec{X: geom.Plan.Max.X - geom.Wall/2 + along, Z: geom.SideZ}
		return sdf.Translate3d(c).Mul(sdf.RotateZ(math.Pi / 2).Mul(sdf.RotateX(math.Pi / 2)))
	case FaceLeft:
		c := r3.Vec{X: geom.Plan.Min.X + geom.Wall/2 - along, Z: geom.SideZ}
		return sdf.Translate3d(c).Mul(sdf.RotateZ(math.Pi / 2).Mul(sdf.RotateX(math.Pi / 2)))
	case FaceTop:
		return sdf.Translate3d(r3.Vec{Z: geom.TopZ + along})
	case FaceBottom:
		return sdf.Translate3d(r3.Vec{Z: geom.Floor/2 - along})
	}
	return sdf.Identity3d()
}

// offsetMatrix moves the placed cutout within its wall frame.
func offsetMatrix(face Face, u, v float64) sdf.M44 {
	switch face {
	case FaceFront, FaceBack:
		return sdf.Translate3d(r3.Vec{X: u, Z: v})
	case FaceLeft, FaceRight:
		return sdf.Translate3d(r3.Vec{Y: u, Z: v})
	default: // top, bottom
		return sdf.Translate3d(r3.Vec{X: u, Y: v})
	}
}

// applyCutouts subtracts every accepted cutout for the listed faces
// from the solid. Rejections are collected per-cutout; accepted solids
// are also returned so standoff placement can test against them.
func applyCutouts(solid sdf.SDF3, specs []cutoutSpec, faces map[Face]bool, geom wallGeom) (sdf.SDF3, []sdf.SDF3, []Warning) {
	var (
		cuts  []sdf.SDF3
		warns []Warning
	)
	for _, spec := range specs {
		if !faces[spec.Face] {
			continue
		}
		cut, gerr := placeCutout(spec, geom)
		if gerr != nil {
			warns = append(warns, Warning{Feature: gerr.Feature, ID: gerr.ID,
				Msg: "rejected: " + gerr.Msg + axisSuffix(gerr.Axis)})
			continue
		}
		cuts = append(cuts, cut)
	}
	if len(cuts) == 0 {
		return solid, nil, warns
	}
	return sdf.Difference3D(solid, sdf.Union3D(cuts...)), cuts, warns
}

func axisSuffix(axis string) string {
	if axis == "" {
		return ""
	}
	return " (axis " + axis + ")"
}
