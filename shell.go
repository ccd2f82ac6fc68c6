package shellforge

import (
	"math"

	"github.com/shellforge/shellforge/sdf"
	"github.com/shellforge/shellforge/sdf/form3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Wall style constants.
const (
	minimalWallThickness = 1.2
	ventPitch            = 8
	ventSlotWidth        = 2
	ventMargin           = ventPitch // corner clearance, one pitch
	ribPitch             = 10
	ribWidth             = 2
	ribProud             = 1 // ribs extend past the nominal wall
)

// shellSpec is the input to the shell builder. Top = 0 leaves the
// shell open for a separate lid; a positive Top closes it with a skin
// of that thickness.
type shellSpec struct {
	Footprint *Footprint // cavity outline
	InnerH    float64
	Wall      float64
	Floor     float64
	Top       float64
	Style     Style
	Fillet    float64
}

// builtShell is the wall-and-floor solid before cutouts and bosses.
type builtShell struct {
	Solid  sdf.SDF3
	Inner  *Footprint
	Outer  *Footprint
	Wall   float64 // effective wall thickness after style clamps
	Floor  float64
	InnerH float64
	Height float64 // total solid height including any top skin
}

// buildShell extrudes the footprint into the wall-and-floor solid and
// applies the style treatment. Clamped parameters are reported as
// warnings, not errors.
func buildShell(spec shellSpec) (*builtShell, []Warning) {
	var warns []Warning
	wall := spec.Wall
	if spec.Style == StyleMinimal && wall < minimalWallThickness {
		warns = append(warns, warnf("shell", -1,
			"minimal style wall %.3gmm raised to %.3gmm", wall, minimalWallThickness))
		wall = minimalWallThickness
	}

	inner := spec.Footprint
	outer := inner.Offset(wall)
	height := spec.Floor + spec.InnerH + spec.Top

	innerSDF := inner.SDF()
	outerSDF := outer.SDF()

	var solid sdf.SDF3
	if spec.Style == StyleRounded {
		r := clampEdgeSize(spec.Fillet, wall, &warns)
		if r > 0 {
			// round vertical corners: shrink the polygon itself by r
			// (exact mitred geometry), then grow the field back by r,
			// which leaves radius-r arcs at the convex corners. The
			// top and bottom rims round in the extrusion.
			outerSDF = sdf.Offset2D(outer.Offset(-r).SDF(), r)
			innerSDF = sdf.Offset2D(inner.Offset(-r).SDF(), r)
			solid = extrudeRoundedZ(outerSDF, 0, height, r)
		} else {
			solid = extrudeZ(outerSDF, 0, height)
		}
	} else {
		solid = extrudeZ(outerSDF, 0, height)
	}

	// cavity from the floor up; overshoot the rim when the top is open
	// so the subtraction never leaves a coplanar skin
	overshoot := 1.0
	if spec.Top > 0 {
		overshoot = 0
	}
	cavity := extrudeZ(innerSDF, spec.Floor, spec.Floor+spec.InnerH+overshoot)
	solid = sdf.Difference3D(solid, cavity)

	s := &builtShell{
		Solid:  solid,
		Inner:  inner,
		Outer:  outer,
		Wall:   wall,
		Floor:  spec.Floor,
		InnerH: spec.InnerH,
		Height: height,
	}
	if treat, ok := styleTreatments[spec.Style]; ok && treat != nil {
		s.Solid = treat(s, &warns)
	}
	return s, warns
}

type styleTreatment func(s *builtShell, warns *[]Warning) sdf.SDF3

var styleTreatments = map[Style]styleTreatment{
	StyleClassic: nil,
	StyleRounded: nil, // applied during extrusion
	StyleMinimal: nil,
	StyleVented:  ventWalls,
	StyleRibbed:  ribWalls,
}

// ventWalls subtracts periodic vertical through-slots from the side
// walls. Slots keep one pitch of clearance from every vertical edge
// and never reach the floor or the rim.
func ventWalls(s *builtShell, warns *[]Warning) sdf.SDF3 {
	const rimClearance = 2
	z0 := s.Floor + rimClearance
	z1 := s.Floor + s.InnerH - rimClearance
	if z1-z0 < ventSlotWidth {
		*warns = append(*warns, warnf("shell", -1, "walls too short to vent, style left classic"))
		return s.Solid
	}
	bb := s.Outer.Bounds()
	size := r2.Sub(bb.Max, bb.Min)
	zc := (z0 + z1) / 2
	h := z1 - z0
	cut := s.Wall + 2

	var slots []sdf.SDF3
	// front and back walls: slots spaced along x
	if xs := slotCenters(size.X); len(xs) > 0 {
		slot := form3.Box(r3.Vec{X: ventSlotWidth, Y: cut, Z: h}, 0)
		for _, y := range []float64{bb.Min.Y + s.Wall/2, bb.Max.Y - s.Wall/2} {
			pos := make([]r3.Vec, len(xs))
			for i, x := range xs {
				pos[i] = r3.Vec{X: x, Y: y, Z: zc}
			}
			slots = append(slots, sdf.Multi3D(slot, pos))
		}
	}
	// left and right walls: slots spaced along y
	if ys := slotCenters(size.Y); len(ys) > 0 {
		slot := form3.Box(r3.Vec{X: cut, Y: ventSlotWidth, Z: h}, 0)
		for _, x := range []float64{bb.Min.X + s.Wall/2, bb.Max.X - s.Wall/2} {
			pos := make([]r3.Vec, len(ys))
			for i, y := range ys {
				pos[i] = r3.Vec{X: x, Y: y, Z: zc}
			}
			slots = append(slots, sdf.Multi3D(slot, pos))
		}
	}
	if len(slots) == 0 {
		*warns = append(*warns, warnf("shell", -1, "walls too narrow to vent, style left classic"))
		return s.Solid
	}
	return sdf.Difference3D(s.Solid, sdf.Union3D(slots...))
}

// slotCenters spaces slot positions at the vent pitch along a wall of
// the given length, keeping the corner margin on both ends.
func slotCenters(length float64) []float64 {
	span := length - 2*ventMargin
	if span < ventSlotWidth {
		return nil
	}
	n := int(span/ventPitch) + 1
	start := -float64(n-1) * ventPitch / 2
	centers := make([]float64, n)
	for i := range centers {
		centers[i] = start + float64(i)*ventPitch
	}
	return centers
}

// ribWalls unions raised vertical ribs onto the outer wall faces. The
// cavity is untouched; reported dimensions stay nominal.
func ribWalls(s *builtShell, _ *[]Warning) sdf.SDF3 {
	const rimClearance = 1
	h := s.Height - 2*rimClearance
	if h < ribWidth {
		return s.Solid
	}
	bb := s.Outer.Bounds()
	size := r2.Sub(bb.Max, bb.Min)
	zc := s.Height / 2
	// half the rib sits inside the nominal wall so the union is sealed
	depth := 2.0 * ribProud

	var ribs []sdf.SDF3
	if xs := ribCenters(size.X); len(xs) > 0 {
		rib := form3.Box(r3.Vec{X: ribWidth, Y: depth, Z: h}, 0)
		for _, y := range []float64{bb.Min.Y, bb.Max.Y} {
			pos := make([]r3.Vec, len(xs))
			for i, x := range xs {
				pos[i] = r3.Vec{X: x, Y: y, Z: zc}
			}
			ribs = append(ribs, sdf.Multi3D(rib, pos))
		}
	}
	if ys := ribCenters(size.Y); len(ys) > 0 {
		rib := form3.Box(r3.Vec{X: depth, Y: ribWidth, Z: h}, 0)
		for _, x := range []float64{bb.Min.X, bb.Max.X} {
			pos := make([]r3.Vec, len(ys))
			for i, y := range ys {
				pos[i] = r3.Vec{X: x, Y: y, Z: zc}
			}
			ribs = append(ribs, sdf.Multi3D(rib, pos))
		}
	}
	if len(ribs) == 0 {
		return s.Solid
	}
	return sdf.Union3D(append([]sdf.SDF3{s.Solid}, ribs...)...)
}

func ribCenters(length float64) []float64 {
	span := length - ribPitch
	if span < ribWidth {
		return nil
	}
	n := int(span/ribPitch) + 1
	start := -float64(n-1) * ribPitch / 2
	centers := make([]float64, n)
	for i := range centers {
		centers[i] = start + float64(i)*ribPitch
	}
	return centers
}

// clampEdgeSize limits a fillet/chamfer size below half the wall
// thickness. Oversized values are reduced with a warning.
func clampEdgeSize(size, wall float64, warns *[]Warning) float64 {
	limit := wall/2 - 0.05
	if limit < 0 {
		limit = 0
	}
	if size > limit {
		*warns = append(*warns, warnf("shell", -1,
			"edge size %.3gmm exceeds half the wall thickness, clamped to %.3gmm", size, limit))
		return limit
	}
	return size
}

// extrudeZ extrudes a 2D profile from z0 to z1.
func extrudeZ(profile sdf.SDF2, z0, z1 float64) sdf.SDF3 {
	s := sdf.Extrude3D(profile, z1-z0)
	return sdf.Transform3D(s, sdf.Translate3d(r3.Vec{Z: (z0 + z1) / 2}))
}

// extrudeRoundedZ extrudes a 2D profile from z0 to z1 with rounded
// top and bottom rims.
func extrudeRoundedZ(profile sdf.SDF2, z0, z1, round float64) sdf.SDF3 {
	s := sdf.ExtrudeRounded3D(profile, z1-z0, round)
	return sdf.Transform3D(s, sdf.Translate3d(r3.Vec{Z: (z0 + z1) / 2}))
}

// topEdgeCut is the removal volume of a fillet or chamfer on the top
// outer rim of an extruded solid.
type topEdgeCut struct {
	profile sdf.SDF2 // outer plan profile
	ztop    float64
	size    float64
	chamfer bool
	bb      r3.Box
}

// newTopEdgeCut builds the rim treatment cutter for the given outer
// profile and rim height.
func newTopEdgeCut(profile sdf.SDF2, ztop, size float64, chamfer bool) *topEdgeCut {
	pb := profile.Bounds()
	return &topEdgeCut{
		profile: profile,
		ztop:    ztop,
		size:    size,
		chamfer: chamfer,
		bb: r3.Box{
			Min: r3.Vec{X: pb.Min.X - 1, Y: pb.Min.Y - 1, Z: ztop - size - 1},
			Max: r3.Vec{X: pb.Max.X + 1, Y: pb.Max.Y + 1, Z: ztop + 1},
		},
	}
}

// Evaluate is negative inside the removal region. a is the depth
// inside the outer surface, b the depth below the rim; both gradients
// have unit norm so the result stays a valid lower distance bound.
func (s *topEdgeCut) Evaluate(p r3.Vec) float64 {
	a := -s.profile.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	b := s.ztop - p.Z
	if s.chamfer {
		return (a + b - s.size) / math.Sqrt2
	}
	qa := a - s.size
	qb := b - s.size
	return math.Max(math.Max(qa, qb), s.size-math.Hypot(qa, qb))
}

func (s *topEdgeCut) Bounds() r3.Box {
	return s.bb
}

// applyEdgeStyle cuts the configured rim treatment into the solid.
// Rounded and minimal styles skip it: rounded rims are already round
// and minimal applies no treatment at all.
func applyEdgeStyle(solid sdf.SDF3, outer sdf.SDF2, ztop float64, style Style,
	edge EdgeStyle, size, wall float64, warns *[]Warning) sdf.SDF3 {
	if style == StyleRounded || style == StyleMinimal || size <= 0 {
		return solid
	}
	size = clampEdgeSize(size, wall, warns)
	if size <= 0 {
		return solid
	}
	cut := newTopEdgeCut(outer, ztop, size, edge == EdgeChamfer)
	return sdf.Difference3D(solid, cut)
}
