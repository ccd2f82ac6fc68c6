package shellforge

import (
	"fmt"
	"math"

	"github.com/shellforge/shellforge/sdf"
	"github.com/shellforge/shellforge/sdf/form3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Lid fit constants.
const (
	rimClearance  = 0.15 // radial gap between the lid rim and the cavity wall
	rimWall       = 1.8
	rimHeight     = 4
	snapGrooveH   = 2
	snapGrooveTop = 3 // groove center distance below the base rim
	snapMinSkin   = 1 // wall material left behind the snap groove
	boltClearance = 0.25
)

// assembler runs one generation request through the pipeline:
// Validate, BuildFootprint, BuildShells, ApplyCutouts, ApplyStandoffs,
// FinalizeEdges. Export happens separately on the returned parts.
type assembler struct {
	req *Request
	cfg EnclosureConfig

	inner      r3.Vec  // inner cavity sizes
	wall       float64 // effective base wall, shared with dimensions and lid
	snapDepth  float64 // snap groove depth clamped to the wall
	components []Component
	footprint  *Footprint
	specs      []cutoutSpec

	// set while the base builds, consumed by the lid
	screwPosts []r2.Vec

	res *Result
}

// Generate runs the full pipeline on one request. It is a pure
// function of the request: identical input yields dimensionally
// identical parts. A validation failure returns a ValidationErrors and
// no result; geometric and per-part failures are reported inside the
// result.
func Generate(req Request) (*Result, error) {
	normalizeConfig(&req.Config)
	if err := Validate(&req); err != nil {
		return nil, err
	}
	a := &assembler{req: &req, cfg: req.Config, res: &Result{}}

	a.measure()
	if err := a.buildFootprint(); err != nil {
		return a.res, nil
	}
	a.collectCutouts()

	a.run(PartBase, true, a.buildBase)
	lidEnabled := a.cfg.LidStyle != LidNone
	if !lidEnabled && req.Parts.Lid.Enabled {
		a.warn(warnf("lid", -1, "lid style none: base closes itself, lid part omitted"))
	}
	a.run(PartLid, lidEnabled, a.buildLid)
	a.run(PartTray, req.Parts.Tray.Enabled, a.buildTray)
	a.run(PartBracket, req.Parts.Bracket.Enabled, a.buildBracket)
	return a.res, nil
}

// normalizeConfig fills unset (zero) config fields with the stock
// defaults before validation, so a sparse request still validates.
func normalizeConfig(cfg *EnclosureConfig) {
	def := DefaultEnclosureConfig()
	fill := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	fill(&cfg.PaddingX, def.PaddingX)
	fill(&cfg.PaddingY, def.PaddingY)
	fill(&cfg.PaddingZ, def.PaddingZ)
	fill(&cfg.WallThickness, def.WallThickness)
	fill(&cfg.FloorThickness, def.FloorThickness)
	fill(&cfg.LidThickness, def.LidThickness)
	fill(&cfg.FilletRadius, def.FilletRadius)
	fill(&cfg.ScrewDiameter, def.ScrewDiameter)
	fill(&cfg.ScrewLength, def.ScrewLength)
	fill(&cfg.BossDiameter, def.BossDiameter)
	fill(&cfg.BossHeight, def.BossHeight)
	fill(&cfg.SnapDepth, def.SnapDepth)
	fill(&cfg.SnapWidth, def.SnapWidth)
	fill(&cfg.StandoffClearance, def.StandoffClearance)
}

// measure sizes the cavity from the union bounding box of every
// placed component plus padding, and recenters the components on the
// enclosure origin.
func (a *assembler) measure() {
	union := a.req.Components[0].bounds()
	for i := 1; i < len(a.req.Components); i++ {
		b := a.req.Components[i].bounds()
		union.Min = r3.Vec{X: math.Min(union.Min.X, b.Min.X), Y: math.Min(union.Min.Y, b.Min.Y), Z: math.Min(union.Min.Z, b.Min.Z)}
		union.Max = r3.Vec{X: math.Max(union.Max.X, b.Max.X), Y: math.Max(union.Max.Y, b.Max.Y), Z: math.Max(union.Max.Z, b.Max.Z)}
	}
	size := r3.Sub(union.Max, union.Min)
	cfg := a.cfg
	a.wall = cfg.WallThickness
	if pc := a.req.Parts.Base; pc.WallThickness > 0 {
		a.wall = pc.WallThickness
	}
	a.snapDepth = cfg.SnapDepth
	if limit := math.Max(0, a.wall-snapMinSkin); cfg.LidStyle == LidSnap && a.snapDepth > limit {
		a.warn(warnf("lid", -1, "snap depth %.3gmm would pierce the %.3gmm wall, clamped to %.3gmm",
			a.snapDepth, a.wall, limit))
		a.snapDepth = limit
	}
	a.inner = r3.Vec{
		X: size.X + 2*cfg.PaddingX,
		Y: size.Y + 2*cfg.PaddingY,
		Z: union.Max.Z + 2*cfg.PaddingZ,
	}

	// recenter plan coordinates on the component union center
	cx := (union.Min.X + union.Max.X) / 2
	cy := (union.Min.Y + union.Max.Y) / 2
	a.components = make([]Component, len(a.req.Components))
	copy(a.components, a.req.Components)
	for i := range a.components {
		a.components[i].X -= cx
		a.components[i].Y -= cy
	}

	baseH := cfg.FloorThickness + a.inner.Z
	if cfg.LidStyle == LidNone {
		baseH += cfg.LidThickness
	}
	a.res.Dimensions = Dimensions{
		Inner:     a.inner,
		Outer:     r3.Vec{X: a.inner.X + 2*a.wall, Y: a.inner.Y + 2*a.wall, Z: baseH},
		Assembled: a.inner.Z + cfg.FloorThickness + cfg.LidThickness,
	}
}

// buildFootprint synthesizes the cavity outline. A degenerate outline
// fails every shell part.
func (a *assembler) buildFootprint() error {
	fp, warns, err := BuildFootprint(a.req.Footprint, a.inner.X, a.inner.Y)
	a.res.Warnings = append(a.res.Warnings, warns...)
	if err != nil {
		a.res.Failures = append(a.res.Failures,
			&PartError{Part: PartBase, Op: "footprint", Err: err},
			&PartError{Part: PartLid, Op: "footprint", Err: err})
		return err
	}
	a.footprint = fp
	return nil
}

func (a *assembler) collectCutouts() {
	for _, c := range a.req.Connectors {
		a.specs = append(a.specs, connectorSpec(c))
	}
	for _, c := range a.req.Cutouts {
		a.specs = append(a.specs, customSpec(c))
	}
}

func (a *assembler) warn(w ...Warning) {
	a.res.Warnings = append(a.res.Warnings, w...)
}

// run builds one part with panic isolation: a failed boolean or
// constructor inside one part never prevents the others.
func (a *assembler) run(name PartName, enabled bool, build func(op *string) (sdf.SDF3, r3.Vec, error)) {
	if !enabled {
		return
	}
	op := "assemble"
	solid, size, err := func() (s sdf.SDF3, sz r3.Vec, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()
		return build(&op)
	}()
	if err != nil {
		perr := &PartError{Part: name, Op: op, Err: err}
		a.res.Failures = append(a.res.Failures, perr)
		return
	}
	a.res.Parts = append(a.res.Parts, Part{Name: name, Solid: solid, Size: size})
}

// baseGeom resolves the wall frame shared by cutout and standoff
// placement on the base.
func (a *assembler) baseGeom(shell *builtShell) wallGeom {
	g := wallGeom{
		Inner: a.inner,
		Plan:  shell.Outer.Bounds(),
		Wall:  shell.Wall,
		Floor: shell.Floor,
		SideZ: shell.Floor + shell.InnerH/2,
	}
	if a.cfg.LidStyle == LidNone {
		g.TopThick = a.cfg.LidThickness
		g.TopZ = shell.Height - a.cfg.LidThickness/2
	}
	return g
}

func (a *assembler) buildBase(op *string) (sdf.SDF3, r3.Vec, error) {
	cfg := a.cfg
	pc := a.req.Parts.Base

	*op = "shell"
	wall := a.wall
	top := 0.0
	if cfg.LidStyle == LidNone {
		top = cfg.LidThickness
	}
	fillet := cfg.FilletRadius
	if pc.FilletRadius > 0 {
		fillet = pc.FilletRadius
	}
	shell, warns := buildShell(shellSpec{
		Footprint: a.footprint,
		InnerH:    a.inner.Z,
		Wall:      wall,
		Floor:     cfg.FloorThickness,
		Top:       top,
		Style:     cfg.Style,
		Fillet:    fillet,
	})
	a.warn(warns...)
	solid := shell.Solid

	*op = "cutouts"
	faces := map[Face]bool{
		FaceFront: true, FaceBack: true, FaceLeft: true, FaceRight: true,
		FaceBottom: true,
		FaceTop:    cfg.LidStyle == LidNone,
	}
	geom := a.baseGeom(shell)
	solid, cuts, warns := applyCutouts(solid, a.specs, faces, geom)
	a.warn(warns...)

	*op = "standoffs"
	bosses, bores, warns := synthesizeStandoffs(a.components, cfg, shell.Inner.SDF(), cuts, shell.Floor)
	a.warn(warns...)
	if len(bosses) > 0 {
		solid = sdf.Union3D(append([]sdf.SDF3{solid}, bosses...)...)
		solid = sdf.Difference3D(solid, sdf.Union3D(bores...))
	}

	*op = "fastening"
	solid = a.applyLidFit(solid, shell)

	*op = "edges"
	edgeSize := fillet
	if pc.EdgeStyle == EdgeChamfer {
		edgeSize = pc.ChamferSize
	}
	var edgeWarns []Warning
	solid = applyEdgeStyle(solid, shell.Outer.SDF(), shell.Height, cfg.Style,
		pc.EdgeStyle, edgeSize, shell.Wall, &edgeWarns)
	a.warn(edgeWarns...)

	size := r3.Vec{X: a.res.Dimensions.Outer.X, Y: a.res.Dimensions.Outer.Y, Z: shell.Height}
	return solid, size, nil
}

// applyLidFit adds the base half of the lid attachment: corner screw
// posts, a snap groove, or nothing for a closed top.
func (a *assembler) applyLidFit(solid sdf.SDF3, shell *builtShell) sdf.SDF3 {
	cfg := a.cfg
	switch cfg.LidStyle {
	case LidNone:
		return solid
	case LidSnap:
		// groove around the cavity rim, cut into the wall from inside
		inner := shell.Inner.SDF()
		ring := sdf.Difference2D(sdf.Offset2D(inner, a.snapDepth), inner)
		zc := shell.Height - snapGrooveTop
		groove := extrudeZ(ring, zc-snapGrooveH/2, zc+snapGrooveH/2)
		return sdf.Difference3D(solid, groove)
	case LidScrews:
		bossR := cfg.BossDiameter / 2
		cavity := shell.Inner.SDF()
		bb := shell.Inner.Bounds()
		hx := (bb.Max.X - bb.Min.X) / 2
		hy := (bb.Max.Y - bb.Min.Y) / 2
		corners := []r2.Vec{
			{X: -hx + bossR, Y: -hy + bossR},
			{X: hx - bossR, Y: -hy + bossR},
			{X: hx - bossR, Y: hy - bossR},
			{X: -hx + bossR, Y: hy - bossR},
		}
		var posts []sdf.SDF3
		a.screwPosts = a.screwPosts[:0]
		for _, c := range corners {
			// posts must sit inside the cavity; non-rectangular
			// footprints leave some bounding-box corners in air
			if cavity.Evaluate(c) > -bossR*0.5 {
				a.warn(warnf("lid", -1, "screw post at (%.3g, %.3g) outside the cavity, skipped", c.X, c.Y))
				continue
			}
			post := form3.Cylinder(cfg.BossHeight, bossR, 0)
			posts = append(posts, sdf.Transform3D(post,
				sdf.Translate3d(r3.Vec{X: c.X, Y: c.Y, Z: shell.Height - cfg.BossHeight/2})))
			a.screwPosts = append(a.screwPosts, c)
		}
		if len(posts) == 0 {
			a.warn(warnf("lid", -1, "no screw posts fit the cavity, lid screws omitted"))
			return solid
		}
		solid = sdf.Union3D(append([]sdf.SDF3{solid}, posts...)...)
		// pilot bores sized for the screw to bite
		pilotR := math.Max(0.5, (cfg.ScrewDiameter-0.5)/2)
		depth := math.Min(cfg.ScrewLength, shell.Height-1)
		var bores []sdf.SDF3
		for _, c := range a.screwPosts {
			bore := form3.Cylinder(depth+0.5, pilotR, 0)
			bores = append(bores, sdf.Transform3D(bore,
				sdf.Translate3d(r3.Vec{X: c.X, Y: c.Y, Z: shell.Height + 0.25 - (depth+0.5)/2})))
		}
		return sdf.Difference3D(solid, sdf.Union3D(bores...))
	}
	return solid
}

// buildLid builds the lid in print orientation: plate from z=0 to the
// lid thickness, mating rim above it.
func (a *assembler) buildLid(op *string) (sdf.SDF3, r3.Vec, error) {
	cfg := a.cfg
	pc := a.req.Parts.Lid

	*op = "shell"
	wall := a.wall
	inner := a.footprint.SDF()
	outerFP := a.footprint.Offset(wall)
	outer := outerFP.SDF()
	if cfg.Style == StyleRounded {
		var warns []Warning
		r := clampEdgeSize(cfg.FilletRadius, wall, &warns)
		a.warn(warns...)
		if r > 0 {
			outer = sdf.Offset2D(outerFP.Offset(-r).SDF(), r)
		}
	}
	lidT := cfg.LidThickness
	solid := extrudeZ(outer, 0, lidT)

	// mating rim: a band just inside the cavity wall
	rimOuter := sdf.Offset2D(inner, -rimClearance)
	rim := sdf.Difference2D(rimOuter, sdf.Offset2D(inner, -(rimClearance+rimWall)))
	solid = sdf.Union3D(solid, extrudeZ(rim, lidT, lidT+rimHeight))

	*op = "fastening"
	switch cfg.LidStyle {
	case LidSnap:
		solid = sdf.Union3D(solid, a.snapRidge(inner, lidT))
	case LidScrews:
		solid = a.lidScrewHoles(solid, lidT, pc)
	}

	*op = "cutouts"
	geom := wallGeom{
		Inner:    a.inner,
		Plan:     outerFP.Bounds(),
		Wall:     wall,
		TopZ:     lidT / 2,
		TopThick: lidT,
	}
	solid, _, warns := applyCutouts(solid, a.specs, map[Face]bool{FaceTop: true}, geom)
	a.warn(warns...)

	*op = "edges"
	edgeSize := cfg.FilletRadius
	if pc.FilletRadius > 0 {
		edgeSize = pc.FilletRadius
	}
	if pc.EdgeStyle == EdgeChamfer {
		edgeSize = pc.ChamferSize
	}
	var edgeWarns []Warning
	solid = applyEdgeStyle(solid, outer, lidT, cfg.Style, pc.EdgeStyle, edgeSize, wall, &edgeWarns)
	a.warn(edgeWarns...)

	size := r3.Vec{X: a.res.Dimensions.Outer.X, Y: a.res.Dimensions.Outer.Y, Z: lidT + rimHeight}
	return solid, size, nil
}

// snapRidge builds the lid half of the snap fit: short ridge tabs on
// the rim that land in the base groove.
func (a *assembler) snapRidge(inner sdf.SDF2, lidT float64) sdf.SDF3 {
	cfg := a.cfg
	const fitClearance = 0.1
	ring := sdf.Difference2D(
		sdf.Offset2D(inner, a.snapDepth-fitClearance),
		sdf.Offset2D(inner, -rimClearance))
	// the groove sits snapGrooveTop below the base rim; in lid print
	// orientation that is snapGrooveTop above the plate
	zc := lidT + snapGrooveTop
	ridge := extrudeZ(ring, zc-(snapGrooveH-2*fitClearance)/2, zc+(snapGrooveH-2*fitClearance)/2)

	// one tab per wall, SnapWidth wide
	bb := inner.Bounds()
	size := r2.Sub(bb.Max, bb.Min)
	big := math.Max(size.X, size.Y) + 4*cfg.SnapDepth
	tabs := sdf.Union3D(
		tabBox(cfg.SnapWidth, big, zc, 0, bb.Max.Y),
		tabBox(cfg.SnapWidth, big, zc, 0, bb.Min.Y),
		tabBox(big, cfg.SnapWidth, zc, bb.Max.X, 0),
		tabBox(big, cfg.SnapWidth, zc, bb.Min.X, 0),
	)
	return sdf.Intersect3D(ridge, tabs)
}

func tabBox(w, d, zc, x, y float64) sdf.SDF3 {
	b := form3.Box(r3.Vec{X: w, Y: d, Z: snapGrooveH + 1}, 0)
	return sdf.Transform3D(b, sdf.Translate3d(r3.Vec{X: x, Y: y, Z: zc}))
}

// lidScrewHoles drills one fastening bore per base screw post with the
// configured hole treatment.
func (a *assembler) lidScrewHoles(solid sdf.SDF3, lidT float64, pc PartConfig) sdf.SDF3 {
	cfg := a.cfg
	if len(a.screwPosts) == 0 {
		return solid
	}
	style := cfg.LidHoleStyle
	if style == HoleClosed {
		return solid
	}
	screwR := cfg.ScrewDiameter/2 + boltClearance
	var cuts []sdf.SDF3
	for _, c := range a.screwPosts {
		bore := form3.Cylinder(lidT+rimHeight+1, screwR, 0)
		cuts = append(cuts, sdf.Transform3D(bore,
			sdf.Translate3d(r3.Vec{X: c.X, Y: c.Y, Z: (lidT + rimHeight) / 2})))
		if style == HoleCountersunk {
			// taper widening toward the outside face (z=0 in print
			// orientation)
			depth := lidT / 2
			sink := form3.Cone(depth+0.2, cfg.ScrewDiameter+2*boltClearance, screwR)
			cuts = append(cuts, sdf.Transform3D(sink,
				sdf.Translate3d(r3.Vec{X: c.X, Y: c.Y, Z: (depth - 0.2) / 2})))
		}
	}
	return sdf.Difference3D(solid, sdf.Union3D(cuts...))
}

// buildTray builds the optional internal shelf as its own printable
// plate, inset from the cavity walls. Like the lid it is modeled in
// print orientation at z=0; TrayZ is the installation height inside
// the cavity and only gates that the shelf fits under the rim.
func (a *assembler) buildTray(op *string) (sdf.SDF3, r3.Vec, error) {
	const trayInset = 2
	cfg := a.req.Parts.Tray

	*op = "tray"
	if cfg.TrayZ < 0 || cfg.TrayZ > a.inner.Z-cfg.TrayThickness {
		return nil, r3.Vec{}, &GeomError{Feature: "tray", ID: -1, Axis: "z",
			Msg: fmt.Sprintf("tray_z %.3g outside [0, %.3g]", cfg.TrayZ, a.inner.Z-cfg.TrayThickness)}
	}
	if a.inner.X <= 2*trayInset+1 || a.inner.Y <= 2*trayInset+1 {
		return nil, r3.Vec{}, &GeomError{Feature: "tray", ID: -1,
			Msg: "cavity too small for an inset tray"}
	}
	profile := sdf.Offset2D(a.footprint.SDF(), -trayInset)
	solid := extrudeZ(profile, 0, cfg.TrayThickness)
	size := r3.Vec{X: a.inner.X - 2*trayInset, Y: a.inner.Y - 2*trayInset, Z: cfg.TrayThickness}
	return solid, size, nil
}

// buildBracket builds the standalone L-profile mounting part.
func (a *assembler) buildBracket(op *string) (sdf.SDF3, r3.Vec, error) {
	const (
		bracketWidth = 30
		legLength    = 40
	)
	cfg := a.req.Parts.Bracket

	*op = "bracket"
	t := cfg.WallThickness
	if t == 0 {
		t = a.cfg.WallThickness
	}
	seat := sdf.Transform3D(
		form3.Box(r3.Vec{X: bracketWidth, Y: legLength, Z: t}, 0),
		sdf.Translate3d(r3.Vec{Y: legLength / 2, Z: t / 2}))
	upright := sdf.Transform3D(
		form3.Box(r3.Vec{X: bracketWidth, Y: t, Z: legLength}, 0),
		sdf.Translate3d(r3.Vec{Y: t / 2, Z: legLength / 2}))
	solid := sdf.Union3D(seat, upright)

	holeR := cfg.BracketHoleDiameter / 2
	hole := form3.Cylinder(t+1, holeR, 0)
	holes := sdf.Union3D(
		sdf.Transform3D(hole, sdf.Translate3d(r3.Vec{X: -bracketWidth / 4, Y: legLength * 0.6, Z: t / 2})),
		sdf.Transform3D(hole, sdf.Translate3d(r3.Vec{X: bracketWidth / 4, Y: legLength * 0.6, Z: t / 2})),
	)
	solid = sdf.Difference3D(solid, holes)
	return solid, r3.Vec{X: bracketWidth, Y: legLength, Z: legLength}, nil
}
