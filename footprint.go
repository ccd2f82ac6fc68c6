package shellforge

import (
	"math"

	"github.com/shellforge/shellforge/sdf"
	"github.com/shellforge/shellforge/sdf/form2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Footprint is the plan-view outline polygon of the enclosure,
// counter-clockwise and centered at the origin.
type Footprint struct {
	Verts []r2.Vec
}

// SDF returns the signed distance field of the outline.
func (f *Footprint) SDF() sdf.SDF2 {
	return form2.Polygon(f.Verts)
}

// Area returns the enclosed area.
func (f *Footprint) Area() float64 {
	return signedArea(f.Verts)
}

// Bounds returns the outline bounding box.
func (f *Footprint) Bounds() r2.Box {
	bb := r2.Box{Min: f.Verts[0], Max: f.Verts[0]}
	for _, v := range f.Verts[1:] {
		bb.Min = r2.Vec{X: math.Min(bb.Min.X, v.X), Y: math.Min(bb.Min.Y, v.Y)}
		bb.Max = r2.Vec{X: math.Max(bb.Max.X, v.X), Y: math.Max(bb.Max.Y, v.Y)}
	}
	return bb
}

// Offset returns the outline offset outward by d with sharp (mitred)
// corners. Negative d shrinks the outline.
func (f *Footprint) Offset(d float64) *Footprint {
	n := len(f.Verts)
	out := make([]r2.Vec, n)
	for i := 0; i < n; i++ {
		prev := f.Verts[(i+n-1)%n]
		cur := f.Verts[i]
		next := f.Verts[(i+1)%n]
		n1 := outwardNormal(prev, cur)
		n2 := outwardNormal(cur, next)
		// mitre join: shift the vertex so both adjacent edges move
		// outward by exactly d
		m := r2.Scale(1/(1+r2.Dot(n1, n2)), r2.Add(n1, n2))
		out[i] = r2.Add(cur, r2.Scale(d, m))
	}
	return &Footprint{Verts: out}
}

// outwardNormal is the unit normal of edge a->b pointing out of a
// counter-clockwise polygon.
func outwardNormal(a, b r2.Vec) r2.Vec {
	e := r2.Unit(r2.Sub(b, a))
	return r2.Vec{X: e.Y, Y: -e.X}
}

func signedArea(v []r2.Vec) float64 {
	area := 0.0
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += v[i].X*v[j].Y - v[j].X*v[i].Y
	}
	return area / 2
}

// Default notch/tab fractions of the relevant plan dimension.
const (
	lNotchFraction   = 0.4
	uNotchFraction   = 0.4
	tArmFraction     = 0.3
	plusTabWFraction = 0.4
	plusTabDFraction = 0.3
)

type footprintBuilder func(cfg FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error)

var footprintBuilders = map[FootprintShape]footprintBuilder{
	FootprintRect:    buildRect,
	FootprintL:       buildL,
	FootprintT:       buildT,
	FootprintU:       buildU,
	FootprintPlus:    buildPlus,
	FootprintHexagon: buildNgon(6),
	FootprintOctagon: buildNgon(8),
}

// BuildFootprint computes the outline polygon for the configured shape
// and target plan dimensions. Unspecified notch/tab sizes default to a
// fraction of the relevant dimension; oversized explicit values are
// clamped with a non-fatal warning. Degenerate parameters return a
// shape-specific error.
func BuildFootprint(cfg FootprintConfig, width, depth float64) (*Footprint, []Warning, error) {
	build, ok := footprintBuilders[cfg.Shape]
	if !ok {
		return nil, nil, &GeomError{Feature: "footprint", ID: -1, Msg: "unknown footprint shape"}
	}
	verts, warns, err := build(cfg, width, depth)
	if err != nil {
		return nil, warns, err
	}
	if signedArea(verts) <= sdfTolerance {
		return nil, warns, &GeomError{Feature: "footprint", ID: -1,
			Msg: cfg.Shape.String() + " footprint has zero or negative area"}
	}
	return &Footprint{Verts: verts}, warns, nil
}

const sdfTolerance = 1e-9

func buildRect(_ FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error) {
	hx, hy := w/2, d/2
	return []r2.Vec{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	}, nil, nil
}

// clampCut limits a notch/tab size to keep the polygon simple. Zero
// selects the default fraction.
func clampCut(name string, size, dim, fraction float64, warns *[]Warning) float64 {
	if size == 0 {
		return dim * fraction
	}
	if size >= dim {
		*warns = append(*warns, warnf("footprint", -1, "%s %.3gmm exceeds dimension %.3gmm, clamped to %.3gmm",
			name, size, dim, 0.9*dim))
		return 0.9 * dim
	}
	return size
}

// buildL cuts a notch from the +x,+y corner.
func buildL(cfg FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error) {
	var warns []Warning
	nw := clampCut("notch width", cfg.NotchWidth, w, lNotchFraction, &warns)
	nd := clampCut("notch depth", cfg.NotchDepth, d, lNotchFraction, &warns)
	hx, hy := w/2, d/2
	return []r2.Vec{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy - nd},
		{X: hx - nw, Y: hy - nd},
		{X: hx - nw, Y: hy},
		{X: -hx, Y: hy},
	}, warns, nil
}

// buildT is a full-width bar across the +y side with a centered stem.
func buildT(cfg FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error) {
	var warns []Warning
	f := cfg.ArmFraction
	if f == 0 {
		f = tArmFraction
	}
	if f < 0.1 || f > 0.9 {
		warns = append(warns, warnf("footprint", -1, "arm fraction %.3g clamped to [0.1, 0.9]", f))
		f = sdf.Clamp(f, 0.1, 0.9)
	}
	sw := f * w // stem width
	bd := f * d // bar depth
	hx, hy := w/2, d/2
	return []r2.Vec{
		{X: -sw / 2, Y: -hy},
		{X: sw / 2, Y: -hy},
		{X: sw / 2, Y: hy - bd},
		{X: hx, Y: hy - bd},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
		{X: -hx, Y: hy - bd},
		{X: -sw / 2, Y: hy - bd},
	}, warns, nil
}

// buildU cuts a centered notch from the configured open side.
func buildU(cfg FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error) {
	var warns []Warning
	switch cfg.OpenSide {
	case FaceTop, FaceBottom:
		return nil, nil, &GeomError{Feature: "footprint", ID: -1,
			Msg: "u-shape open side must be a side wall face"}
	case FaceLeft, FaceRight:
		// a quarter turn swaps the plan extents, so build for the
		// swapped dimensions and rotate back into a w x d plan
		w, d = d, w
	}
	// construct with the opening toward +y, then rotate into place
	nw := clampCut("notch width", cfg.NotchWidth, w, uNotchFraction, &warns)
	nd := clampCut("notch depth", cfg.NotchDepth, d, uNotchFraction, &warns)
	hx, hy := w/2, d/2
	verts := []r2.Vec{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: nw / 2, Y: hy},
		{X: nw / 2, Y: hy - nd},
		{X: -nw / 2, Y: hy - nd},
		{X: -nw / 2, Y: hy},
		{X: -hx, Y: hy},
	}
	return rotateQuarter(verts, cfg.OpenSide), warns, nil
}

// rotateQuarter rotates a +y-facing outline so the feature faces the
// named side. Quarter turns are exact so no tolerance is lost.
func rotateQuarter(verts []r2.Vec, side Face) []r2.Vec {
	var turn func(r2.Vec) r2.Vec
	switch side {
	case FaceFront:
		return verts
	case FaceBack:
		turn = func(v r2.Vec) r2.Vec { return r2.Vec{X: -v.X, Y: -v.Y} }
	case FaceRight:
		turn = func(v r2.Vec) r2.Vec { return r2.Vec{X: v.Y, Y: -v.X} }
	case FaceLeft:
		turn = func(v r2.Vec) r2.Vec { return r2.Vec{X: -v.Y, Y: v.X} }
	default:
		return verts
	}
	out := make([]r2.Vec, len(verts))
	for i, v := range verts {
		out[i] = turn(v)
	}
	return out
}

// buildPlus is a cross of two centered bars.
func buildPlus(cfg FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error) {
	var warns []Warning
	tw := clampCut("tab width", cfg.TabWidth, w, plusTabWFraction, &warns)
	td := clampCut("tab depth", cfg.TabDepth, d, plusTabDFraction, &warns)
	hx, hy := w/2, d/2
	ax, ay := tw/2, td/2
	return []r2.Vec{
		{X: ax, Y: -hy},
		{X: ax, Y: -ay},
		{X: hx, Y: -ay},
		{X: hx, Y: ay},
		{X: ax, Y: ay},
		{X: ax, Y: hy},
		{X: -ax, Y: hy},
		{X: -ax, Y: ay},
		{X: -hx, Y: ay},
		{X: -hx, Y: -ay},
		{X: -ax, Y: -ay},
		{X: -ax, Y: -hy},
	}, warns, nil
}

func buildNgon(sides int) footprintBuilder {
	return func(_ FootprintConfig, w, d float64) ([]r2.Vec, []Warning, error) {
		radius := math.Min(w, d) / 2
		if radius <= 0 {
			return nil, nil, &GeomError{Feature: "footprint", ID: -1, Msg: "polygon radius <= 0"}
		}
		return form2.Nagon(sides, radius), nil, nil
	}
}
