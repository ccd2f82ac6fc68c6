// Package form3 provides 3D signed distance primitives. Constructors
// panic on invalid dimensions; callers building user-supplied geometry
// are expected to recover at a part boundary.
package form3

import (
	"math"

	"github.com/shellforge/shellforge/internal/d2"
	"github.com/shellforge/shellforge/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// box is a 3d box.
type box struct {
	size  r3.Vec // half size, shrunk by rounding
	round float64
	bb    r3.Box
}

// Box returns an SDF3 for a 3d box centered at the origin
// (rounded corners with round > 0).
func Box(size r3.Vec, round float64) *box {
	if d3.LTEZero(size) {
		panic("size <= 0")
	}
	if round < 0 {
		panic("round < 0")
	}
	size = r3.Scale(0.5, size)
	return &box{
		size:  r3.Sub(size, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, size), Max: size},
	}
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	return sdfBox3d(p, s.size) - s.round
}

// Bounds returns the bounding box for a 3d box.
func (s *box) Bounds() r3.Box {
	return s.bb
}

func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	if d.X > 0 && d.Y > 0 && d.Z > 0 {
		return r3.Norm(d)
	}
	if d.X > 0 && d.Y > 0 {
		return math.Hypot(d.X, d.Y)
	}
	if d.X > 0 && d.Z > 0 {
		return math.Hypot(d.X, d.Z)
	}
	if d.Y > 0 && d.Z > 0 {
		return math.Hypot(d.Y, d.Z)
	}
	if d.X > 0 {
		return d.X
	}
	if d.Y > 0 {
		return d.Y
	}
	if d.Z > 0 {
		return d.Z
	}
	return d3.Max(d)
}

// cylinder is a z-axis cylinder centered at the origin.
type cylinder struct {
	height float64 // half height, shrunk by rounding
	radius float64
	round  float64
	bb     r3.Box
}

// Cylinder returns an SDF3 for a cylinder
// (rounded edges with round > 0).
func Cylinder(height, radius, round float64) *cylinder {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if round < 0 {
		panic("round < 0")
	}
	if round > radius {
		panic("round > radius")
	}
	if height < 2*round {
		panic("height < 2 * round")
	}
	s := cylinder{
		height: (height / 2) - round,
		radius: radius - round,
		round:  round,
	}
	d := r3.Vec{X: radius, Y: radius, Z: height / 2}
	s.bb = r3.Box{Min: r3.Scale(-1, d), Max: d}
	return &s
}

// Evaluate returns the minimum distance to a cylinder.
func (s *cylinder) Evaluate(p r3.Vec) float64 {
	d := sdfBox2d(r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z}, r2.Vec{X: s.radius, Y: s.height})
	return d - s.round
}

// Bounds returns the bounding box for a cylinder.
func (s *cylinder) Bounds() r3.Box {
	return s.bb
}

func sdfBox2d(p, s r2.Vec) float64 {
	p = d2.AbsElem(p)
	d := r2.Sub(p, s)
	k := s.Y - s.X
	if d.X > 0 && d.Y > 0 {
		return r2.Norm(d)
	}
	if p.Y-p.X > k {
		return d.Y
	}
	return d.X
}

// cone is a truncated z-axis cone centered at the origin.
type cone struct {
	height float64 // half height
	r0     float64 // bottom radius (z = -height)
	r1     float64 // top radius (z = +height)
	bb     r3.Box
}

// Cone returns an SDF3 for a truncated cone with bottom radius r0 and
// top radius r1. Used for countersink tapers.
func Cone(height, r0, r1 float64) *cone {
	if height <= 0 {
		panic("height <= 0")
	}
	if r0 <= 0 || r1 <= 0 {
		panic("radius <= 0")
	}
	s := cone{
		height: height / 2,
		r0:     r0,
		r1:     r1,
	}
	rmax := math.Max(r0, r1)
	d := r3.Vec{X: rmax, Y: rmax, Z: height / 2}
	s.bb = r3.Box{Min: r3.Scale(-1, d), Max: d}
	return &s
}

// Evaluate returns the minimum distance to a truncated cone.
// Exact distance, see https://iquilezles.org/articles/distfunctions/.
func (s *cone) Evaluate(p r3.Vec) float64 {
	q := r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z}
	k1 := r2.Vec{X: s.r1, Y: s.height}
	k2 := r2.Vec{X: s.r1 - s.r0, Y: 2 * s.height}
	capr := s.r1
	if q.Y < 0 {
		capr = s.r0
	}
	ca := r2.Vec{X: q.X - math.Min(q.X, capr), Y: math.Abs(q.Y) - s.height}
	t := clamp(r2.Dot(r2.Sub(k1, q), k2)/r2.Norm2(k2), 0, 1)
	cb := r2.Add(r2.Sub(q, k1), r2.Scale(t, k2))
	sign := 1.0
	if cb.X < 0 && ca.Y < 0 {
		sign = -1.0
	}
	return sign * math.Sqrt(math.Min(r2.Norm2(ca), r2.Norm2(cb)))
}

// Bounds returns the bounding box for a truncated cone.
func (s *cone) Bounds() r3.Box {
	return s.bb
}

func clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}
