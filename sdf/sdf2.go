package sdf

import (
	"github.com/shellforge/shellforge/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// 2D signed distance operators.

// offset2 offsets the distance function of an existing SDF2.
type offset2 struct {
	sdf      SDF2
	distance float64
	bb       r2.Box
}

// Offset2D returns an SDF2 that offsets the distance function of
// another SDF2. A positive offset grows the shape and rounds convex
// corners with the offset radius, a negative offset shrinks it.
func Offset2D(sdf SDF2, offset float64) SDF2 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	s := offset2{
		sdf:      sdf,
		distance: offset,
	}
	bb := d2.Box(sdf.Bounds())
	s.bb = r2.Box(d2.NewBox(bb.Center(), r2.Add(bb.Size(), d2.Elem(2*offset))))
	return &s
}

// Evaluate returns the minimum distance to an offset SDF2.
func (s *offset2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(p) - s.distance
}

// Bounds returns the bounding box of an offset SDF2.
func (s *offset2) Bounds() r2.Box {
	return s.bb
}

// diff2 is the difference of two SDF2s, s0 - s1.
type diff2 struct {
	s0  SDF2
	s1  SDF2
	max MaxFunc
	bb  r2.Box
}

// Difference2D returns the difference of two SDF2s, s0 - s1.
// It panics if either argument is nil.
func Difference2D(s0, s1 SDF2) SDF2 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference2D")
	}
	return &diff2{
		s0:  s0,
		s1:  s1,
		max: maximum,
		bb:  s0.Bounds(),
	}
}

// Evaluate returns the minimum distance to the SDF2 difference.
func (s *diff2) Evaluate(p r2.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the SDF2 difference.
func (s *diff2) Bounds() r2.Box {
	return s.bb
}

func maximum(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
