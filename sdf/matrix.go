package sdf

import (
	"math"

	"github.com/shellforge/shellforge/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// M44 is a 4x4 matrix used for rigid transformations of SDF3s.
// All constructors in this package produce affine matrices
// (last row 0,0,0,1); Inverse assumes this.
type M44 struct {
	x00, x01, x02, x03 float64
	x10, x11, x12, x13 float64
	x20, x21, x22, x23 float64
	x30, x31, x32, x33 float64
}

// Identity3d returns the identity transform.
func Identity3d() M44 {
	return M44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1}
}

// Translate3d returns a translation by v.
func Translate3d(v r3.Vec) M44 {
	return M44{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1}
}

// RotateX returns a rotation by a radians about the x axis.
func RotateX(a float64) M44 {
	c := math.Cos(a)
	s := math.Sin(a)
	return M44{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1}
}

// RotateY returns a rotation by a radians about the y axis.
func RotateY(a float64) M44 {
	c := math.Cos(a)
	s := math.Sin(a)
	return M44{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1}
}

// RotateZ returns a rotation by a radians about the z axis.
func RotateZ(a float64) M44 {
	c := math.Cos(a)
	s := math.Sin(a)
	return M44{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1}
}

// Mul multiplies two matrices, a.Mul(b) applies b first.
func (a M44) Mul(b M44) M44 {
	return M44{
		x00: a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20 + a.x03*b.x30,
		x01: a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21 + a.x03*b.x31,
		x02: a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22 + a.x03*b.x32,
		x03: a.x00*b.x03 + a.x01*b.x13 + a.x02*b.x23 + a.x03*b.x33,
		x10: a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20 + a.x13*b.x30,
		x11: a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21 + a.x13*b.x31,
		x12: a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22 + a.x13*b.x32,
		x13: a.x10*b.x03 + a.x11*b.x13 + a.x12*b.x23 + a.x13*b.x33,
		x20: a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20 + a.x23*b.x30,
		x21: a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21 + a.x23*b.x31,
		x22: a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22 + a.x23*b.x32,
		x23: a.x20*b.x03 + a.x21*b.x13 + a.x22*b.x23 + a.x23*b.x33,
		x30: a.x30*b.x00 + a.x31*b.x10 + a.x32*b.x20 + a.x33*b.x30,
		x31: a.x30*b.x01 + a.x31*b.x11 + a.x32*b.x21 + a.x33*b.x31,
		x32: a.x30*b.x02 + a.x31*b.x12 + a.x32*b.x22 + a.x33*b.x32,
		x33: a.x30*b.x03 + a.x31*b.x13 + a.x32*b.x23 + a.x33*b.x33,
	}
}

// MulPosition multiplies an r3.Vec position with a rotate/translate matrix.
func (a M44) MulPosition(b r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.x00*b.X + a.x01*b.Y + a.x02*b.Z + a.x03,
		Y: a.x10*b.X + a.x11*b.Y + a.x12*b.Z + a.x13,
		Z: a.x20*b.X + a.x21*b.Y + a.x22*b.Z + a.x23,
	}
}

// MulBox rotates/translates a bounding box and resizes for axis-alignment.
func (a M44) MulBox(box r3.Box) r3.Box {
	v := d3.Box(box).Vertices()
	out := d3.Box{Min: a.MulPosition(v[0]), Max: a.MulPosition(v[0])}
	for _, p := range v[1:] {
		out = out.Include(a.MulPosition(p))
	}
	return r3.Box(out)
}

// Inverse inverts an affine matrix. The inverse of the upper 3x3 is
// computed from its adjugate, the translation column follows.
func (a M44) Inverse() M44 {
	det := a.x00*(a.x11*a.x22-a.x12*a.x21) -
		a.x01*(a.x10*a.x22-a.x12*a.x20) +
		a.x02*(a.x10*a.x21-a.x11*a.x20)
	if det == 0 {
		panic("singular transform")
	}
	d := 1 / det
	m := M44{
		x00: (a.x11*a.x22 - a.x12*a.x21) * d,
		x01: (a.x02*a.x21 - a.x01*a.x22) * d,
		x02: (a.x01*a.x12 - a.x02*a.x11) * d,
		x10: (a.x12*a.x20 - a.x10*a.x22) * d,
		x11: (a.x00*a.x22 - a.x02*a.x20) * d,
		x12: (a.x02*a.x10 - a.x00*a.x12) * d,
		x20: (a.x10*a.x21 - a.x11*a.x20) * d,
		x21: (a.x01*a.x20 - a.x00*a.x21) * d,
		x22: (a.x00*a.x11 - a.x01*a.x10) * d,
		x33: 1,
	}
	t := m.MulPosition(r3.Vec{X: a.x03, Y: a.x13, Z: a.x23})
	m.x03 = -t.X
	m.x13 = -t.Y
	m.x23 = -t.Z
	return m
}
