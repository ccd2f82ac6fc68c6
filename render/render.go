// Package render converts SDF3 models to triangle meshes and writes
// them to STL and 3MF files.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer is a streaming triangle mesh source.
type Renderer interface {
	// ReadTriangles writes up to len(t) triangles into t and returns the
	// number written. Returns io.EOF when the model is exhausted.
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the normal vector to the plane defined by the triangle.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if the triangle is degenerate.
func (t Triangle3) Degenerate(tol float64) bool {
	// check for identical vertices
	if equalWithin(t.V[0], t.V[1], tol) ||
		equalWithin(t.V[1], t.V[2], tol) ||
		equalWithin(t.V[2], t.V[0], tol) {
		return true
	}
	return false
}

func equalWithin(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}
