package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// A cube decomposes into 6 tetrahedra and each tetrahedron yields at
// most 2 triangles.
const marchingTetrahedraMaxTriangles = 12

// cubeTetrahedra decomposes a cube into 6 tetrahedra sharing the main
// diagonal between corners 0 and 6. Neighboring cubes share face
// diagonals, keeping the output mesh watertight.
var cubeTetrahedra = [6][4]int{
	{0, 1, 2, 6},
	{0, 2, 3, 6},
	{0, 3, 7, 6},
	{0, 7, 4, 6},
	{0, 4, 5, 6},
	{0, 5, 1, 6},
}

// mtToTriangles polygonizes one leaf cube with marching tetrahedra.
// corners and values follow the renderer's corner ordering. Triangles
// are wound with outward-facing normals. Returns the number of
// triangles written to dst.
func mtToTriangles(dst []Triangle3, corners [8]r3.Vec, values [8]float64) int {
	n := 0
	for _, tet := range cubeTetrahedra {
		p := [4]r3.Vec{corners[tet[0]], corners[tet[1]], corners[tet[2]], corners[tet[3]]}
		v := [4]float64{values[tet[0]], values[tet[1]], values[tet[2]], values[tet[3]]}
		n += tetToTriangles(dst[n:], p, v)
	}
	return n
}

// tetToTriangles polygonizes a single tetrahedron. A vertex with a
// negative distance is inside the surface.
func tetToTriangles(dst []Triangle3, p [4]r3.Vec, v [4]float64) int {
	var inside, outside [4]int
	ni, no := 0, 0
	for i := 0; i < 4; i++ {
		if v[i] < 0 {
			inside[ni] = i
			ni++
		} else {
			outside[no] = i
			no++
		}
	}
	switch ni {
	case 0, 4:
		// surface does not cross this tetrahedron
		return 0
	case 1:
		a := inside[0]
		t := Triangle3{V: [3]r3.Vec{
			surfacePoint(p[a], v[a], p[outside[0]], v[outside[0]]),
			surfacePoint(p[a], v[a], p[outside[1]], v[outside[1]]),
			surfacePoint(p[a], v[a], p[outside[2]], v[outside[2]]),
		}}
		// normal points away from the inside vertex
		return writeFacingAway(dst, t, p[a])
	case 3:
		a := outside[0]
		t := Triangle3{V: [3]r3.Vec{
			surfacePoint(p[inside[0]], v[inside[0]], p[a], v[a]),
			surfacePoint(p[inside[1]], v[inside[1]], p[a], v[a]),
			surfacePoint(p[inside[2]], v[inside[2]], p[a], v[a]),
		}}
		// normal points toward the lone outside vertex
		return writeFacingToward(dst, t, p[a])
	case 2:
		// Two crossing edges per inside vertex form a quad. Both
		// triangles share the ac-bd diagonal and flip together so the
		// diagonal stays consistently wound.
		a, b := inside[0], inside[1]
		c, d := outside[0], outside[1]
		ac := surfacePoint(p[a], v[a], p[c], v[c])
		ad := surfacePoint(p[a], v[a], p[d], v[d])
		bc := surfacePoint(p[b], v[b], p[c], v[c])
		bd := surfacePoint(p[b], v[b], p[d], v[d])
		t1 := Triangle3{V: [3]r3.Vec{ac, ad, bd}}
		t2 := Triangle3{V: [3]r3.Vec{ac, bd, bc}}
		out := r3.Sub(r3.Add(p[c], p[d]), r3.Add(p[a], p[b]))
		if r3.Dot(rawNormal(t1), out) < 0 {
			t1.V[1], t1.V[2] = t1.V[2], t1.V[1]
			t2.V[1], t2.V[2] = t2.V[2], t2.V[1]
		}
		n := writeTriangle(dst, t1)
		n += writeTriangle(dst[n:], t2)
		return n
	}
	return 0
}

// surfacePoint interpolates the zero crossing on the edge pa-pb.
// va and vb have opposite signs.
func surfacePoint(pa r3.Vec, va float64, pb r3.Vec, vb float64) r3.Vec {
	t := va / (va - vb)
	return r3.Add(pa, r3.Scale(t, r3.Sub(pb, pa)))
}

// rawNormal is the unnormalized face normal of t.
func rawNormal(t Triangle3) r3.Vec {
	return r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
}

func writeFacingAway(dst []Triangle3, t Triangle3, from r3.Vec) int {
	if r3.Dot(rawNormal(t), r3.Sub(from, t.V[0])) > 0 {
		t.V[1], t.V[2] = t.V[2], t.V[1]
	}
	return writeTriangle(dst, t)
}

func writeFacingToward(dst []Triangle3, t Triangle3, to r3.Vec) int {
	if r3.Dot(rawNormal(t), r3.Sub(to, t.V[0])) < 0 {
		t.V[1], t.V[2] = t.V[2], t.V[1]
	}
	return writeTriangle(dst, t)
}

// writeTriangle writes t to dst, discarding degenerates.
func writeTriangle(dst []Triangle3, t Triangle3) int {
	const degenerateTol = 1e-12
	if t.Degenerate(degenerateTol) {
		return 0
	}
	dst[0] = t
	return 1
}
