// Package sdf implements the signed distance function geometry kernel
// used by the enclosure engine. Solids are modelled as functions
// returning the minimum distance to their surface, negative inside,
// and are combined with min/max CSG operators. Meshing happens at
// export time in the render package.
package sdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate takes a point in 2D space as input and returns
	// the minimum distance of the SDF2 to the point. The distance
	// is negative if the point is contained within the SDF2.
	Evaluate(p r2.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF3.
	Bounds() r3.Box
}

// MinFunc is a minimum function for SDF blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

const (
	pi        = math.Pi
	tau       = 2 * pi
	tolerance = 1e-9
	epsilon   = 1e-12
)
