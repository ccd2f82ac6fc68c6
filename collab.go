package shellforge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// External collaborators. The engine consumes only their outputs
// (bounding dimensions, mesh handles and detected hole lists), never
// raw files or mesh internals.

// MeshHandle is an opaque reference to an imported mesh owned by a
// MeshImporter.
type MeshHandle interface {
	// Bounds returns the axis-aligned bounding box of the mesh in its
	// own coordinates.
	Bounds() r3.Box
}

// MeshImporter parses a boundary-representation or mesh file into a
// bounding box and a handle usable as one Component.
type MeshImporter interface {
	Import(path string) (r3.Box, MeshHandle, error)
}

// Hole is one detected circular through-hole on a component's top
// face, in component-local plan coordinates.
type Hole struct {
	Center   Point
	Diameter float64
}

// HoleDetector finds mounting holes on an imported component mesh.
// The engine uses the result only to seed Component.StandoffPositions.
type HoleDetector interface {
	DetectHoles(h MeshHandle) ([]Hole, error)
}

// SeedStandoffs copies detected hole centers into the component's
// standoff positions when it has none of its own.
func SeedStandoffs(c *Component, d HoleDetector) error {
	if c.Mesh == nil || len(c.StandoffPositions) > 0 {
		return nil
	}
	holes, err := d.DetectHoles(c.Mesh)
	if err != nil {
		return err
	}
	for _, h := range holes {
		c.StandoffPositions = append(c.StandoffPositions, h.Center)
	}
	return nil
}
