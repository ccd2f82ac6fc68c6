package shellforge

import (
	"math"

	"github.com/shellforge/shellforge/sdf"
	"github.com/shellforge/shellforge/sdf/form3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// standoff is one accepted mounting boss in enclosure coordinates.
type standoff struct {
	ComponentID int
	Center      r2.Vec
	BossRadius  float64
	BoreRadius  float64
	Top         float64 // boss top height above the floor surface
}

// autoStandoffInset places auto-generated bosses this many boss radii
// inside the PCB corners.
const autoStandoffInset = 1.5

// synthesizeStandoffs builds the mounting bosses for every PCB
// component. Bosses rise from the floor surface to the component's
// GroundZ with a concentric fastener bore. A boss that overlaps
// another boss, an accepted cutout volume, or leaves the cavity is
// skipped with a warning.
func synthesizeStandoffs(components []Component, cfg EnclosureConfig,
	cavity sdf.SDF2, cuts []sdf.SDF3, floor float64) (bosses, bores []sdf.SDF3, warns []Warning) {
	var accepted []standoff
	for i := range components {
		c := &components[i]
		if !c.IsPCB {
			continue
		}
		if c.GroundZ <= 0 {
			warns = append(warns, warnf("standoff", c.ID, "component rests on the floor, no standoffs"))
			continue
		}
		bossR := (c.PCBScrewDiameter + cfg.StandoffClearance) / 2
		boreR := c.PCBScrewDiameter / 2
		for _, pos := range standoffPositions(c, cfg, bossR) {
			world := worldStandoff(c, pos)
			s := standoff{
				ComponentID: c.ID,
				Center:      world,
				BossRadius:  bossR,
				BoreRadius:  boreR,
				Top:         c.GroundZ,
			}
			if msg := standoffConflict(s, accepted, cavity, cuts, floor); msg != "" {
				warns = append(warns, warnf("standoff", c.ID, "skipped boss at (%.3g, %.3g): %s",
					world.X, world.Y, msg))
				continue
			}
			accepted = append(accepted, s)
		}
	}
	for _, s := range accepted {
		boss := form3.Cylinder(s.Top, s.BossRadius, 0)
		bosses = append(bosses, sdf.Transform3D(boss,
			sdf.Translate3d(r3.Vec{X: s.Center.X, Y: s.Center.Y, Z: floor + s.Top/2})))
		// the bore pierces the whole boss and bites slightly into the
		// floor so the drill point never leaves a film
		bore := form3.Cylinder(s.Top+0.4, s.BoreRadius, 0)
		bores = append(bores, sdf.Transform3D(bore,
			sdf.Translate3d(r3.Vec{X: s.Center.X, Y: s.Center.Y, Z: floor + s.Top/2 + 0.1})))
	}
	return bosses, bores, warns
}

// standoffPositions resolves the boss centers local to the component:
// the explicit list when given, otherwise four inset corners when auto
// generation is on.
func standoffPositions(c *Component, cfg EnclosureConfig, bossR float64) []r2.Vec {
	if len(c.StandoffPositions) > 0 {
		pos := make([]r2.Vec, len(c.StandoffPositions))
		for i, p := range c.StandoffPositions {
			pos[i] = p.vec()
		}
		return pos
	}
	if !cfg.AutoStandoffs {
		return nil
	}
	inset := autoStandoffInset * bossR
	hx := c.Width/2 - inset
	hy := c.Depth/2 - inset
	if hx <= 0 || hy <= 0 {
		return nil
	}
	return []r2.Vec{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	}
}

// worldStandoff maps a component-local standoff position into
// enclosure plan coordinates, honoring the component's plan rotation.
func worldStandoff(c *Component, local r2.Vec) r2.Vec {
	rot := sdf.DtoR(c.RotZ)
	cos, sin := math.Cos(rot), math.Sin(rot)
	return r2.Vec{
		X: c.X + local.X*cos - local.Y*sin,
		Y: c.Y + local.X*sin + local.Y*cos,
	}
}

// standoffConflict checks a candidate boss against previously accepted
// bosses, accepted cutout volumes and the cavity outline. The returned
// message is empty when the boss is placeable.
func standoffConflict(s standoff, accepted []standoff, cavity sdf.SDF2, cuts []sdf.SDF3, floor float64) string {
	const tol = 0.1
	// inside the cavity by a full boss radius
	if cavity.Evaluate(s.Center) > -(s.BossRadius - tol) {
		return "outside the inner cavity"
	}
	for _, o := range accepted {
		if r2.Norm(r2.Sub(s.Center, o.Center)) < s.BossRadius+o.BossRadius {
			return "overlaps another boss"
		}
	}
	mid := r3.Vec{X: s.Center.X, Y: s.Center.Y, Z: floor + s.Top/2}
	for _, cut := range cuts {
		if cut.Evaluate(mid) < s.BossRadius {
			return "overlaps a cutout"
		}
	}
	return ""
}
