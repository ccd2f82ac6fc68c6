// Package shellforge generates printable electronics enclosures from a
// declarative request. Callers describe components, connector cutouts
// and style parameters; Generate returns closed solids for the base,
// lid and optional tray and bracket parts, ready for meshing with the
// render package.
//
// The pipeline runs strictly forward: footprint synthesis, shell
// construction, cutout and standoff placement, part assembly. Each
// part builds in isolation so one failed boolean never suppresses the
// others; the result carries the best achievable set of parts plus
// structured warnings and failures.
package shellforge
