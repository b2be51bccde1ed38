// Package geometry describes the supported charge distributions.
//
// Each [Kind] pairs a surface (or line) charge distribution with two
// operations: [Config.Discretize], which approximates the continuous
// distribution by point charge elements, and [Config.Collides], which
// tests whether a point lies on or inside the charged body.
//
// The set of kinds is closed; every operation dispatches with an
// exhaustive switch, and an unknown kind is a configuration error:
//
//	cfg := geometry.Default(geometry.Plate)
//	if err := cfg.Validate(); err != nil { ... }
//	elems := cfg.Discretize()
//
// Discretization is deterministic: the same (kind, parameters, N)
// always yields the same elements, so field evaluation built on top
// of it is reproducible.
package geometry
