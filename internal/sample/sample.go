// Package sample evaluates field and potential over regular 3D grids
// for rendering layers to consume. It holds no state between calls.
package sample

import (
	"errors"
	"fmt"

	"github.com/dmolina-v/efield/internal/field"
	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

var (
	// ErrBadBounds indicates an empty or inverted sampling region.
	ErrBadBounds = errors.New("sample: bounds must have positive extent on every axis")

	// ErrBadResolution indicates fewer than two samples per axis.
	ErrBadResolution = errors.New("sample: resolution must be >= 2")
)

// Bounds is an axis-aligned sampling box.
type Bounds struct {
	Min, Max vec.Vec3
}

// DefaultBounds returns the cube matching the geometry's
// characteristic extent.
func DefaultBounds(cfg geometry.Config) Bounds {
	e := cfg.Extent()
	return Bounds{
		Min: vec.Vec3{X: -e, Y: -e, Z: -e},
		Max: vec.Vec3{X: e, Y: e, Z: e},
	}
}

// Point is one grid sample: position, field vector and potential.
type Point struct {
	Pos vec.Vec3
	E   vec.Vec3
	V   float64
}

// Grid holds resolution³ samples in x-major order.
type Grid struct {
	Resolution int
	Bounds     Bounds
	Points     []Point
}

// At returns the sample at grid indices (i, j, k).
func (g *Grid) At(i, j, k int) Point {
	n := g.Resolution
	return g.Points[(i*n+j)*n+k]
}

// Over samples the evaluator on a regular grid spanning bounds
// inclusively, resolution points per axis.
func Over(ev *field.Evaluator, b Bounds, resolution int) (*Grid, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadResolution, resolution)
	}
	span := b.Max.Sub(b.Min)
	if span.X <= 0 || span.Y <= 0 || span.Z <= 0 {
		return nil, fmt.Errorf("%w: min %+v max %+v", ErrBadBounds, b.Min, b.Max)
	}

	step := span.Scale(1 / float64(resolution-1))
	grid := &Grid{
		Resolution: resolution,
		Bounds:     b,
		Points:     make([]Point, 0, resolution*resolution*resolution),
	}

	for i := 0; i < resolution; i++ {
		x := b.Min.X + float64(i)*step.X
		for j := 0; j < resolution; j++ {
			y := b.Min.Y + float64(j)*step.Y
			for k := 0; k < resolution; k++ {
				p := vec.Vec3{X: x, Y: y, Z: b.Min.Z + float64(k)*step.Z}
				grid.Points = append(grid.Points, Point{
					Pos: p,
					E:   ev.At(p),
					V:   ev.PotentialAt(p),
				})
			}
		}
	}

	return grid, nil
}

// DefaultResolution maps a discretization count to a grid resolution.
// Coarser fields get coarser grids, capped so the sample count stays
// tractable.
func DefaultResolution(cfg geometry.Config) int {
	step := 0.8 * 20 / float64(cfg.N)
	if step < 0.2 {
		step = 0.2
	}

	res := int(2*cfg.Extent()/step) + 1
	if res < 2 {
		res = 2
	}
	if res > 40 {
		res = 40
	}
	return res
}
