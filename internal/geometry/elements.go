package geometry

import (
	"math"

	"github.com/dmolina-v/efield/internal/vec"
)

// Element is a point charge approximating a small patch or segment of
// a continuous distribution. Elements are never mutated, only
// regenerated when the configuration changes.
type Element struct {
	Pos    vec.Vec3
	Charge float64
}

// Discretize produces the charge elements for the configuration. The
// signed element charges sum to Sigma × Measure (both bodies opposing
// each other when InvertSign is set on a paired kind), within
// floating-point summation error.
func (c Config) Discretize() []Element {
	switch c.Kind {
	case Plate:
		return platePatches(vec.Vec3{}, c.Width, c.Height, c.Sigma, c.N)
	case Sphere:
		return shellPatches(vec.Vec3{}, c.Radius, c.Sigma, c.N)
	case Cylinder:
		return c.cylinderPatches()
	case Ring:
		return c.ringSegments()
	case ParallelPlates:
		sign := 1.0
		if c.InvertSign {
			sign = -1.0
		}
		lower := platePatches(vec.Vec3{Z: -c.Distance / 2}, c.Width, c.Height, c.Sigma, c.N)
		upper := platePatches(vec.Vec3{Z: +c.Distance / 2}, c.Width, c.Height, sign*c.Sigma, c.N)
		return append(lower, upper...)
	case TwoSpheres:
		sign := 1.0
		if c.InvertSign {
			sign = -1.0
		}
		left := shellPatches(vec.Vec3{X: -c.Distance / 2}, c.Radius, c.Sigma, c.N)
		right := shellPatches(vec.Vec3{X: +c.Distance / 2}, c.Radius, sign*c.Sigma, c.N)
		return append(left, right...)
	}
	return nil
}

// platePatches splits a width×height rectangle at z=center.Z into an
// n×n grid of patches, each carrying sigma × patch area.
func platePatches(center vec.Vec3, width, height, sigma float64, n int) []Element {
	dx := width / float64(n)
	dy := height / float64(n)
	dq := sigma * dx * dy

	elems := make([]Element, 0, n*n)
	for i := 0; i < n; i++ {
		x := center.X - width/2 + (float64(i)+0.5)*dx
		for j := 0; j < n; j++ {
			y := center.Y - height/2 + (float64(j)+0.5)*dy
			elems = append(elems, Element{
				Pos:    vec.Vec3{X: x, Y: y, Z: center.Z},
				Charge: dq,
			})
		}
	}
	return elems
}

// shellPatches covers a spherical shell with n polar bands of 2n
// azimuthal cells each, midpoint rule in both angles. The sin(phi)
// area weight makes the total converge to sigma × 4πr².
func shellPatches(center vec.Vec3, radius, sigma float64, n int) []Element {
	dphi := math.Pi / float64(n)
	dtheta := math.Pi / float64(n) // 2π over 2n cells

	elems := make([]Element, 0, 2*n*n)
	for i := 0; i < n; i++ {
		phi := (float64(i) + 0.5) * dphi
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		dq := sigma * radius * radius * sinPhi * dphi * dtheta

		for j := 0; j < 2*n; j++ {
			theta := (float64(j) + 0.5) * dtheta
			elems = append(elems, Element{
				Pos: vec.Vec3{
					X: center.X + radius*sinPhi*math.Cos(theta),
					Y: center.Y + radius*sinPhi*math.Sin(theta),
					Z: center.Z + radius*cosPhi,
				},
				Charge: dq,
			})
		}
	}
	return elems
}

// cylinderPatches covers the lateral surface with 2n angular by n
// axial cells. The end caps are uncharged.
func (c Config) cylinderPatches() []Element {
	nTheta := 2 * c.N
	dtheta := 2 * math.Pi / float64(nTheta)
	dz := c.Height / float64(c.N)
	dq := c.Sigma * c.Radius * dtheta * dz

	elems := make([]Element, 0, nTheta*c.N)
	for i := 0; i < nTheta; i++ {
		theta := (float64(i) + 0.5) * dtheta
		x := c.Radius * math.Cos(theta)
		y := c.Radius * math.Sin(theta)

		for j := 0; j < c.N; j++ {
			z := -c.Height/2 + (float64(j)+0.5)*dz
			elems = append(elems, Element{
				Pos:    vec.Vec3{X: x, Y: y, Z: z},
				Charge: dq,
			})
		}
	}
	return elems
}

// ringSegments splits the ring into n arc segments carrying a linear
// charge density.
func (c Config) ringSegments() []Element {
	dtheta := 2 * math.Pi / float64(c.N)
	dq := c.Sigma * c.Radius * dtheta

	elems := make([]Element, 0, c.N)
	for i := 0; i < c.N; i++ {
		theta := (float64(i) + 0.5) * dtheta
		elems = append(elems, Element{
			Pos: vec.Vec3{
				X: c.Radius * math.Cos(theta),
				Y: c.Radius * math.Sin(theta),
			},
			Charge: dq,
		})
	}
	return elems
}

// TotalCharge sums the signed charge of the discretized elements.
func (c Config) TotalCharge() float64 {
	total := 0.0
	for _, e := range c.Discretize() {
		total += e.Charge
	}
	return total
}
