package geometry

import (
	"math"

	"github.com/dmolina-v/efield/internal/vec"
)

// surfaceTol is the contact shell thickness for geometries with no
// interior volume (plate, ring). A moving particle rarely lands
// exactly on a zero-thickness surface, so contact is declared within
// this distance of it.
const surfaceTol = 0.05

// Collides reports whether p lies on or inside the charged body. The
// predicate is purely geometric: it ignores Sigma and the
// discretization count, so field resolution never shifts where
// collisions occur. An unknown kind never collides; Validate rejects
// it before any stepping starts.
func (c Config) Collides(p vec.Vec3) bool {
	switch c.Kind {
	case Plate:
		return math.Abs(p.Z) < surfaceTol &&
			math.Abs(p.X) <= c.Width/2 &&
			math.Abs(p.Y) <= c.Height/2

	case Sphere:
		return p.Norm() <= c.Radius

	case Cylinder:
		return math.Hypot(p.X, p.Y) <= c.Radius && math.Abs(p.Z) <= c.Height/2

	case Ring:
		return math.Abs(p.Z) < surfaceTol &&
			math.Abs(math.Hypot(p.X, p.Y)-c.Radius) < surfaceTol

	case ParallelPlates:
		if math.Abs(p.X) > c.Width/2 || math.Abs(p.Y) > c.Height/2 {
			return false
		}
		return p.Z <= -c.Distance/2 || p.Z >= c.Distance/2

	case TwoSpheres:
		left := vec.Vec3{X: -c.Distance / 2}
		right := vec.Vec3{X: +c.Distance / 2}
		return p.Distance(left) <= c.Radius || p.Distance(right) <= c.Radius
	}
	return false
}
