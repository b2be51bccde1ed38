package geometry

import (
	"fmt"
	"math"
)

// Epsilon0 is the vacuum permittivity in C²/(N·m²).
const Epsilon0 = 8.854187817e-12

// Kind identifies a charge distribution variant.
type Kind string

const (
	Plate          Kind = "plate"
	Sphere         Kind = "sphere"
	Cylinder       Kind = "cylinder"
	Ring           Kind = "ring"
	ParallelPlates Kind = "parallel_plates"
	TwoSpheres     Kind = "two_spheres"
)

// Kinds lists every supported geometry kind.
func Kinds() []Kind {
	return []Kind{Plate, Sphere, Cylinder, Ring, ParallelPlates, TwoSpheres}
}

// Config is an immutable description of a charge distribution.
//
// Sigma is a surface charge density in C/m² (C/m for the ring) and may
// be negative. Shape parameters are meters. N is a per-dimension
// resolution: a plate discretizes into N×N patches, curved surfaces
// into N×2N cells, the ring into N arc segments.
type Config struct {
	Kind     Kind
	Sigma    float64
	Radius   float64
	Distance float64
	Width    float64
	Height   float64
	N        int
	Epsilon0 float64

	// InvertSign gives the second body of a paired kind
	// (parallel_plates, two_spheres) the opposite charge sign.
	InvertSign bool
}

// Default returns the standard configuration for a kind.
func Default(kind Kind) Config {
	cfg := Config{
		Kind:       kind,
		Sigma:      1e-6,
		Radius:     1.0,
		Distance:   1.0,
		Width:      1.0,
		Height:     1.0,
		N:          20,
		Epsilon0:   Epsilon0,
		InvertSign: true,
	}

	switch kind {
	case Cylinder:
		cfg.Height = 2.0
	case ParallelPlates:
		cfg.Width = 2.0
		cfg.Height = 2.0
	case TwoSpheres:
		cfg.Radius = 0.5
	}

	return cfg
}

// Validate checks the configuration eagerly. It reports the first
// violated invariant wrapped around the matching sentinel error.
func (c Config) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, c.N)
	}
	if c.Epsilon0 <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidPermittivity, c.Epsilon0)
	}

	type param struct {
		name  string
		value float64
	}

	var required []param
	switch c.Kind {
	case Plate:
		required = []param{{"width", c.Width}, {"height", c.Height}}
	case Sphere:
		required = []param{{"radius", c.Radius}}
	case Cylinder:
		required = []param{{"radius", c.Radius}, {"height", c.Height}}
	case Ring:
		required = []param{{"radius", c.Radius}}
	case ParallelPlates:
		required = []param{{"width", c.Width}, {"height", c.Height}, {"distance", c.Distance}}
	case TwoSpheres:
		required = []param{{"radius", c.Radius}, {"distance", c.Distance}}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}

	for _, p := range required {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s = %g", ErrInvalidShape, p.name, p.value)
		}
	}
	return nil
}

// Measure returns the geometric measure the charge density applies to:
// area for surfaces, length for the ring. Paired kinds count both
// bodies.
func (c Config) Measure() float64 {
	switch c.Kind {
	case Plate:
		return c.Width * c.Height
	case Sphere:
		return 4 * math.Pi * c.Radius * c.Radius
	case Cylinder:
		return 2 * math.Pi * c.Radius * c.Height
	case Ring:
		return 2 * math.Pi * c.Radius
	case ParallelPlates:
		return 2 * c.Width * c.Height
	case TwoSpheres:
		return 2 * 4 * math.Pi * c.Radius * c.Radius
	}
	return 0
}

// Extent returns the half-width of the cubic region the distribution
// characteristically influences, used to derive sampling bounds.
func (c Config) Extent() float64 {
	switch c.Kind {
	case Plate:
		return 2.0
	case Cylinder:
		return 3.5
	default:
		return 3.0
	}
}
