// Package field evaluates the electrostatic field and potential of a
// discretized charge distribution by Coulomb superposition.
package field

import (
	"math"

	"github.com/dmolina-v/efield/internal/compute"
	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

// MinSourceDistance is the degeneracy cutoff: a charge element closer
// than this to the evaluation point is excluded from the sum. One
// policy for every geometry, for the field and the potential alike,
// so the singularity at the source surface behaves the same across
// kinds.
const MinSourceDistance = 1e-9

// Evaluator computes E and V for one geometry configuration. It
// discretizes once at construction and holds no mutable state
// afterwards: evaluation is a pure function of the query point.
type Evaluator struct {
	cfg     geometry.Config
	elems   []geometry.Element
	k       float64
	backend compute.Backend
}

// New validates cfg, discretizes it, and returns an evaluator using
// the active compute backend.
func New(cfg geometry.Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		cfg:     cfg,
		elems:   cfg.Discretize(),
		k:       1 / (4 * math.Pi * cfg.Epsilon0),
		backend: compute.GetBackend(),
	}, nil
}

func (e *Evaluator) Config() geometry.Config { return e.cfg }

// NumElements reports the size of the element sum, i.e. the cost of
// one query.
func (e *Evaluator) NumElements() int { return len(e.elems) }

// At returns the electric field vector at p in N/C.
func (e *Evaluator) At(p vec.Vec3) vec.Vec3 {
	return e.backend.FieldSum(e.elems, p, e.k, MinSourceDistance)
}

// PotentialAt returns the scalar electric potential at p in volts.
func (e *Evaluator) PotentialAt(p vec.Vec3) float64 {
	return e.backend.PotentialSum(e.elems, p, e.k, MinSourceDistance)
}
