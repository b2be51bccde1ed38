// Package metrics accumulates summary statistics over a trajectory.
package metrics

import (
	"math"

	"github.com/dmolina-v/efield/internal/field"
	"github.com/dmolina-v/efield/internal/particle"
)

// Metric observes states one at a time and reduces them to a single
// value. Reset clears the accumulated state for reuse.
type Metric interface {
	Name() string
	Observe(s particle.State, t float64)
	Value() float64
	Reset()
}

// Collect runs every metric over a finished trajectory.
func Collect(tr *particle.Trajectory, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, s := range tr.States {
			m.Observe(s, tr.Times[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults returns the standard metric set for a field.
func Defaults(ev *field.Evaluator) []Metric {
	return []Metric{
		NewEnergyDrift(ev),
		NewPathLength(),
		NewMaxSpeed(),
	}
}

// Energy is the particle's total energy, kinetic plus electrostatic
// potential energy q*V.
func Energy(ev *field.Evaluator, s particle.State) float64 {
	v := s.Vel.Norm()
	return 0.5*s.Mass*v*v + s.Charge*ev.PotentialAt(s.Pos)
}

// EnergyDrift tracks the largest relative departure from the initial
// total energy. Semi-implicit stepping keeps this small but not zero.
type EnergyDrift struct {
	ev      *field.Evaluator
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(ev *field.Evaluator) *EnergyDrift {
	return &EnergyDrift{ev: ev}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s particle.State, t float64) {
	en := Energy(e.ev, s)
	if e.samples == 0 {
		e.initial = en
	}
	e.samples++

	scale := math.Abs(e.initial)
	if scale < 1e-12 {
		scale = 1e-12
	}
	drift := math.Abs(en-e.initial) / scale
	if drift > e.max {
		e.max = drift
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.max
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// PathLength sums the distance between successive positions.
type PathLength struct {
	prev    particle.State
	total   float64
	samples int
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s particle.State, t float64) {
	if p.samples > 0 {
		p.total += s.Pos.Distance(p.prev.Pos)
	}
	p.prev = s
	p.samples++
}

func (p *PathLength) Value() float64 {
	return p.total
}

func (p *PathLength) Reset() {
	p.prev = particle.State{}
	p.total = 0
	p.samples = 0
}

// MaxSpeed records the peak speed seen along the trajectory.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{}
}

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s particle.State, t float64) {
	if v := s.Vel.Norm(); v > m.max {
		m.max = v
	}
}

func (m *MaxSpeed) Value() float64 {
	return m.max
}

func (m *MaxSpeed) Reset() {
	m.max = 0
}
