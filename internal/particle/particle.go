// Package particle advances a charged test particle through an
// electrostatic field with fixed-step, semi-implicit Euler
// integration, until it hits the generating geometry or exhausts its
// step budget.
package particle

import (
	"context"
	"fmt"

	"github.com/dmolina-v/efield/internal/field"
	"github.com/dmolina-v/efield/internal/vec"
)

// Status is the terminal disposition of a trajectory.
type Status string

const (
	// Moving means the particle is still in flight.
	Moving Status = "moving"
	// Collided means the particle stopped inelastically on the geometry.
	Collided Status = "collided"
	// Exhausted means the step budget ran out without contact. Not an error.
	Exhausted Status = "exhausted"
)

// State is the kinematic state of the test particle. Once Collided is
// set the state is terminal and no step mutates it again.
type State struct {
	Pos      vec.Vec3
	Vel      vec.Vec3
	Mass     float64
	Charge   float64
	Collided bool
}

// StepConfig fixes the integration parameters for a run. Dt is not
// adaptive; choosing it commensurate with the field's scale is the
// caller's responsibility.
type StepConfig struct {
	Dt       float64
	MaxSteps int
}

func DefaultStepConfig() StepConfig {
	return StepConfig{Dt: 0.05, MaxSteps: 500}
}

func (c StepConfig) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: got %g", ErrNonPositiveDt, c.Dt)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w: got %d", ErrNoStepBudget, c.MaxSteps)
	}
	return nil
}

// Trajectory is the recorded path of one run: the state after every
// executed step (plus the initial state when it already collides),
// owned exclusively by that run.
type Trajectory struct {
	States []State
	Times  []float64
	Status Status
}

// Final returns the last recorded state.
func (tr *Trajectory) Final() State {
	return tr.States[len(tr.States)-1]
}

// Stepper advances particle states through one field evaluator. It
// holds no timer or loop of its own; the caller drives it one step at
// a time.
type Stepper struct {
	ev *field.Evaluator
}

func NewStepper(ev *field.Evaluator) *Stepper {
	return &Stepper{ev: ev}
}

// Step advances s by one semi-implicit Euler step: the velocity
// update from the field at the current position precedes the position
// update, and the collision test runs on the new position. A collided
// state is returned unchanged. Divergence to non-finite values is not
// detected here; callers must bound dt sensibly.
func (st *Stepper) Step(s State, dt float64) (State, error) {
	if s.Mass <= 0 {
		return s, fmt.Errorf("%w: got %g", ErrNonPositiveMass, s.Mass)
	}
	if dt <= 0 {
		return s, fmt.Errorf("%w: got %g", ErrNonPositiveDt, dt)
	}
	if s.Collided {
		return s, nil
	}

	e := st.ev.At(s.Pos)
	acc := e.Scale(s.Charge / s.Mass)

	s.Vel = s.Vel.Add(acc.Scale(dt))
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	s.Collided = st.ev.Config().Collides(s.Pos)
	return s, nil
}

// Run produces a trajectory from the initial state. An initial
// position already touching the geometry yields a single collided
// state with zero displacement; otherwise the run steps until contact
// or until MaxSteps states have been recorded.
func (st *Stepper) Run(ctx context.Context, initial State, cfg StepConfig) (*Trajectory, error) {
	if initial.Mass <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveMass, initial.Mass)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tr := &Trajectory{Status: Moving}

	if st.ev.Config().Collides(initial.Pos) {
		initial.Collided = true
		tr.States = append(tr.States, initial)
		tr.Times = append(tr.Times, 0)
		tr.Status = Collided
		return tr, nil
	}

	s := initial
	for i := 0; i < cfg.MaxSteps; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		next, err := st.Step(s, cfg.Dt)
		if err != nil {
			return tr, err
		}
		s = next

		tr.States = append(tr.States, s)
		tr.Times = append(tr.Times, float64(i+1)*cfg.Dt)

		if s.Collided {
			tr.Status = Collided
			return tr, nil
		}
	}

	tr.Status = Exhausted
	return tr, nil
}
