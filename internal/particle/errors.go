package particle

import "errors"

// Configuration errors, rejected before any step is taken.
var (
	// ErrNonPositiveMass guards the charge/mass division.
	ErrNonPositiveMass = errors.New("particle: mass must be positive")

	// ErrNonPositiveDt indicates a zero or negative timestep.
	ErrNonPositiveDt = errors.New("particle: dt must be positive")

	// ErrNoStepBudget indicates a step budget below 1.
	ErrNoStepBudget = errors.New("particle: max steps must be >= 1")
)
