package sim

import (
	"errors"
	"fmt"
)

var (
	ErrNoIntegrator = errors.New("sim: no integrator configured")
	ErrNoParams     = errors.New("sim: no parameter source configured")
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
	ErrInvalidRun   = errors.New("sim: invalid run configuration")
)

// SimulationError wraps a failure with the step at which it happened.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
