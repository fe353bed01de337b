package lorentz

import (
	"errors"
	"fmt"
)

// ErrDegenerateParameters is returned when mass or time step is not
// strictly positive. The state is left untouched.
var ErrDegenerateParameters = errors.New("lorentz: degenerate parameters (mass and time step must be positive)")

// StepError wraps a rejected step with the values that caused it.
type StepError struct {
	Time     float64
	Mass     float64
	TimeStep float64
	Wrapped  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v (t=%.4f, mass=%g, dt=%g)", e.Wrapped, e.Time, e.Mass, e.TimeStep)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
