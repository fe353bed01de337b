// Package lorentz advances a single charged particle through a cyclotron:
// a uniform magnetic field along +Y, an accelerating gap along the Z axis,
// and a circular containment wall in the X-Z plane.
//
// The package is built around three values:
//
//   - [State]: the mutable kinematic state owned by the caller
//   - [Params]: the per-step parameters sampled from the host (sliders, config)
//   - [Integrator]: the stepping routine, see [Integrator.Step]
//
// # Example
//
//	st := lorentz.NewState(r3.Vec{X: 5}, r3.Vec{Z: 2.5})
//	p := lorentz.DefaultParams()
//	for {
//	    rep, err := lorentz.Step(st, p)
//	    if err != nil || rep.Outcome == lorentz.Halted {
//	        break
//	    }
//	}
//
// # Thread Safety
//
// Nothing in the package holds global mutable state. An [Integrator] may be
// shared between goroutines as long as each goroutine steps its own [State].
package lorentz
