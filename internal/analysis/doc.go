// Package analysis provides closed-form cyclotron relations and tools for
// reading recorded orbits.
//
//   - [CyclotronFrequency], [Period], [TheoreticalRadius]: non-relativistic
//     orbit relations for a charge in a uniform field
//   - [OrbitFrequency]: dominant revolution frequency of a recorded run
//   - [TurnRadii]: orbit radius and energy at each revolution
//   - [OrbitToASCII]: top-down trace of the X-Z plane
//
// # Checking an integrator
//
// With the gap voltage off, the measured frequency should match theory:
//
//	f, err := analysis.OrbitFrequency(result.Samples)
//	want := analysis.CyclotronFrequency(q, b, m)
package analysis
