// Package viz draws cyclotron runs in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one particle with tunable parameters
//   - [App]: launcher with preset selection and parameter editing
//   - [Canvas]: Braille-based pixel canvas for the orbit plane
//   - [Camera]: spring-eased view that widens as the orbit grows
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	r     - Relaunch the particle with the current parameters
//	R     - Relaunch with the launch parameters
//	e     - Toggle extraction (relaunches)
//	Tab   - Select parameter, Up/Down to tune it
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
