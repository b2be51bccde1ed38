// Package viz renders a live trajectory view in the terminal with the
// Bubble Tea framework.
//
//   - [Model]: interactive view stepping one particle per frame
//   - [Canvas]: character grid showing the x-z cross section of the
//     geometry, the particle and its trail
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	Q     - Quit
package viz
