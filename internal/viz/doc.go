// Package viz provides a terminal live view of a running Moran process.
//
// The view is a Bubble Tea program that advances the process between frames
// with the step functions of package moran, so pausing or quitting only ever
// happens between two complete steps.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial population with the same seed
//	+/-   - Double or halve the steps per frame
//	Q     - Quit
package viz
