// Package viz replays computed trajectories as a terminal animation.
//
// The animation is a pure consumer: it receives a finished trajectory,
// the oscillator count and the derived block spacing, and never touches
// the simulation itself. Frame timing comes from the Bubble Tea tick
// loop and is independent of the integration grid.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	[ ]   - Step one frame back/forward while paused
//	Q     - Quit
package viz
