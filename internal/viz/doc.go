// Package viz renders a series live in the terminal with Bubble Tea.
//
//   - [Model]: the live view, fed by a signal source or by the mouse
//   - [Canvas]: braille pixel canvas, 2x4 dots per cell
//   - [Viewport]: world to canvas mapping
//
// The smoothed curve is drawn as a trail and the raw input samples as
// crosses, so the effect of the render delay is visible.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the series and the source
//	M     - Toggle raw sample markers
//	+/-   - Increase/decrease render delay by 10ms
//	Q     - Quit
package viz
