// Package viz is the interactive terminal front end, built on Bubble Tea.
//
// A menu lists every registered algorithm grouped by visualizer. Opening one
// shows the current snapshot next to the algorithm's listing, with the lines
// it executed highlighted, a progress bar over the history and a chart of the
// algorithm's score scalar.
//
// Playback goes through [session.Session] and [player.Player] unchanged; the
// package only supplies a scheduler that turns player ticks into tea.Tick
// commands.
//
// # Key Bindings
//
//	Space - run, pause or resume
//	N/→   - step once
//	[ ]   - seek one step back or forward
//	R     - reset to the original input
//	G     - generate a new random problem
//	I     - edit the input
//	+/-   - change speed
//	T     - cycle color themes
//	Esc   - back to the menu
//	?     - toggle full help
package viz
