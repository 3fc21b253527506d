// Package app wires the editor together and runs its single event
// loop. All board state lives on that loop: terminal events, poll
// ticks, and config reloads are delivered into it over channels, so no
// component needs locks around the grid.
package app
