// Package tool implements the board's editing tools and their mutation
// protocol.
//
// Two persistent tools exist: text entry and paint. Clearing the board is
// a momentary action that wipes the grid and reverts to the text tool.
//
// Text entry writes one character per keystroke (the last rune wins on
// multi-rune input such as paste), clears any color on the cell, and
// advances the focus right without ever wrapping past the last cell.
//
// Paint operates through drag gestures. A gesture begins on pointer-down,
// paints every newly entered cell exactly once (a visited set makes
// re-entry within one gesture a no-op), and ends on pointer-up or when
// the pointer leaves the board. The controller also accepts a global
// pointer-up so a release outside the board still closes the session.
//
// Every mutation is rejected silently for cells inside the signature
// region and whenever the remote connection is marked offline.
package tool
