// Package board provides the grid primitives for a split-flap display:
// positions, cells, fixed-size grids, and the Store that owns the live
// editing buffer.
//
// The board package provides:
//
//   - Position: an immutable row/column value
//   - Cell: a single flap holding either a printable character or a color tag
//   - Grid: a fixed ROWSxCOLS matrix of cells with normalization helpers
//   - Store: the canonical in-memory grid plus local-edit dirty tracking
//
// Cell Model:
//
// A cell is semantically either a glyph cell or a color cell, never both.
// Color cells store the uppercase color token (e.g. "RED") as their
// character so the wire encoding falls out directly; renderers draw them
// as a solid block. Comparison treats the empty string and a single space
// as the same blank, matching the physical display where both flap to an
// empty panel.
//
// Thread Safety:
//
// Position, Cell, and Grid values are plain values. Store is not
// thread-safe: every mutation happens on the application's single event
// loop, so the Store carries no locking of its own.
package board
