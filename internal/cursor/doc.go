// Package cursor implements focus navigation over the split-flap board.
//
// The engine exposes three families of movement:
//
//   - Move: single-step directional movement with wrapping. Right and
//     left wrap through rows in reading order and cycle around the whole
//     board; up and down wrap the row index and leave the column alone.
//   - WordBoundary: text-editor style jumps to the next non-blank cell.
//     Horizontal jumps continue into following (or preceding) rows;
//     vertical jumps stay in the current column. When no non-blank cell
//     exists in the search direction the result is the edge of the
//     current row or column, never a wrap.
//   - JumpEdge: O(1) jumps to a row start/end or column top/bottom.
//
// All operations are pure and total: they always return an in-bounds
// position and never mutate the grid. When a reserved-region predicate is
// configured (the signature overlay), any result landing inside the
// region is redirected to the nearest editable cell before it, or to the
// previous row when the region covers the entire bottom row.
package cursor
