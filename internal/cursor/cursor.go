package cursor

import (
	"strings"

	"github.com/dshills/splitflap/internal/board"
)

// Direction identifies a movement direction.
type Direction uint8

const (
	// Up moves to the previous row.
	Up Direction = iota

	// Down moves to the next row.
	Down

	// Left moves to the previous column, wrapping through rows.
	Left

	// Right moves to the next column, wrapping through rows.
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Edge identifies a direct jump target.
type Edge uint8

const (
	// RowStart jumps to the first column of the current row.
	RowStart Edge = iota

	// RowEnd jumps to the last column of the current row.
	RowEnd

	// ColTop jumps to the first row of the current column.
	ColTop

	// ColBottom jumps to the last row of the current column.
	ColBottom
)

// Engine computes focus movement over a fixed-size board. The zero
// reserved predicate makes every cell navigable.
type Engine struct {
	size     board.Size
	reserved func(board.Position) bool
}

// NewEngine creates a navigation engine for the given board size.
func NewEngine(size board.Size) *Engine {
	return &Engine{size: size}
}

// SetReserved installs a predicate marking cells the cursor may never
// land on. Pass nil to clear it.
func (e *Engine) SetReserved(pred func(board.Position) bool) {
	e.reserved = pred
}

// Move returns the position one step from pos in the given direction,
// with wrapping. The result is always in bounds.
func (e *Engine) Move(pos board.Position, dir Direction) board.Position {
	pos = pos.Clamp(e.size)

	var next board.Position
	switch dir {
	case Right:
		next = board.Position{Row: pos.Row, Col: pos.Col + 1}
		if next.Col >= e.size.Cols {
			next = board.Position{Row: pos.Row + 1, Col: 0}
			if next.Row >= e.size.Rows {
				next.Row = 0
			}
		}
	case Left:
		next = board.Position{Row: pos.Row, Col: pos.Col - 1}
		if next.Col < 0 {
			next = board.Position{Row: pos.Row - 1, Col: e.size.Cols - 1}
			if next.Row < 0 {
				next.Row = e.size.Rows - 1
			}
		}
	case Down:
		next = board.Position{Row: (pos.Row + 1) % e.size.Rows, Col: pos.Col}
	case Up:
		next = board.Position{Row: (pos.Row - 1 + e.size.Rows) % e.size.Rows, Col: pos.Col}
	default:
		next = pos
	}

	return e.redirect(next)
}

// JumpEdge returns the edge position for pos in O(1).
func (e *Engine) JumpEdge(pos board.Position, edge Edge) board.Position {
	pos = pos.Clamp(e.size)

	var next board.Position
	switch edge {
	case RowStart:
		next = board.Position{Row: pos.Row, Col: 0}
	case RowEnd:
		next = board.Position{Row: pos.Row, Col: e.size.Cols - 1}
	case ColTop:
		next = board.Position{Row: 0, Col: pos.Col}
	case ColBottom:
		next = board.Position{Row: e.size.Rows - 1, Col: pos.Col}
	default:
		next = pos
	}

	return e.redirect(next)
}

// WordBoundary returns the next non-blank cell from pos in the given
// direction. Horizontal searches continue through following or preceding
// rows; vertical searches stay in the current column. With no match the
// result is the edge of the current row or column.
func (e *Engine) WordBoundary(g board.Grid, pos board.Position, dir Direction) board.Position {
	pos = pos.Clamp(e.size)

	var next board.Position
	var found bool
	switch dir {
	case Right:
		next, found = e.scanForward(g, pos)
		if !found {
			next = board.Position{Row: pos.Row, Col: e.size.Cols - 1}
		}
	case Left:
		next, found = e.scanBackward(g, pos)
		if !found {
			next = board.Position{Row: pos.Row, Col: 0}
		}
	case Down:
		next, found = e.scanColumn(g, pos, 1)
		if !found {
			next = board.Position{Row: e.size.Rows - 1, Col: pos.Col}
		}
	case Up:
		next, found = e.scanColumn(g, pos, -1)
		if !found {
			next = board.Position{Row: 0, Col: pos.Col}
		}
	default:
		next = pos
	}

	return e.redirect(next)
}

// scanForward searches the rest of the current row, then subsequent rows
// in reading order, for a non-blank cell.
func (e *Engine) scanForward(g board.Grid, pos board.Position) (board.Position, bool) {
	for col := pos.Col + 1; col < e.size.Cols; col++ {
		p := board.Position{Row: pos.Row, Col: col}
		if hasGlyph(g.At(p)) {
			return p, true
		}
	}
	for row := pos.Row + 1; row < e.size.Rows; row++ {
		for col := 0; col < e.size.Cols; col++ {
			p := board.Position{Row: row, Col: col}
			if hasGlyph(g.At(p)) {
				return p, true
			}
		}
	}
	return board.Position{}, false
}

// scanBackward mirrors scanForward in reverse reading order.
func (e *Engine) scanBackward(g board.Grid, pos board.Position) (board.Position, bool) {
	for col := pos.Col - 1; col >= 0; col-- {
		p := board.Position{Row: pos.Row, Col: col}
		if hasGlyph(g.At(p)) {
			return p, true
		}
	}
	for row := pos.Row - 1; row >= 0; row-- {
		for col := e.size.Cols - 1; col >= 0; col-- {
			p := board.Position{Row: row, Col: col}
			if hasGlyph(g.At(p)) {
				return p, true
			}
		}
	}
	return board.Position{}, false
}

// scanColumn searches the current column in the given row direction.
func (e *Engine) scanColumn(g board.Grid, pos board.Position, step int) (board.Position, bool) {
	for row := pos.Row + step; row >= 0 && row < e.size.Rows; row += step {
		p := board.Position{Row: row, Col: pos.Col}
		if hasGlyph(g.At(p)) {
			return p, true
		}
	}
	return board.Position{}, false
}

// hasGlyph reports whether a cell counts as non-blank for word search.
// Colored cells hold no printable glyph and count as blank.
func hasGlyph(c board.Cell) bool {
	return !c.IsColor() && strings.TrimSpace(c.Char) != ""
}

// redirect moves a position that landed inside the reserved region to
// the nearest editable cell before it, or up a row when the region spans
// the entire row.
func (e *Engine) redirect(pos board.Position) board.Position {
	if e.reserved == nil || !e.reserved(pos) {
		return pos
	}

	// Walk left toward the first editable cell on the row.
	for col := pos.Col - 1; col >= 0; col-- {
		p := board.Position{Row: pos.Row, Col: col}
		if !e.reserved(p) {
			return p
		}
	}

	// Whole row reserved: land on the same column of the previous row.
	// Only the bottom row is ever reserved, so the previous row is safe.
	prev := board.Position{Row: pos.Row - 1, Col: pos.Col}
	if prev.Row < 0 {
		prev.Row = e.size.Rows - 1
	}
	return prev.Clamp(e.size)
}
