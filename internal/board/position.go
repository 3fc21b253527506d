package board

import "fmt"

// Default dimensions of a standard split-flap board.
const (
	DefaultRows = 6
	DefaultCols = 22
)

// Size describes the fixed dimensions of a board.
type Size struct {
	Rows int
	Cols int
}

// DefaultSize returns the standard 6x22 board size.
func DefaultSize() Size {
	return Size{Rows: DefaultRows, Cols: DefaultCols}
}

// Contains returns true if pos is inside the board.
func (s Size) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < s.Rows && pos.Col >= 0 && pos.Col < s.Cols
}

// CellCount returns the total number of cells on the board.
func (s Size) CellCount() int {
	return s.Rows * s.Cols
}

// Position represents a cell location on the board.
// Both Row and Col are 0-indexed. Position is an immutable value type;
// movement operations return fresh values.
type Position struct {
	Row int
	Col int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Equals returns true if two positions refer to the same cell.
func (p Position) Equals(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// Clamp returns a position clamped into the given size.
func (p Position) Clamp(size Size) Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= size.Rows {
		p.Row = size.Rows - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col >= size.Cols {
		p.Col = size.Cols - 1
	}
	return p
}
