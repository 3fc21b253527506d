package board

// Grid is a fixed-size matrix of cells. Dimensions never change over a
// grid's lifetime; externally supplied data is padded or truncated to fit
// via Normalize.
type Grid struct {
	size  Size
	cells [][]Cell
}

// NewGrid creates a blank grid of the given size.
func NewGrid(size Size) Grid {
	cells := make([][]Cell, size.Rows)
	for r := range cells {
		cells[r] = make([]Cell, size.Cols)
	}
	return Grid{size: size, cells: cells}
}

// Normalize builds a grid of the given size from arbitrary cell rows,
// padding short rows and missing rows with blanks and truncating excess.
func Normalize(rows [][]Cell, size Size) Grid {
	g := NewGrid(size)
	for r := 0; r < size.Rows && r < len(rows); r++ {
		for c := 0; c < size.Cols && c < len(rows[r]); c++ {
			g.cells[r][c] = rows[r][c]
		}
	}
	return g
}

// Size returns the grid dimensions.
func (g Grid) Size() Size {
	return g.size
}

// At returns the cell at pos. Out-of-bounds positions read as blank.
func (g Grid) At(pos Position) Cell {
	if !g.size.Contains(pos) {
		return Cell{}
	}
	return g.cells[pos.Row][pos.Col]
}

// Set writes the cell at pos. Out-of-bounds positions are ignored.
// Grids share their backing storage across copies; use Clone for an
// independent grid.
func (g Grid) Set(pos Position, cell Cell) {
	if !g.size.Contains(pos) {
		return
	}
	g.cells[pos.Row][pos.Col] = cell
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := NewGrid(g.size)
	for r := range g.cells {
		copy(out.cells[r], g.cells[r])
	}
	return out
}

// Equal compares two grids cell by cell using Cell.Equal.
// Grids of different sizes are never equal.
func (g Grid) Equal(other Grid) bool {
	if g.size != other.size {
		return false
	}
	for r := 0; r < g.size.Rows; r++ {
		for c := 0; c < g.size.Cols; c++ {
			if !g.cells[r][c].Equal(other.cells[r][c]) {
				return false
			}
		}
	}
	return true
}

// Row returns a copy of the cells in row r, or nil if out of range.
func (g Grid) Row(r int) []Cell {
	if r < 0 || r >= g.size.Rows {
		return nil
	}
	out := make([]Cell, g.size.Cols)
	copy(out, g.cells[r])
	return out
}

// Fill sets every cell to the given value.
func (g Grid) Fill(cell Cell) {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = cell
		}
	}
}

// IsZero reports whether the grid was never initialized.
func (g Grid) IsZero() bool {
	return g.cells == nil
}
