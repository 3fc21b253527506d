package board

import "strings"

// Cell represents a single flap on the board.
// A cell holds either a printable character or a color tag, never both.
// Color cells store the uppercase color token as their character (e.g.
// "RED") and carry the matching tag in Color.
type Cell struct {
	// Char is the displayed character, or a color token for color cells.
	// Empty and " " both mean a blank flap.
	Char string

	// Color is the color tag for color cells, empty otherwise.
	Color string
}

// Blank returns an empty cell.
func Blank() Cell {
	return Cell{}
}

// Glyph returns a cell displaying the given character.
func Glyph(ch string) Cell {
	return Cell{Char: ch}
}

// Colored returns a color cell for the given color name.
// The color token doubles as the stored character so the wire encoding
// needs no separate lookup.
func Colored(color string) Cell {
	return Cell{Char: strings.ToUpper(color), Color: strings.ToLower(color)}
}

// IsBlank returns true if the cell shows an empty flap and no color.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.Char) == "" && c.Color == ""
}

// IsColor returns true if the cell is a color cell.
func (c Cell) IsColor() bool {
	return c.Color != ""
}

// Equal compares two cells the way the display does: characters are
// compared trimmed, so "" and " " are the same blank, and color tags are
// compared only when both cells carry one. The latter keeps legacy
// payloads, which cannot recover colors, comparable against decoded ones.
func (c Cell) Equal(other Cell) bool {
	if strings.TrimSpace(c.Char) != strings.TrimSpace(other.Char) {
		return false
	}
	if c.Color != "" && other.Color != "" && c.Color != other.Color {
		return false
	}
	return true
}
