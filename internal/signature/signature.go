// Package signature derives the reserved display-name region of the
// board. When a display name is set, the text "-name" occupies the
// trailing cells of the bottom row; those cells are off limits to the
// cursor and every editing tool. The region is derived from the name on
// demand and never stored.
package signature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/charset"
)

// MaxNameLen is the longest accepted display name.
const MaxNameLen = 20

// Validation errors.
var (
	ErrEmptyName   = errors.New("display name is empty")
	ErrNameTooLong = fmt.Errorf("display name exceeds %d characters", MaxNameLen)
)

// Format renders the signature text for a display name into a row of the
// given width: "-" + name, right-aligned, left-padded with spaces. Names
// too long for the row are left-truncated while keeping the leading dash.
// An empty name formats to an all-blank row.
func Format(name string, cols int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return strings.Repeat(" ", cols)
	}

	sig := "-" + name
	if len(sig) > cols {
		sig = "-" + sig[len(sig)-(cols-1):]
	}
	return strings.Repeat(" ", cols-len(sig)) + sig
}

// Overlay answers whether a given cell belongs to the signature region
// and can stamp the signature into a grid for display.
type Overlay struct {
	name string
	size board.Size

	// startCol is the first reserved column of the bottom row, or
	// size.Cols when nothing is reserved.
	startCol int
}

// NewOverlay builds an overlay for the given display name. An empty name
// reserves nothing.
func NewOverlay(name string, size board.Size) *Overlay {
	name = strings.TrimSpace(name)
	o := &Overlay{name: name, size: size, startCol: size.Cols}
	if name == "" {
		return o
	}

	sigLen := len("-" + name)
	if sigLen > size.Cols {
		sigLen = size.Cols
	}
	o.startCol = size.Cols - sigLen
	return o
}

// Name returns the display name backing this overlay.
func (o *Overlay) Name() string {
	return o.name
}

// Contains returns true if pos is inside the reserved signature region.
func (o *Overlay) Contains(pos board.Position) bool {
	return pos.Row == o.size.Rows-1 && pos.Col >= o.startCol
}

// StartCol returns the first reserved column of the bottom row, or the
// column count when no cell is reserved.
func (o *Overlay) StartCol() int {
	return o.startCol
}

// FillsBottomRow returns true when the signature occupies every cell of
// the bottom row, leaving no editable cell on it.
func (o *Overlay) FillsBottomRow() bool {
	return o.startCol == 0
}

// Apply stamps the signature characters into the bottom row of the grid.
// Cells outside the region are left untouched.
func (o *Overlay) Apply(g board.Grid) {
	if o.name == "" {
		return
	}
	text := Format(o.name, o.size.Cols)
	row := o.size.Rows - 1
	for col := o.startCol; col < o.size.Cols; col++ {
		g.Set(board.Position{Row: row, Col: col}, board.Glyph(string(text[col])))
	}
}

// Validate checks a display name against the device's constraints:
// non-empty after trimming, at most MaxNameLen characters, and drawn from
// letters, digits, spaces, apostrophes, and dashes that exist in the
// device character set.
func Validate(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == ' ', r == '\'', r == '-':
		default:
			return fmt.Errorf("display name contains unsupported character %q", r)
		}
		if !charset.Mappable(string(r)) {
			return fmt.Errorf("display name character %q has no board code", r)
		}
	}
	return nil
}
