package tool

import (
	"strings"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/charset"
)

// Tool identifies the active editing tool.
type Tool uint8

const (
	// ToolText enters characters at the focused cell.
	ToolText Tool = iota

	// ToolPaint paints cells with the selected color during drags.
	ToolPaint
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolText:
		return "text"
	case ToolPaint:
		return "paint"
	default:
		return "unknown"
	}
}

// Controller tracks the active tool, the selected paint color, and the
// in-progress drag session, and applies mutations to the board store.
type Controller struct {
	store    *board.Store
	reserved func(board.Position) bool
	offline  bool

	active Tool

	// color is the selected paint color, or "" for the erase slot.
	color string

	drag dragSession
}

// NewController creates a controller bound to the given store.
func NewController(store *board.Store) *Controller {
	return &Controller{store: store}
}

// SetReserved installs the signature-region predicate. Cells matching it
// are never mutated.
func (c *Controller) SetReserved(pred func(board.Position) bool) {
	c.reserved = pred
}

// SetOffline marks the remote connection state. While offline, every
// mutation is a silent no-op.
func (c *Controller) SetOffline(offline bool) {
	c.offline = offline
}

// Offline reports the connection state the controller was last told.
func (c *Controller) Offline() bool {
	return c.offline
}

// Active returns the active tool.
func (c *Controller) Active() Tool {
	return c.active
}

// SetActive switches the active tool. Switching away from paint ends any
// in-progress drag.
func (c *Controller) SetActive(t Tool) {
	if t != ToolPaint {
		c.drag.end()
	}
	c.active = t
}

// SelectColor picks the paint color ("" selects the erase slot) and
// activates the paint tool.
func (c *Controller) SelectColor(color string) {
	c.color = strings.ToLower(color)
	c.active = ToolPaint
}

// SelectedColor returns the current paint color, "" for erase.
func (c *Controller) SelectedColor() string {
	return c.color
}

// ClearBoard wipes the grid and reverts to the text tool. It is a
// momentary action, not a mode.
func (c *Controller) ClearBoard() {
	if c.offline {
		return
	}
	c.store.ClearAll()
	c.drag.end()
	c.active = ToolText
}

// Type writes a keystroke into the focused cell and returns the next
// focus position. Multi-rune input keeps only the last rune. The focus
// advances right, wrapping to the next row's start, but never past the
// last editable cell.
func (c *Controller) Type(pos board.Position, input string) board.Position {
	if !c.mutable(pos) {
		return pos
	}

	runes := []rune(input)
	if len(runes) == 0 {
		return pos
	}
	ch := strings.ToUpper(string(runes[len(runes)-1]))
	if !charset.Mappable(ch) {
		return pos
	}

	c.store.SetChar(pos, ch)
	return c.advance(pos)
}

// Backspace clears the focused cell and returns the position one step
// left, stopping at the first cell.
func (c *Controller) Backspace(pos board.Position) board.Position {
	if c.mutable(pos) {
		c.store.ClearCell(pos)
	}
	return c.retreat(pos)
}

// Delete clears the focused cell in place.
func (c *Controller) Delete(pos board.Position) {
	if c.mutable(pos) {
		c.store.ClearCell(pos)
	}
}

// PointerDown starts a drag gesture and paints the initial cell. It is a
// no-op unless the paint tool is active.
func (c *Controller) PointerDown(pos board.Position) {
	if c.active != ToolPaint {
		return
	}
	c.drag.start()
	c.paintAt(pos)
}

// PointerEnter paints a newly entered cell during an active gesture.
// Cells already visited in this gesture are skipped.
func (c *Controller) PointerEnter(pos board.Position) {
	if c.active != ToolPaint || !c.drag.isActive() {
		return
	}
	c.paintAt(pos)
}

// PointerUp ends the drag gesture. It doubles as the global release
// handler for pointer-ups that happen outside the board.
func (c *Controller) PointerUp() {
	c.drag.end()
}

// PointerLeave ends the gesture when the pointer exits the board area.
func (c *Controller) PointerLeave() {
	c.drag.end()
}

// DragActive reports whether a paint gesture is in progress.
func (c *Controller) DragActive() bool {
	return c.drag.isActive()
}

// paintAt applies the selected color (or erase) to pos once per gesture.
func (c *Controller) paintAt(pos board.Position) {
	if !c.drag.mark(pos) {
		return
	}
	if !c.mutable(pos) {
		return
	}
	if c.color == "" {
		c.store.ClearCell(pos)
		return
	}
	c.store.SetColor(pos, c.color)
}

// mutable reports whether the cell at pos may be written right now.
func (c *Controller) mutable(pos board.Position) bool {
	if c.offline {
		return false
	}
	if !c.store.Size().Contains(pos) {
		return false
	}
	if c.reserved != nil && c.reserved(pos) {
		return false
	}
	return true
}

// advance steps the focus right for text entry, wrapping to the next
// row's start but never past the last cell or into the signature region.
func (c *Controller) advance(pos board.Position) board.Position {
	size := c.store.Size()
	next := board.Position{Row: pos.Row, Col: pos.Col + 1}
	if next.Col >= size.Cols {
		next = board.Position{Row: pos.Row + 1, Col: 0}
		if next.Row >= size.Rows {
			return pos
		}
	}
	if c.reserved != nil && c.reserved(next) {
		return pos
	}
	return next
}

// retreat steps the focus left, wrapping to the previous row's end but
// never before the first cell.
func (c *Controller) retreat(pos board.Position) board.Position {
	size := c.store.Size()
	prev := board.Position{Row: pos.Row, Col: pos.Col - 1}
	if prev.Col < 0 {
		prev = board.Position{Row: pos.Row - 1, Col: size.Cols - 1}
		if prev.Row < 0 {
			return pos
		}
	}
	if c.reserved != nil && c.reserved(prev) {
		return pos
	}
	return prev
}
