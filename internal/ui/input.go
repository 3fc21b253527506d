package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/splitflap/internal/charset"
	"github.com/dshills/splitflap/internal/cursor"
)

// Op identifies an editor command produced from a terminal event.
type Op uint8

const (
	// OpNone is an event with no editor meaning.
	OpNone Op = iota

	// OpMove steps the focus one cell (Dir).
	OpMove

	// OpWordMove jumps the focus to the next word boundary (Dir).
	OpWordMove

	// OpEdgeJump jumps the focus to a row or column edge (Edge).
	OpEdgeJump

	// OpRune types a character at the focus (Ch).
	OpRune

	// OpBackspace clears the focused cell and moves left.
	OpBackspace

	// OpDelete clears the focused cell in place.
	OpDelete

	// OpRelease drops keyboard focus from the board.
	OpRelease

	// OpQuit exits the editor.
	OpQuit

	// OpSend pushes the local board to the remote display.
	OpSend

	// OpSync fetches the remote board and adopts it.
	OpSync

	// OpDismiss dismisses the divergence notice.
	OpDismiss

	// OpClearBoard wipes the whole board.
	OpClearBoard

	// OpTextTool activates the text tool.
	OpTextTool

	// OpSelectColor picks a paint color (Color, "" for erase) and
	// activates the paint tool.
	OpSelectColor

	// OpMouseDown, OpMouseMove, and OpMouseUp carry the primary-button
	// drag gesture (X, Y in screen coordinates).
	OpMouseDown
	OpMouseMove
	OpMouseUp
)

// Command is a translated terminal event.
type Command struct {
	Op    Op
	Dir   cursor.Direction
	Edge  cursor.Edge
	Ch    rune
	Color string
	X, Y  int
}

// Translator converts tcell events to commands. It keeps the primary
// mouse button state so motion events split into down/move/up.
type Translator struct {
	mouseDown bool
}

// Translate maps one terminal event to a command.
func (t *Translator) Translate(ev tcell.Event) Command {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(e)
	case *tcell.EventMouse:
		return t.translateMouse(e)
	default:
		return Command{}
	}
}

func (t *Translator) translateKey(e *tcell.EventKey) Command {
	mod := e.Modifiers()

	switch e.Key() {
	case tcell.KeyTab:
		return Command{Op: OpMove, Dir: cursor.Right}
	case tcell.KeyBacktab:
		return Command{Op: OpMove, Dir: cursor.Left}
	case tcell.KeyEnter:
		if mod&tcell.ModShift != 0 {
			return Command{Op: OpMove, Dir: cursor.Up}
		}
		return Command{Op: OpMove, Dir: cursor.Down}
	case tcell.KeyUp:
		return arrowCommand(cursor.Up, cursor.ColTop, mod)
	case tcell.KeyDown:
		return arrowCommand(cursor.Down, cursor.ColBottom, mod)
	case tcell.KeyLeft:
		return arrowCommand(cursor.Left, cursor.RowStart, mod)
	case tcell.KeyRight:
		return arrowCommand(cursor.Right, cursor.RowEnd, mod)
	case tcell.KeyHome:
		return Command{Op: OpEdgeJump, Edge: cursor.RowStart}
	case tcell.KeyEnd:
		return Command{Op: OpEdgeJump, Edge: cursor.RowEnd}
	case tcell.KeyPgUp:
		return Command{Op: OpEdgeJump, Edge: cursor.ColTop}
	case tcell.KeyPgDn:
		return Command{Op: OpEdgeJump, Edge: cursor.ColBottom}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Command{Op: OpBackspace}
	case tcell.KeyDelete:
		return Command{Op: OpDelete}
	case tcell.KeyEscape:
		return Command{Op: OpRelease}
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return Command{Op: OpQuit}
	case tcell.KeyCtrlS:
		return Command{Op: OpSend}
	case tcell.KeyCtrlR:
		return Command{Op: OpSync}
	case tcell.KeyCtrlD:
		return Command{Op: OpDismiss}
	case tcell.KeyCtrlE:
		return Command{Op: OpClearBoard}
	case tcell.KeyCtrlT:
		return Command{Op: OpTextTool}
	case tcell.KeyF10:
		return Command{Op: OpSelectColor, Color: ""}
	case tcell.KeyRune:
		if mod&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return Command{}
		}
		return Command{Op: OpRune, Ch: e.Rune()}
	}

	// F1..F9 select the nine paint colors in charset order.
	if k := e.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF9 {
		colors := charset.Colors()
		return Command{Op: OpSelectColor, Color: colors[int(k-tcell.KeyF1)]}
	}

	return Command{}
}

// arrowCommand resolves the three arrow bindings: plain move, Alt word
// move, Ctrl edge jump.
func arrowCommand(dir cursor.Direction, edge cursor.Edge, mod tcell.ModMask) Command {
	switch {
	case mod&tcell.ModCtrl != 0:
		return Command{Op: OpEdgeJump, Edge: edge}
	case mod&tcell.ModAlt != 0:
		return Command{Op: OpWordMove, Dir: dir}
	default:
		return Command{Op: OpMove, Dir: dir}
	}
}

func (t *Translator) translateMouse(e *tcell.EventMouse) Command {
	x, y := e.Position()
	pressed := e.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !t.mouseDown:
		t.mouseDown = true
		return Command{Op: OpMouseDown, X: x, Y: y}
	case pressed:
		return Command{Op: OpMouseMove, X: x, Y: y}
	case t.mouseDown:
		t.mouseDown = false
		return Command{Op: OpMouseUp, X: x, Y: y}
	default:
		return Command{}
	}
}
