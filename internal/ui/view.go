package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/splitflap/internal/board"
)

// Board placement on the screen. Each cell is two columns wide so the
// grid reads roughly square in a terminal font.
const (
	boardTop  = 2
	boardLeft = 2
	cellWidth = 2
)

// Surface is the drawing target. tcell.Screen satisfies it, as does
// the tcell simulation screen used in tests.
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// State is everything the view needs for one frame.
type State struct {
	Grid    board.Grid
	Focus   board.Position
	Focused bool

	Tool  string
	Color string

	Offline bool
	Dirty   bool

	Notice string
	Status string
}

// Layout maps between screen and board coordinates.
type Layout struct {
	Size board.Size
}

// CellAt returns the board cell under the screen point, if any.
func (l Layout) CellAt(x, y int) (board.Position, bool) {
	row := y - boardTop
	col := (x - boardLeft) / cellWidth
	if x < boardLeft || row < 0 || row >= l.Size.Rows || col < 0 || col >= l.Size.Cols {
		return board.Position{}, false
	}
	return board.Position{Row: row, Col: col}, true
}

// Origin returns the screen point of a board cell's first column.
func (l Layout) Origin(pos board.Position) (int, int) {
	return boardLeft + pos.Col*cellWidth, boardTop + pos.Row
}

// noticeRow returns the screen row of the notice line.
func (l Layout) noticeRow() int {
	return boardTop + l.Size.Rows + 1
}

// cellColors maps lowercase color tags to terminal colors.
var cellColors = map[string]tcell.Color{
	"red":    tcell.ColorRed,
	"orange": tcell.ColorOrange,
	"yellow": tcell.ColorYellow,
	"green":  tcell.ColorGreen,
	"blue":   tcell.ColorBlue,
	"purple": tcell.ColorPurple,
	"white":  tcell.ColorWhite,
	"black":  tcell.ColorBlack,
	"filled": tcell.ColorSilver,
}

// Render draws one frame onto the surface. The caller clears and shows
// the screen around it.
func Render(s Surface, st State) {
	drawText(s, 0, 0, statusLine(st), tcell.StyleDefault.Bold(true))

	size := st.Grid.Size()
	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			pos := board.Position{Row: r, Col: c}
			drawCell(s, pos, st.Grid.At(pos), st.Focused && pos == st.Focus)
		}
	}

	if st.Notice != "" {
		drawText(s, boardLeft, Layout{Size: size}.noticeRow(), st.Notice,
			tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
}

func drawCell(s Surface, pos board.Position, cell board.Cell, focused bool) {
	x := boardLeft + pos.Col*cellWidth
	y := boardTop + pos.Row

	style := tcell.StyleDefault
	ch := ' '
	switch {
	case cell.IsColor():
		style = style.Background(cellColors[cell.Color])
	case strings.TrimSpace(cell.Char) != "":
		ch = []rune(cell.Char)[0]
	}
	if focused {
		style = style.Reverse(true)
	}

	s.SetContent(x, y, ch, nil, style)
	s.SetContent(x+1, y, ' ', nil, style)
}

func drawText(s Surface, x, y int, text string, style tcell.Style) {
	width, _ := s.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// statusLine summarizes tool, connection, and edit state.
func statusLine(st State) string {
	parts := []string{"splitflap", "tool:" + st.Tool}
	if st.Tool == "paint" {
		color := st.Color
		if color == "" {
			color = "erase"
		}
		parts = append(parts, "color:"+color)
	}
	if st.Offline {
		parts = append(parts, "OFFLINE")
	}
	if st.Dirty {
		parts = append(parts, "edited")
	}
	if st.Status != "" {
		parts = append(parts, st.Status)
	}
	return strings.Join(parts, "  ")
}
