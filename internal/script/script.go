// Package script runs an optional user Lua hook over the board just
// before it is sent. The hook sees the board as a table of row strings
// and may return a replacement table; anything it leaves alone keeps
// its cell, including color cells, which are presented as spaces.
//
// The Lua state is sandboxed: only the base, table, string, and math
// libraries are opened, and file or code loading primitives are
// removed. A hook error aborts the transform, never the send.
package script

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/charset"
)

// hookFunc is the global the hook script must define.
const hookFunc = "transform"

// Hook wraps a loaded pre-send script. The zero value is a disabled
// hook whose Transform is a no-op.
//
// LState is not goroutine safe. Transform must only be called from the
// event loop.
type Hook struct {
	state  *lua.LState
	logger *slog.Logger
}

// Load reads and verifies the hook script at path. An empty path
// returns a disabled hook.
func Load(path string, logger *slog.Logger) (*Hook, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &Hook{logger: logger.With("component", "script")}
	if path == "" {
		return h, nil
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// No loading code or files from inside the sandbox.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading hook script: %w", err)
	}
	fn := L.GetGlobal(hookFunc)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("hook script must define a %s function, got %s", hookFunc, fn.Type())
	}

	h.state = L
	return h, nil
}

// Enabled reports whether a script is loaded.
func (h *Hook) Enabled() bool {
	return h != nil && h.state != nil
}

// Close releases the Lua state.
func (h *Hook) Close() {
	if h.Enabled() {
		h.state.Close()
	}
}

// Transform runs the hook over g. It returns the transformed grid and
// whether anything changed. On error the original grid comes back
// unchanged and the caller decides whether to proceed.
func (h *Hook) Transform(g board.Grid) (board.Grid, bool, error) {
	if !h.Enabled() {
		return g, false, nil
	}

	size := g.Size()
	L := h.state

	rows := L.NewTable()
	for r := 0; r < size.Rows; r++ {
		rows.Append(lua.LString(rowText(g, r)))
	}

	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal(hookFunc),
		NRet:    1,
		Protect: true,
	}, rows); err != nil {
		return g, false, fmt.Errorf("hook script failed: %w", err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	if ret == lua.LNil {
		return g, false, nil
	}
	out, ok := ret.(*lua.LTable)
	if !ok {
		return g, false, fmt.Errorf("hook script returned %s, want table or nil", ret.Type())
	}

	next := g.Clone()
	changed := false
	for r := 0; r < size.Rows; r++ {
		line := L.GetTable(out, lua.LNumber(r+1))
		str, ok := line.(lua.LString)
		if !ok {
			return g, false, fmt.Errorf("hook script row %d is %s, want string", r+1, line.Type())
		}
		rowChanged, err := applyRow(next, r, string(str))
		if err != nil {
			return g, false, err
		}
		changed = changed || rowChanged
	}
	if !changed {
		return g, false, nil
	}
	return next, true, nil
}

// rowText renders row r for the hook. Color cells show as spaces so
// the script sees the text the viewer reads.
func rowText(g board.Grid, r int) string {
	size := g.Size()
	var b strings.Builder
	for c := 0; c < size.Cols; c++ {
		cell := g.At(board.Position{Row: r, Col: c})
		ch := cell.Char
		if cell.IsColor() || len(ch) != 1 {
			ch = " "
		}
		b.WriteString(ch)
	}
	return b.String()
}

// applyRow writes the hook's row back. A cell that still reads the
// same keeps its original cell, which preserves colors behind the
// space placeholder.
func applyRow(g board.Grid, r int, line string) (bool, error) {
	size := g.Size()
	orig := rowText(g, r)
	// Short rows keep their remaining cells; long rows are an error
	// rather than silently truncated.
	if len(line) > size.Cols {
		return false, fmt.Errorf("hook script row %d is %d characters, board has %d columns", r+1, len(line), size.Cols)
	}

	changed := false
	for c := 0; c < len(line); c++ {
		ch := strings.ToUpper(string(line[c]))
		if ch == string(orig[c]) {
			continue
		}
		if !charset.Mappable(ch) {
			return false, fmt.Errorf("hook script produced unsupported character %q", ch)
		}
		pos := board.Position{Row: r, Col: c}
		if ch == " " {
			g.Set(pos, board.Blank())
		} else {
			g.Set(pos, board.Glyph(ch))
		}
		changed = true
	}
	return changed, nil
}
