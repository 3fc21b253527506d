package app

import (
	"context"

	"github.com/dshills/splitflap/internal/tool"
	"github.com/dshills/splitflap/internal/ui"
)

// handleCommand applies one translated terminal command to the editor
// state. It runs on the event loop.
func (a *App) handleCommand(ctx context.Context, cmd ui.Command) {
	switch cmd.Op {
	case ui.OpQuit:
		a.quit = true

	case ui.OpMove:
		a.ensureFocus()
		a.focus = a.nav.Move(a.focus, cmd.Dir)
	case ui.OpWordMove:
		a.ensureFocus()
		a.focus = a.nav.WordBoundary(a.store.Grid(), a.focus, cmd.Dir)
	case ui.OpEdgeJump:
		a.ensureFocus()
		a.focus = a.nav.JumpEdge(a.focus, cmd.Edge)
	case ui.OpRelease:
		a.focused = false

	case ui.OpRune:
		a.ensureFocus()
		a.focus = a.tools.Type(a.focus, string(cmd.Ch))
	case ui.OpBackspace:
		a.ensureFocus()
		a.focus = a.tools.Backspace(a.focus)
	case ui.OpDelete:
		a.ensureFocus()
		a.tools.Delete(a.focus)

	case ui.OpTextTool:
		a.tools.SetActive(tool.ToolText)
	case ui.OpSelectColor:
		a.tools.SelectColor(cmd.Color)
	case ui.OpClearBoard:
		a.tools.ClearBoard()

	case ui.OpSend:
		a.send(ctx)
	case ui.OpSync:
		a.syncNow(ctx)
	case ui.OpDismiss:
		a.engine.ClearNotice()

	case ui.OpMouseDown:
		a.mouseDown(cmd.X, cmd.Y)
	case ui.OpMouseMove:
		a.mouseMove(cmd.X, cmd.Y)
	case ui.OpMouseUp:
		a.tools.PointerUp()
	}
}

// ensureFocus puts keyboard focus on the board before a key acts on it.
func (a *App) ensureFocus() {
	a.focused = true
}

func (a *App) mouseDown(x, y int) {
	pos, ok := a.layout.CellAt(x, y)
	if !ok {
		a.focused = false
		return
	}
	if a.tools.Active() == tool.ToolPaint {
		a.tools.PointerDown(pos)
		return
	}
	if !a.overlay.Contains(pos) {
		a.focus = pos
		a.focused = true
	}
}

func (a *App) mouseMove(x, y int) {
	pos, ok := a.layout.CellAt(x, y)
	if !ok {
		a.tools.PointerLeave()
		return
	}
	a.tools.PointerEnter(pos)
}

// send pushes the local board to the device. The signature is stamped
// into the outgoing frame, the optional Lua hook may rewrite it, and
// the active installable is suspended first so scheduled content does
// not immediately overwrite the message.
func (a *App) send(ctx context.Context) {
	frame := a.store.Snapshot()
	a.overlay.Apply(frame)

	transformed, changed, err := a.hook.Transform(frame)
	if err != nil {
		a.logger.Warn("send hook failed, sending untransformed board", "error", err)
	} else if changed {
		frame = transformed
	}

	if a.admin {
		a.registry.SuspendActive(ctx, a.gateway)
	}

	if err := a.gateway.Send(ctx, frame); err != nil {
		a.logger.Error("send failed", "error", err)
		a.setStatus("send failed: "+err.Error(), true)
		return
	}

	// The device now shows our board: local edits are no longer pending.
	a.store.Adopt(a.store.Grid())
	a.engine.ClearNotice()
	a.setStatus("board sent", false)
}

// syncNow adopts the remote board immediately, bypassing the staleness
// policy.
func (a *App) syncNow(ctx context.Context) {
	if err := a.engine.SyncNow(ctx); err != nil {
		a.logger.Warn("manual sync failed", "error", err)
		a.setStatus("sync failed: "+err.Error(), true)
	}
}
