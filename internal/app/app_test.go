package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/config"
	"github.com/dshills/splitflap/internal/cursor"
	"github.com/dshills/splitflap/internal/settings"
	"github.com/dshills/splitflap/internal/ui"
)

type fakeGateway struct {
	grid     board.Grid
	fetchErr error

	sent    []board.Grid
	sendErr error

	activated   []string
	deactivated []string
}

func (f *fakeGateway) Fetch(context.Context) (board.Grid, error) {
	if f.fetchErr != nil {
		return board.Grid{}, f.fetchErr
	}
	return f.grid.Clone(), nil
}

func (f *fakeGateway) Send(_ context.Context, g board.Grid) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, g.Clone())
	return nil
}

func (f *fakeGateway) Activate(_ context.Context, name string) error {
	f.activated = append(f.activated, name)
	return nil
}

func (f *fakeGateway) Deactivate(_ context.Context, name string) error {
	f.deactivated = append(f.deactivated, name)
	return nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Settings.Path = filepath.Join(t.TempDir(), "splitflap.db")
	return cfg
}

func newTestApp(t *testing.T, cfg config.Config, gw *fakeGateway) *App {
	t.Helper()
	if gw.grid.IsZero() {
		gw.grid = board.NewGrid(board.Size{Rows: cfg.Board.Rows, Cols: cfg.Board.Cols})
	}
	a, err := newApp(cfg, nil, gw)
	if err != nil {
		t.Fatalf("app construction failed: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestTypingAdvancesFocus(t *testing.T) {
	a := newTestApp(t, testConfig(t), &fakeGateway{})
	ctx := context.Background()

	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'h'})
	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'i'})

	if got := a.store.At(board.Position{Row: 0, Col: 0}).Char; got != "H" {
		t.Errorf("expected H at (0,0), got %q", got)
	}
	if got := a.store.At(board.Position{Row: 0, Col: 1}).Char; got != "I" {
		t.Errorf("expected I at (0,1), got %q", got)
	}
	if a.focus != (board.Position{Row: 0, Col: 2}) {
		t.Errorf("focus should advance to (0,2), got %v", a.focus)
	}
	if !a.store.Dirty() {
		t.Error("typing should mark the board dirty")
	}
	if !a.focused {
		t.Error("typing should focus the board")
	}
}

func TestEscapeReleasesFocus(t *testing.T) {
	a := newTestApp(t, testConfig(t), &fakeGateway{})
	ctx := context.Background()

	a.handleCommand(ctx, ui.Command{Op: ui.OpMove, Dir: cursor.Right})
	if !a.focused {
		t.Fatal("moving should focus the board")
	}
	a.handleCommand(ctx, ui.Command{Op: ui.OpRelease})
	if a.focused {
		t.Error("escape should release focus")
	}
}

func TestOfflineBlocksEditing(t *testing.T) {
	gw := &fakeGateway{fetchErr: errors.New("no route")}
	a := newTestApp(t, testConfig(t), gw)
	ctx := context.Background()

	a.tick(ctx)
	if !a.engine.Offline() {
		t.Fatal("failed fetch should mark the editor offline")
	}

	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'x'})
	if !a.store.Grid().At(board.Position{Row: 0, Col: 0}).IsBlank() {
		t.Error("offline editing should be a no-op")
	}

	// Recovery re-enables editing.
	gw.fetchErr = nil
	a.tick(ctx)
	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'x'})
	if a.store.Grid().At(board.Position{Row: 0, Col: 0}).Char != "X" {
		t.Error("editing should work again once back online")
	}
}

func TestSendStampsSignature(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestApp(t, testConfig(t), gw)
	a.setOverlay("alex")
	ctx := context.Background()

	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'h'})
	a.handleCommand(ctx, ui.Command{Op: ui.OpSend})

	if len(gw.sent) != 1 {
		t.Fatalf("expected one send, got %d", len(gw.sent))
	}
	frame := gw.sent[0]
	if frame.At(board.Position{Row: 5, Col: 17}).Char != "-" {
		t.Error("sent frame should carry the signature dash at (5,17)")
	}
	if frame.At(board.Position{Row: 5, Col: 18}).Char != "a" {
		t.Errorf("sent frame should carry the name, got %q", frame.At(board.Position{Row: 5, Col: 18}).Char)
	}

	// The live grid never holds the signature.
	if a.store.Grid().At(board.Position{Row: 5, Col: 17}).Char == "-" {
		t.Error("live grid must not be stamped")
	}
	if a.store.Dirty() {
		t.Error("successful send should clear the pending-edit flag")
	}
	if a.currentStatus() != "board sent" {
		t.Errorf("unexpected status %q", a.currentStatus())
	}
}

func TestSendFailureIsSticky(t *testing.T) {
	gw := &fakeGateway{sendErr: errors.New("device busy")}
	a := newTestApp(t, testConfig(t), gw)
	ctx := context.Background()

	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'h'})
	a.handleCommand(ctx, ui.Command{Op: ui.OpSend})

	if !strings.Contains(a.currentStatus(), "send failed") {
		t.Errorf("expected a send failure status, got %q", a.currentStatus())
	}
	if !a.statusSticky {
		t.Error("send failure status should persist until replaced")
	}
	if !a.store.Dirty() {
		t.Error("failed send should keep the pending-edit flag")
	}
}

func TestSendSuspendsInstallableForAdmin(t *testing.T) {
	cfg := testConfig(t)

	manifest := filepath.Join(t.TempDir(), "installables.yaml")
	if err := os.WriteFile(manifest, []byte("installables:\n  - name: clock\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Install.Manifest = manifest

	// Seed persisted settings before the app resolves them.
	prefs, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		t.Fatal(err)
	}
	if err := prefs.SetAdmin(true); err != nil {
		t.Fatal(err)
	}
	if err := prefs.SetPreferredInstallable("clock"); err != nil {
		t.Fatal(err)
	}
	if err := prefs.Close(); err != nil {
		t.Fatal(err)
	}

	gw := &fakeGateway{}
	a := newTestApp(t, cfg, gw)

	a.handleCommand(context.Background(), ui.Command{Op: ui.OpSend})
	if len(gw.deactivated) != 1 || gw.deactivated[0] != "clock" {
		t.Errorf("send should deactivate the active installable, got %v", gw.deactivated)
	}
}

func TestSendWithoutAdminLeavesInstallables(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestApp(t, testConfig(t), gw)

	a.handleCommand(context.Background(), ui.Command{Op: ui.OpSend})
	if len(gw.deactivated) != 0 {
		t.Errorf("non-admin send must not touch installables, got %v", gw.deactivated)
	}
}

func TestManualSyncAdoptsRemote(t *testing.T) {
	gw := &fakeGateway{}
	cfg := testConfig(t)
	a := newTestApp(t, cfg, gw)
	ctx := context.Background()

	remote := board.NewGrid(a.store.Size())
	remote.Set(board.Position{Row: 2, Col: 3}, board.Glyph("Q"))
	gw.grid = remote

	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'h'})
	a.handleCommand(ctx, ui.Command{Op: ui.OpSync})

	if !a.store.Grid().Equal(remote) {
		t.Error("manual sync should adopt the remote board")
	}
	if a.store.Dirty() {
		t.Error("manual sync should clear the pending-edit flag")
	}
}

func TestPaintDragViaMouse(t *testing.T) {
	a := newTestApp(t, testConfig(t), &fakeGateway{})
	ctx := context.Background()

	a.handleCommand(ctx, ui.Command{Op: ui.OpSelectColor, Color: "red"})

	start := board.Position{Row: 1, Col: 1}
	next := board.Position{Row: 1, Col: 2}
	x0, y0 := a.layout.Origin(start)
	x1, y1 := a.layout.Origin(next)

	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseDown, X: x0, Y: y0})
	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseMove, X: x1, Y: y1})
	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseUp})

	for _, pos := range []board.Position{start, next} {
		cell := a.store.At(pos)
		if !cell.IsColor() || cell.Color != "red" {
			t.Errorf("cell %v should be painted red, got %+v", pos, cell)
		}
	}
	if a.tools.DragActive() {
		t.Error("mouse up should end the drag")
	}
}

func TestMouseClickFocusesCell(t *testing.T) {
	a := newTestApp(t, testConfig(t), &fakeGateway{})
	ctx := context.Background()

	target := board.Position{Row: 3, Col: 7}
	x, y := a.layout.Origin(target)
	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseDown, X: x, Y: y})

	if !a.focused || a.focus != target {
		t.Errorf("click should focus %v, got %v focused=%v", target, a.focus, a.focused)
	}

	// Clicking off the board releases focus.
	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseUp})
	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseDown, X: 0, Y: 0})
	if a.focused {
		t.Error("clicking outside the board should release focus")
	}
}

func TestSignatureRegionRejectsClicks(t *testing.T) {
	a := newTestApp(t, testConfig(t), &fakeGateway{})
	a.setOverlay("alex")
	ctx := context.Background()

	reserved := board.Position{Row: 5, Col: 20}
	x, y := a.layout.Origin(reserved)
	a.handleCommand(ctx, ui.Command{Op: ui.OpMouseDown, X: x, Y: y})
	if a.focused && a.focus == reserved {
		t.Error("clicking the signature region must not focus it")
	}
}

func TestSendHookRewritesFrame(t *testing.T) {
	cfg := testConfig(t)
	hookPath := filepath.Join(t.TempDir(), "hook.lua")
	hook := `
function transform(rows)
  rows[1] = "Z" .. string.sub(rows[1], 2)
  return rows
end`
	if err := os.WriteFile(hookPath, []byte(hook), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Script.SendHook = hookPath

	gw := &fakeGateway{}
	a := newTestApp(t, cfg, gw)
	ctx := context.Background()

	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'h'})
	a.handleCommand(ctx, ui.Command{Op: ui.OpSend})

	if len(gw.sent) != 1 {
		t.Fatalf("expected one send, got %d", len(gw.sent))
	}
	if got := gw.sent[0].At(board.Position{Row: 0, Col: 0}).Char; got != "Z" {
		t.Errorf("hook should rewrite the first cell to Z, got %q", got)
	}
	// The live grid keeps what the user typed.
	if got := a.store.At(board.Position{Row: 0, Col: 0}).Char; got != "H" {
		t.Errorf("live grid should keep H, got %q", got)
	}
}

func TestDismissClearsNotice(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestApp(t, testConfig(t), gw)
	ctx := context.Background()

	// Local edit, then a divergent remote poll inside the staleness
	// window raises a notice.
	a.handleCommand(ctx, ui.Command{Op: ui.OpRune, Ch: 'h'})
	divergent := board.NewGrid(a.store.Size())
	divergent.Set(board.Position{Row: 4, Col: 4}, board.Glyph("W"))
	gw.grid = divergent
	a.tick(ctx)

	if a.engine.Notice() == nil {
		t.Fatal("divergent poll during an edit should raise a notice")
	}
	if !strings.Contains(a.viewState().Notice, "ctrl+r") {
		t.Error("notice line should mention the sync shortcut")
	}

	a.handleCommand(ctx, ui.Command{Op: ui.OpDismiss})
	if a.engine.Notice() != nil {
		t.Error("dismiss should clear the notice")
	}
}
