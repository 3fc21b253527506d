package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/config"
	"github.com/dshills/splitflap/internal/cursor"
	"github.com/dshills/splitflap/internal/event"
	"github.com/dshills/splitflap/internal/gateway"
	"github.com/dshills/splitflap/internal/installable"
	"github.com/dshills/splitflap/internal/reconcile"
	"github.com/dshills/splitflap/internal/script"
	"github.com/dshills/splitflap/internal/settings"
	"github.com/dshills/splitflap/internal/signature"
	"github.com/dshills/splitflap/internal/tool"
	"github.com/dshills/splitflap/internal/ui"
)

// statusTTL is how long a transient status message stays on screen.
const statusTTL = 4 * time.Second

// Gateway is the remote board surface the app depends on.
type Gateway interface {
	reconcile.Fetcher
	Send(ctx context.Context, g board.Grid) error
	installable.Toggler
}

// App owns the editor state and its event loop.
type App struct {
	logger *slog.Logger

	store    *board.Store
	nav      *cursor.Engine
	tools    *tool.Controller
	overlay  *signature.Overlay
	bus      *event.Bus
	engine   *reconcile.Engine
	gateway  Gateway
	registry *installable.Registry
	prefs    *settings.Store
	hook     *script.Hook

	translator ui.Translator
	layout     ui.Layout

	focus   board.Position
	focused bool

	// admin gates installable control. Resolved once at startup.
	admin bool

	status       string
	statusSticky bool
	statusAt     time.Time

	pollInterval time.Duration
	quit         bool

	// now is replaceable for tests.
	now func() time.Time
}

// New builds a fully wired app from the configuration.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	gw := gateway.NewClient(gateway.Options{
		BaseURL: cfg.Remote.BaseURL,
		APIKey:  cfg.Remote.APIKey,
		Size:    board.Size{Rows: cfg.Board.Rows, Cols: cfg.Board.Cols},
		Timeout: cfg.Remote.Timeout.Std(),
		Logger:  logger,
	})
	return newApp(cfg, logger, gw)
}

// newApp wires everything around the given gateway.
func newApp(cfg config.Config, logger *slog.Logger, gw Gateway) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	size := board.Size{Rows: cfg.Board.Rows, Cols: cfg.Board.Cols}

	store := board.NewStore(size)
	bus := event.NewBus()

	prefs, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}

	registry, err := installable.LoadManifest(cfg.Install.Manifest, logger)
	if err != nil {
		prefs.Close()
		return nil, err
	}

	hook, err := script.Load(cfg.Script.SendHook, logger)
	if err != nil {
		prefs.Close()
		return nil, err
	}

	a := &App{
		logger:   logger.With("component", "app"),
		store:    store,
		nav:      cursor.NewEngine(size),
		tools:    tool.NewController(store),
		bus:      bus,
		gateway:  gw,
		registry: registry,
		prefs:    prefs,
		hook:     hook,
		layout:   ui.Layout{Size: size},

		pollInterval: cfg.Reconcile.PollInterval.Std(),
		now:          time.Now,
	}

	a.engine = reconcile.NewEngine(store, gw, bus, reconcile.Options{
		Staleness: cfg.Reconcile.Staleness.Std(),
		Logger:    logger,
	})

	if err := a.resolveSettings(); err != nil {
		prefs.Close()
		hook.Close()
		return nil, err
	}
	a.subscribe()
	return a, nil
}

// resolveSettings reads the persisted settings once at startup: display
// name into the signature overlay, admin flag, preferred installable.
func (a *App) resolveSettings() error {
	name, err := a.prefs.DisplayName()
	if err != nil && !errors.Is(err, settings.ErrNotSet) {
		return err
	}
	a.setOverlay(name)

	a.admin, err = a.prefs.Admin()
	if err != nil {
		return err
	}

	pref, err := a.prefs.PreferredInstallable()
	switch {
	case errors.Is(err, settings.ErrNotSet):
	case err != nil:
		return err
	default:
		if err := a.registry.SetActive(pref); err != nil {
			a.logger.Warn("preferred installable not in manifest", "installable", pref)
		}
	}
	return nil
}

// setOverlay installs the signature overlay and its reserved-region
// predicate on the cursor engine and tool controller.
func (a *App) setOverlay(name string) {
	a.overlay = signature.NewOverlay(name, a.store.Size())
	a.nav.SetReserved(a.overlay.Contains)
	a.tools.SetReserved(a.overlay.Contains)
	if a.overlay.Contains(a.focus) {
		a.focus = a.nav.JumpEdge(a.focus, cursor.RowStart)
	}
}

// subscribe wires the bus into the app's transient UI state.
func (a *App) subscribe() {
	a.bus.Subscribe(event.TopicStatus, func(ev event.Event) {
		change, ok := ev.Payload.(reconcile.StatusChange)
		if !ok {
			return
		}
		a.tools.SetOffline(change.Offline)
		if change.Offline {
			a.setStatus("board unreachable", true)
		} else {
			a.setStatus("board connected", false)
		}
	})
	a.bus.Subscribe(event.TopicAdopted, func(ev event.Event) {
		if adopted, ok := ev.Payload.(reconcile.Adopted); ok && adopted.Manual {
			a.setStatus("synced from board", false)
		}
	})
}

// Close releases the app's resources.
func (a *App) Close() {
	a.hook.Close()
	if err := a.prefs.Close(); err != nil {
		a.logger.Warn("closing settings", "error", err)
	}
}

// setStatus replaces the status message. Sticky messages stay until
// replaced; others expire after statusTTL.
func (a *App) setStatus(msg string, sticky bool) {
	a.status = msg
	a.statusSticky = sticky
	a.statusAt = a.now()
}

// currentStatus returns the status message, expiring transient ones.
func (a *App) currentStatus() string {
	if a.status == "" {
		return ""
	}
	if !a.statusSticky && a.now().Sub(a.statusAt) > statusTTL {
		a.status = ""
	}
	return a.status
}

// viewState assembles one frame of UI state. The signature overlay is
// stamped into a copy so the live grid never holds signature glyphs.
func (a *App) viewState() ui.State {
	grid := a.store.Snapshot()
	a.overlay.Apply(grid)

	st := ui.State{
		Grid:    grid,
		Focus:   a.focus,
		Focused: a.focused,
		Tool:    a.tools.Active().String(),
		Color:   a.tools.SelectedColor(),
		Offline: a.engine.Offline(),
		Dirty:   a.store.Dirty(),
		Status:  a.currentStatus(),
	}
	if n := a.engine.Notice(); n != nil {
		st.Notice = n.Message + " (ctrl+r sync, ctrl+d dismiss)"
	}
	return st
}
